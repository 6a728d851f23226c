package basin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydrodem/accum"
	"github.com/katalvlaran/hydrodem/basin"
	"github.com/katalvlaran/hydrodem/flowdir"
	"github.com/katalvlaran/hydrodem/raster"
)

const (
	E = flowdir.E
	W = flowdir.W
	S = flowdir.S
	N = flowdir.N
	X = flowdir.NoData
)

// TestExtractNetwork_AboveMaximum yields an all-nodata mask when the
// threshold exceeds the largest accumulation.
func TestExtractNetwork_AboveMaximum(t *testing.T) {
	acc, err := raster.New(10, 100)
	require.NoError(t, err)
	for i := 0; i < acc.Len(); i++ {
		acc.SetCell(i, float64(i%1000))
	}
	s, err := acc.Summary()
	require.NoError(t, err)
	require.Equal(t, 999.0, s.Max)

	mask, err := basin.ExtractNetwork(acc, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, mask.Count())
}

// TestExtractNetwork_Mask keeps cells at or above the threshold as 1.
func TestExtractNetwork_Mask(t *testing.T) {
	acc, err := raster.FromRows([][]float64{{1, 5, raster.DefaultNoData, 10}})
	require.NoError(t, err)

	mask, err := basin.ExtractNetwork(acc, 5)
	require.NoError(t, err)
	assert.False(t, mask.Valid(0))
	assert.Equal(t, 1.0, mask.Cell(1))
	assert.False(t, mask.Valid(2))
	assert.Equal(t, 1.0, mask.Cell(3))

	_, err = basin.ExtractNetwork(acc, math.NaN())
	assert.ErrorIs(t, err, basin.ErrBadThreshold)
	_, err = basin.ExtractNetwork(nil, 1)
	assert.ErrorIs(t, err, basin.ErrNilGrid)
}

// TestLabelBasins_TwoOutlets splits a ridge into west- and east-draining basins.
//
//	W  W  E  E
//	W  W  E  E
//	·  N  S  ·
func TestLabelBasins_TwoOutlets(t *testing.T) {
	d, err := flowdir.FromCodes([][]flowdir.Direction{
		{W, W, E, E},
		{W, W, E, E},
		{X, N, S, X},
	})
	require.NoError(t, err)

	labels, err := basin.LabelBasins(d)
	require.NoError(t, err)
	// Outlets in row-major order: (0,0), (0,3), (1,0), (1,3), (2,2).
	assert.Equal(t, 5, labels.Count())
	assert.Equal(t, labels.At(0), labels.At(1))
	assert.Equal(t, labels.At(2), labels.At(3))
	assert.Equal(t, labels.At(9), labels.At(5))
	assert.Equal(t, labels.At(5), labels.At(4))
	assert.Equal(t, labels.At(6), labels.At(7))
	assert.NotEqual(t, labels.At(10), labels.At(7))
	assert.NotEqual(t, labels.At(0), labels.At(3))
	assert.Equal(t, basin.Unlabeled, labels.At(8))
	assert.Equal(t, []int{2, 2, 3, 2, 1}, labels.Sizes())

	r := labels.ToRaster()
	assert.False(t, r.Valid(8))
	assert.Equal(t, 10, r.Count())
}

// TestLabelBasins_Partition checks that labels and accumulation agree: each
// basin's size equals its outlet's accumulation.
func TestLabelBasins_Partition(t *testing.T) {
	d, err := flowdir.FromCodes([][]flowdir.Direction{
		{E, E, S, W},
		{E, E, S, W},
		{E, E, S, W},
		{N, X, S, S},
	})
	require.NoError(t, err)
	acc, err := accum.Accumulate(d)
	require.NoError(t, err)
	labels, err := basin.LabelBasins(d)
	require.NoError(t, err)

	outlets := accum.Outlets(d)
	require.Len(t, outlets, labels.Count())
	sizes := labels.Sizes()
	for k, o := range outlets {
		assert.Equal(t, int32(k+1), labels.At(o))
		assert.Equal(t, acc.Cell(o), float64(sizes[k]))
	}

	_, err = basin.LabelBasins(nil)
	assert.ErrorIs(t, err, basin.ErrNilGrid)
}
