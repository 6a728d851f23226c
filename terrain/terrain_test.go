// SPDX-License-Identifier: MIT

package terrain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydrodem/raster"
	"github.com/katalvlaran/hydrodem/terrain"
)

// plane builds a rows×cols grid with z = f(r, c).
func plane(t *testing.T, rows, cols int, f func(r, c int) float64, opts ...raster.Option) *raster.Grid {
	t.Helper()
	g, err := raster.New(rows, cols, opts...)
	require.NoError(t, err)
	for i := 0; i < g.Len(); i++ {
		r, c := g.Coordinate(i)
		g.SetCell(i, f(r, c))
	}

	return g
}

func TestSlopeAndAspect(t *testing.T) {
	tests := []struct {
		name   string
		g      *raster.Grid
		slope  float64
		aspect float64
	}{
		{"rising east faces west",
			plane(t, 5, 5, func(_, c int) float64 { return float64(c) }), 45, 270},
		{"rising west faces east",
			plane(t, 5, 5, func(_, c int) float64 { return float64(-c) }), 45, 90},
		{"rising south faces north",
			plane(t, 5, 5, func(r, _ int) float64 { return float64(2 * r) }, raster.WithCellSize(2)), 45, 0},
		{"rising north faces south",
			plane(t, 5, 5, func(r, _ int) float64 { return float64(-r) }), 45, 180},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slope, err := terrain.Slope(tc.g)
			require.NoError(t, err)
			aspect, err := terrain.Aspect(tc.g)
			require.NoError(t, err)

			i := tc.g.Index(2, 2)
			assert.InDelta(t, tc.slope, slope.Cell(i), 1e-9)
			assert.InDelta(t, tc.aspect, aspect.Cell(i), 1e-9)
		})
	}
}

func TestFlat(t *testing.T) {
	g := plane(t, 3, 3, func(_, _ int) float64 { return 7 })
	slope, err := terrain.Slope(g)
	require.NoError(t, err)
	aspect, err := terrain.Aspect(g)
	require.NoError(t, err)
	for i := 0; i < g.Len(); i++ {
		assert.Zero(t, slope.Cell(i))
		assert.Equal(t, terrain.Flat, aspect.Cell(i))
	}
}

func TestNoDataPreserved(t *testing.T) {
	g := plane(t, 3, 3, func(r, c int) float64 { return float64(r + c) })
	g.SetNoData(4)
	slope, err := terrain.Slope(g)
	require.NoError(t, err)
	assert.False(t, slope.Valid(4))
	assert.Equal(t, 8, slope.Count())
	for i := 0; i < slope.Len(); i++ {
		if slope.Valid(i) {
			assert.False(t, math.IsNaN(slope.Cell(i)))
		}
	}
}

func TestSteepAreas(t *testing.T) {
	g := plane(t, 5, 5, func(_, c int) float64 { return float64(c) })
	steep, err := terrain.SteepAreas(g, 30)
	require.NoError(t, err)

	// Interior columns reach 45° (36.9° on the top and bottom rows);
	// the damped outer columns stay below 30°.
	assert.Equal(t, 15, steep.Count())
	for r := 0; r < 5; r++ {
		assert.False(t, steep.Valid(g.Index(r, 0)))
		assert.True(t, steep.Valid(g.Index(r, 2)))
		assert.False(t, steep.Valid(g.Index(r, 4)))
	}

	_, err = terrain.SteepAreas(g, 91)
	assert.ErrorIs(t, err, terrain.ErrBadThreshold)
	_, err = terrain.SteepAreas(nil, 10)
	assert.ErrorIs(t, err, terrain.ErrNilGrid)
}
