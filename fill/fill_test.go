package fill_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydrodem/fill"
	"github.com/katalvlaran/hydrodem/raster"
)

const nd = raster.DefaultNoData

// pitGrid is a 5×5 surface with a single-cell pit (1) at the centre whose
// lowest neighbour (5) spills east to the edge cell valued 4.
func pitGrid(t testing.TB) *raster.Grid {
	g, err := raster.FromRows([][]float64{
		{9, 9, 9, 9, 9},
		{9, 6, 6, 6, 9},
		{9, 6, 1, 5, 4},
		{9, 6, 6, 6, 9},
		{9, 9, 9, 9, 9},
	})
	require.NoError(t, err)

	return g
}

func randomGrid(t testing.TB, rows, cols int, seed int64) *raster.Grid {
	rng := rand.New(rand.NewSource(seed))
	vals := make([][]float64, rows)
	for r := range vals {
		vals[r] = make([]float64, cols)
		for c := range vals[r] {
			vals[r][c] = float64(rng.Intn(100))
		}
	}
	g, err := raster.FromRows(vals)
	require.NoError(t, err)

	return g
}

// TestFill_Validation covers nil input and a bad fill cap.
func TestFill_Validation(t *testing.T) {
	_, err := fill.Fill(nil)
	assert.ErrorIs(t, err, fill.ErrNilGrid)

	g := pitGrid(t)
	_, err = fill.Fill(g, fill.WithMaxFillHeight(-1))
	assert.ErrorIs(t, err, fill.ErrBadMaxFillHeight)
}

// TestFill_SingleCellPit raises the pit to its lowest neighbour and nothing else.
func TestFill_SingleCellPit(t *testing.T) {
	g := pitGrid(t)
	filled, err := fill.Fill(g)
	require.NoError(t, err)

	centre := g.Index(2, 2)
	assert.Equal(t, 5.0, filled.Cell(centre))
	for i := 0; i < g.Len(); i++ {
		if i == centre {
			continue
		}
		assert.Equalf(t, g.Cell(i), filled.Cell(i), "cell %d must not be inflated", i)
	}
	assert.Equal(t, 1.0, g.Cell(centre), "input must not be mutated")
}

// TestFill_MaxFillHeight caps the raise at original + cap.
func TestFill_MaxFillHeight(t *testing.T) {
	g := pitGrid(t)
	filled, err := fill.Fill(g, fill.WithMaxFillHeight(2))
	require.NoError(t, err)
	assert.Equal(t, 3.0, filled.Cell(g.Index(2, 2)))
}

// TestFill_NoDataPassThrough treats nodata neighbours as drainage terminators.
func TestFill_NoDataPassThrough(t *testing.T) {
	g, err := raster.FromRows([][]float64{
		{9, 9, 9, 9, 9},
		{9, 2, 8, 8, 9},
		{9, 8, nd, 8, 9},
		{9, 8, 8, 8, 9},
		{9, 9, 9, 9, 9},
	})
	require.NoError(t, err)

	filled, err := fill.Fill(g)
	require.NoError(t, err)
	assert.False(t, filled.Valid(g.Index(2, 2)), "nodata stays nodata")
	// (1,1) touches the nodata cell diagonally and is therefore on the frontier.
	assert.Equal(t, 2.0, filled.Cell(g.Index(1, 1)))
	assert.Equal(t, g.Values(), filled.Values())
}

// TestFill_NoInflation leaves an already-draining pyramid untouched.
func TestFill_NoInflation(t *testing.T) {
	const n = 9
	vals := make([][]float64, n)
	for r := range vals {
		vals[r] = make([]float64, n)
		for c := range vals[r] {
			vals[r][c] = float64(min(r, c, n-1-r, n-1-c))
		}
	}
	g, err := raster.FromRows(vals)
	require.NoError(t, err)

	filled, err := fill.Fill(g)
	require.NoError(t, err)
	assert.Equal(t, g.Values(), filled.Values())
}

// TestFill_RandomProperties checks the monotone-raise and drainage properties
// on a random surface: every cell is ≥ its original, edge cells are unchanged,
// and every cell reaches the edge by a non-ascending path.
func TestFill_RandomProperties(t *testing.T) {
	g := randomGrid(t, 30, 40, 42)
	filled, err := fill.Fill(g)
	require.NoError(t, err)

	for i := 0; i < g.Len(); i++ {
		r, c := g.Coordinate(i)
		require.GreaterOrEqual(t, filled.Cell(i), g.Cell(i))
		if g.OnEdge(r, c) {
			require.Equal(t, g.Cell(i), filled.Cell(i))
		}
	}

	// Reverse search from the edge: step uphill-or-level only.
	reached := make([]bool, g.Len())
	var queue []int
	for i := 0; i < g.Len(); i++ {
		if r, c := g.Coordinate(i); g.OnEdge(r, c) {
			reached[i] = true
			queue = append(queue, i)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ur, uc := g.Coordinate(u)
		for _, d := range raster.Offsets {
			vr, vc := ur+d[0], uc+d[1]
			if !g.InBounds(vr, vc) {
				continue
			}
			v := g.Index(vr, vc)
			if !reached[v] && filled.Cell(v) >= filled.Cell(u) {
				reached[v] = true
				queue = append(queue, v)
			}
		}
	}
	for i, ok := range reached {
		require.Truef(t, ok, "cell %d has no non-ascending path to the edge", i)
	}
}

// TestDifferenceAndDepth marks only the raised pit.
func TestDifferenceAndDepth(t *testing.T) {
	g := pitGrid(t)
	filled, err := fill.Fill(g)
	require.NoError(t, err)

	diff, err := fill.Difference(filled, g)
	require.NoError(t, err)
	assert.Equal(t, 1, diff.Count())
	assert.Equal(t, 1.0, diff.Cell(g.Index(2, 2)))

	depth, err := fill.Depth(filled, g)
	require.NoError(t, err)
	assert.Equal(t, 4.0, depth.Cell(g.Index(2, 2)))
	assert.Equal(t, 0.0, depth.Cell(0))

	other, _ := raster.New(2, 2)
	_, err = fill.Difference(filled, other)
	assert.ErrorIs(t, err, raster.ErrShapeMismatch)
	_, err = fill.Depth(nil, g)
	assert.ErrorIs(t, err, fill.ErrNilGrid)
}
