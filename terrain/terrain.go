// SPDX-License-Identifier: MIT

package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/hydrodem/raster"
)

var (
	// ErrNilGrid indicates a nil elevation grid.
	ErrNilGrid = errors.New("terrain: grid is nil")

	// ErrBadThreshold indicates a slope threshold outside [0, 90].
	ErrBadThreshold = errors.New("terrain: slope threshold must be within [0, 90] degrees")
)

// Flat is the aspect of a cell without gradient.
const Flat = -1.0

// gradient returns the Horn partial derivatives at offset i:
// dx grows eastward, dy grows southward (down the rows).
func gradient(g *raster.Grid, i int) (dx, dy float64) {
	r, c := g.Coordinate(i)
	z0 := g.Cell(i)
	z := func(dr, dc int) float64 {
		if g.ValidAt(r+dr, c+dc) {
			return g.Cell(g.Index(r+dr, c+dc))
		}
		return z0
	}
	a, b, cc := z(-1, -1), z(-1, 0), z(-1, 1)
	d, f := z(0, -1), z(0, 1)
	gg, h, k := z(1, -1), z(1, 0), z(1, 1)

	w := 8 * g.CellSize()
	dx = ((cc + 2*f + k) - (a + 2*d + gg)) / w
	dy = ((gg + 2*h + k) - (a + 2*b + cc)) / w

	return dx, dy
}

// Slope returns the steepest-descent angle of every valid cell in degrees.
// Complexity: O(N).
func Slope(g *raster.Grid) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	out := g.Like()
	for i := 0; i < g.Len(); i++ {
		if !g.Valid(i) {
			continue
		}
		dx, dy := gradient(g, i)
		out.SetCell(i, math.Atan(math.Hypot(dx, dy))*180/math.Pi)
	}

	return out, nil
}

// Aspect returns the compass direction each valid cell faces, in degrees
// clockwise from north within [0, 360). Cells without gradient get Flat.
// Complexity: O(N).
func Aspect(g *raster.Grid) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	out := g.Like()
	for i := 0; i < g.Len(); i++ {
		if !g.Valid(i) {
			continue
		}
		dx, dy := gradient(g, i)
		if dx == 0 && dy == 0 {
			out.SetCell(i, Flat)
			continue
		}
		// downslope vector is (-dx east, -dy south); compass angle from north.
		deg := math.Atan2(-dx, dy) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		if deg >= 360 {
			deg -= 360
		}
		out.SetCell(i, deg)
	}

	return out, nil
}

// SteepAreas marks cells whose slope is at least th degrees with 1;
// every other cell is nodata.
func SteepAreas(g *raster.Grid, th float64) (*raster.Grid, error) {
	if math.IsNaN(th) || th < 0 || th > 90 {
		return nil, fmt.Errorf("%w: %v", ErrBadThreshold, th)
	}
	slope, err := Slope(g)
	if err != nil {
		return nil, err
	}

	return slope.Map(func(v float64) (float64, bool) { return 1, v >= th }), nil
}
