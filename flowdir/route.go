// SPDX-License-Identifier: MIT

package flowdir

import (
	"github.com/katalvlaran/hydrodem/raster"
)

// outwardOrder tries orthogonal exits before diagonal ones when an edge cell
// drains off-grid (indices into raster.Offsets).
var outwardOrder = [8]int{0, 2, 4, 6, 1, 3, 5, 7}

// Route assigns a D8 direction to every valid cell of filled.
// Nodata cells receive NoData. See the package documentation for the
// resolution order of cells without a downhill neighbour.
//
// Complexity: O(N) time and memory.
func Route(filled *raster.Grid) (*Grid, error) {
	if filled == nil {
		return nil, ErrNilGrid
	}
	d := newLike(filled)
	flats := 0
	for i := 0; i < filled.Len(); i++ {
		if !filled.Valid(i) {
			continue
		}
		r, c := filled.Coordinate(i)
		if k := steepest(filled, r, c); k >= 0 {
			d.dirs[i] = codes[k]
			continue
		}
		if filled.OnEdge(r, c) {
			d.dirs[i] = codes[outward(filled, r, c)]
			continue
		}
		if k := firstNoData(filled, r, c); k >= 0 {
			d.dirs[i] = codes[k]
			continue
		}
		d.dirs[i] = None
		flats++
	}
	if flats > 0 {
		resolveFlats(filled, d)
	}

	return d, nil
}

// steepest returns the Offsets index of the steepest strictly downhill valid
// neighbour of (r,c), or -1. Strict comparison keeps the first (highest
// priority) neighbour on ties.
func steepest(g *raster.Grid, r, c int) int {
	z := g.Cell(g.Index(r, c))
	best, bestK := 0.0, -1
	for k, off := range raster.Offsets {
		nr, nc := r+off[0], c+off[1]
		if !g.ValidAt(nr, nc) {
			continue
		}
		slope := (z - g.Cell(g.Index(nr, nc))) / g.Distance(k)
		if slope > best {
			best, bestK = slope, k
		}
	}

	return bestK
}

func outward(g *raster.Grid, r, c int) int {
	for _, k := range outwardOrder {
		off := raster.Offsets[k]
		if !g.InBounds(r+off[0], c+off[1]) {
			return k
		}
	}

	return 0 // unreachable for edge cells
}

func firstNoData(g *raster.Grid, r, c int) int {
	for k, off := range raster.Offsets {
		nr, nc := r+off[0], c+off[1]
		if g.InBounds(nr, nc) && !g.Valid(g.Index(nr, nc)) {
			return k
		}
	}

	return -1
}

// resolveFlats routes None cells across equal-elevation flats toward cells
// that already drain. A breadth-first search seeded with every draining
// cell walks onto level None neighbours; each reached cell points back at
// the cell it was reached from, so paths shorten monotonically to the rim
// and cannot cycle. Cells never reached are true sinks and keep None.
func resolveFlats(g *raster.Grid, d *Grid) {
	queue := make([]int, 0, g.Len())
	for i, code := range d.dirs {
		if code != None && code != NoData {
			queue = append(queue, i)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ur, uc := g.Coordinate(u)
		zu := g.Cell(u)
		for k, off := range raster.Offsets {
			vr, vc := ur+off[0], uc+off[1]
			if !g.InBounds(vr, vc) {
				continue
			}
			v := g.Index(vr, vc)
			if d.dirs[v] != None || g.Cell(v) != zu {
				continue
			}
			// v steps back along the reverse of offset k.
			d.dirs[v] = codes[(k+4)%8]
			queue = append(queue, v)
		}
	}
}
