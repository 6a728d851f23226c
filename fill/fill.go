// SPDX-License-Identifier: MIT

package fill

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/hydrodem/raster"
)

// Fill returns a depressionless copy of surface. The input is never modified.
//
// Frontier: valid cells on the grid edge or 8-adjacent to a nodata cell keep
// their elevation. Every other valid cell ends at
//
//	min(max(original, spill), original + MaxFillHeight)
//
// where spill is the lowest elevation over which water could leave it.
// Nodata cells pass through unchanged.
//
// Complexity: O(N log N) time, O(N) memory.
func Fill(surface *raster.Grid, opts ...Option) (*raster.Grid, error) {
	if surface == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	r := &runner{
		in:       surface,
		out:      surface.Clone(),
		options:  cfg,
		resolved: make([]bool, surface.Len()),
		pq:       make(cellPQ, 0, 2*(surface.Rows()+surface.Cols())),
	}
	r.seed()
	r.flood()

	return r.out, nil
}

// runner holds the mutable state of one Fill invocation.
type runner struct {
	in       *raster.Grid // original surface, read-only
	out      *raster.Grid // filled copy under construction
	options  Options
	resolved []bool // cell already has its final elevation
	pq       cellPQ // min-heap ordered by (z, seq)
	seq      uint64 // insertion counter for FIFO tie-breaks
}

// seed pushes the edge and nodata-adjacent cells as the initial frontier.
func (r *runner) seed() {
	g := r.in
	heap.Init(&r.pq)
	for i := 0; i < g.Len(); i++ {
		if !g.Valid(i) {
			continue
		}
		row, col := g.Coordinate(i)
		if g.OnEdge(row, col) || r.touchesNoData(row, col) {
			r.resolve(i, g.Cell(i))
		}
	}
}

func (r *runner) touchesNoData(row, col int) bool {
	for _, d := range raster.Offsets {
		nr, nc := row+d[0], col+d[1]
		if r.in.InBounds(nr, nc) && !r.in.Valid(r.in.Index(nr, nc)) {
			return true
		}
	}

	return false
}

// flood drains the heap, raising each newly reached neighbour to at least
// the elevation of the cell it was reached from.
func (r *runner) flood() {
	g := r.in
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*cellItem)
		row, col := g.Coordinate(item.idx)
		for _, d := range raster.Offsets {
			nr, nc := row+d[0], col+d[1]
			if !g.InBounds(nr, nc) {
				continue
			}
			ni := g.Index(nr, nc)
			if r.resolved[ni] || !g.Valid(ni) {
				continue
			}
			orig := g.Cell(ni)
			z := math.Max(orig, item.z)
			z = math.Min(z, orig+r.options.MaxFillHeight)
			r.resolve(ni, z)
		}
	}
}

func (r *runner) resolve(i int, z float64) {
	r.resolved[i] = true
	r.out.SetCell(i, z)
	heap.Push(&r.pq, &cellItem{idx: i, z: z, seq: r.seq})
	r.seq++
}

// Difference marks cells raised by filling: 1 where filled != original,
// nodata elsewhere. The result is a presence mask ready for polygonization.
func Difference(filled, original *raster.Grid) (*raster.Grid, error) {
	if filled == nil || original == nil {
		return nil, ErrNilGrid
	}
	if err := raster.SameShape(filled, original); err != nil {
		return nil, fmt.Errorf("fill: difference: %w", err)
	}
	out := original.Like()
	for i := 0; i < out.Len(); i++ {
		if filled.Valid(i) && original.Valid(i) && filled.Cell(i) != original.Cell(i) {
			out.SetCell(i, 1)
		}
	}

	return out, nil
}

// Depth returns filled - original on cells valid in both grids.
func Depth(filled, original *raster.Grid) (*raster.Grid, error) {
	if filled == nil || original == nil {
		return nil, ErrNilGrid
	}
	if err := raster.SameShape(filled, original); err != nil {
		return nil, fmt.Errorf("fill: depth: %w", err)
	}
	out := original.Like()
	for i := 0; i < out.Len(); i++ {
		if filled.Valid(i) && original.Valid(i) {
			out.SetCell(i, filled.Cell(i)-original.Cell(i))
		}
	}

	return out, nil
}

// cellItem is a heap entry: cell offset, its resolved elevation and the
// insertion sequence used to break elevation ties.
type cellItem struct {
	idx int
	z   float64
	seq uint64
}

// cellPQ is a min-heap of *cellItem ordered by z, then seq.
type cellPQ []*cellItem

func (pq cellPQ) Len() int { return len(pq) }

func (pq cellPQ) Less(i, j int) bool {
	if pq[i].z != pq[j].z {
		return pq[i].z < pq[j].z
	}

	return pq[i].seq < pq[j].seq
}

func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(*cellItem)) }

func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
