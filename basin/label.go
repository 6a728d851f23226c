// SPDX-License-Identifier: MIT

package basin

import (
	"github.com/katalvlaran/hydrodem/flowdir"
	"github.com/katalvlaran/hydrodem/raster"
)

// Unlabeled marks cells that belong to no basin (nodata).
const Unlabeled int32 = 0

// LabelGrid holds one basin ID per cell; Unlabeled for nodata.
type LabelGrid struct {
	rows, cols int
	labels     []int32
	count      int
	shape      *raster.Grid // georeference template
}

// Rows returns the number of rows.
func (l *LabelGrid) Rows() int { return l.rows }

// Cols returns the number of columns.
func (l *LabelGrid) Cols() int { return l.cols }

// At returns the label of row-major offset i.
func (l *LabelGrid) At(i int) int32 { return l.labels[i] }

// Count returns the number of basins.
func (l *LabelGrid) Count() int { return l.count }

// Sizes returns the number of cells in each basin; index 0 is basin 1.
func (l *LabelGrid) Sizes() []int {
	sizes := make([]int, l.count)
	for _, id := range l.labels {
		if id != Unlabeled {
			sizes[id-1]++
		}
	}

	return sizes
}

// ToRaster converts labels to a float grid; Unlabeled maps to nodata.
func (l *LabelGrid) ToRaster() *raster.Grid {
	g := l.shape.Like()
	for i, id := range l.labels {
		if id != Unlabeled {
			g.SetCell(i, float64(id))
		}
	}

	return g
}

// LabelBasins partitions the valid cells of dirs by outlet.
// Outlets are cells with no direction or whose direction leaves the grid or
// enters nodata. Each outlet's label is propagated upstream breadth-first
// through the cells that point at an already labelled cell.
func LabelBasins(dirs *flowdir.Grid) (*LabelGrid, error) {
	if dirs == nil {
		return nil, ErrNilGrid
	}
	shape := dirs.Shape()
	l := &LabelGrid{
		rows:   dirs.Rows(),
		cols:   dirs.Cols(),
		labels: make([]int32, dirs.Len()),
		shape:  shape,
	}

	var queue []int
	for i := 0; i < dirs.Len(); i++ {
		if !dirs.Outlet(i) {
			continue
		}
		l.count++
		l.labels[i] = int32(l.count)
		queue = append(queue[:0], i)
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ur, uc := shape.Coordinate(u)
			for _, off := range raster.Offsets {
				vr, vc := ur+off[0], uc+off[1]
				if !shape.InBounds(vr, vc) {
					continue
				}
				v := shape.Index(vr, vc)
				if l.labels[v] != Unlabeled {
					continue
				}
				if j, in := dirs.Target(v); in && j == u {
					l.labels[v] = l.labels[u]
					queue = append(queue, v)
				}
			}
		}
	}

	return l, nil
}
