// SPDX-License-Identifier: MIT

package flowdir

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hydrodem/raster"
)

// Sentinel errors for flow routing.
var (
	// ErrNilGrid indicates a nil grid was passed in.
	ErrNilGrid = errors.New("flowdir: grid is nil")

	// ErrBadDirection indicates a value that is not a D8 code.
	ErrBadDirection = errors.New("flowdir: invalid direction code")
)

// Direction is a D8 flow code.
type Direction uint8

const (
	None   Direction = 0 // outlet or unresolved sink
	E      Direction = 1
	SE     Direction = 2
	S      Direction = 4
	SW     Direction = 8
	W      Direction = 16
	NW     Direction = 32
	N      Direction = 64
	NE     Direction = 128
	NoData Direction = 255
)

// codes[k] is the direction for raster.Offsets[k].
var codes = [8]Direction{E, SE, S, SW, W, NW, N, NE}

// Code returns the direction of raster.Offsets[k].
func Code(k int) Direction { return codes[k] }

// Offset returns the (dRow, dCol) step of d. ok is false for None, NoData and invalid codes.
func (d Direction) Offset() (dr, dc int, ok bool) {
	for k, code := range codes {
		if code == d {
			return raster.Offsets[k][0], raster.Offsets[k][1], true
		}
	}

	return 0, 0, false
}

// Valid reports whether d is one of the D8 codes, None or NoData.
func (d Direction) Valid() bool {
	if d == None || d == NoData {
		return true
	}
	_, _, ok := d.Offset()

	return ok
}

func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case NoData:
		return "NoData"
	case E:
		return "E"
	case SE:
		return "SE"
	case S:
		return "S"
	case SW:
		return "SW"
	case W:
		return "W"
	case NW:
		return "NW"
	case N:
		return "N"
	case NE:
		return "NE"
	}

	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Grid is a direction raster aligned with the surface it was routed from.
type Grid struct {
	rows, cols int
	dirs       []Direction
	cellSize   float64
	ox, oy     float64
}

// newLike allocates an all-NoData direction grid shaped like g.
func newLike(g *raster.Grid) *Grid {
	x, y := g.Origin()
	d := &Grid{
		rows:     g.Rows(),
		cols:     g.Cols(),
		dirs:     make([]Direction, g.Len()),
		cellSize: g.CellSize(),
		ox:       x,
		oy:       y,
	}
	for i := range d.dirs {
		d.dirs[i] = NoData
	}

	return d
}

// FromCodes builds a direction grid from explicit codes (cell size 1).
func FromCodes(rows [][]Direction) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, raster.ErrEmptyGrid
	}
	w := len(rows[0])
	d := &Grid{rows: len(rows), cols: w, dirs: make([]Direction, 0, len(rows)*w), cellSize: 1}
	for r, row := range rows {
		if len(row) != w {
			return nil, raster.ErrNonRectangular
		}
		for c, code := range row {
			if !code.Valid() {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrBadDirection, code, r, c)
			}
			d.dirs = append(d.dirs, code)
		}
	}

	return d, nil
}

// Rows returns the number of rows.
func (d *Grid) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Grid) Cols() int { return d.cols }

// Len returns rows*cols.
func (d *Grid) Len() int { return len(d.dirs) }

// At returns the direction at row-major offset i.
func (d *Grid) At(i int) Direction { return d.dirs[i] }

// Valid reports whether offset i carries data (any code but NoData).
func (d *Grid) Valid(i int) bool { return d.dirs[i] != NoData }

// Target returns the cell that offset i drains into.
// inGrid is false when i is nodata, has no direction, or points off-grid or
// into a nodata cell; such cells are outlets.
func (d *Grid) Target(i int) (j int, inGrid bool) {
	dr, dc, ok := d.dirs[i].Offset()
	if !ok {
		return -1, false
	}
	r, c := i/d.cols+dr, i%d.cols+dc
	if r < 0 || r >= d.rows || c < 0 || c >= d.cols {
		return -1, false
	}
	j = r*d.cols + c
	if d.dirs[j] == NoData {
		return -1, false
	}

	return j, true
}

// Outlet reports whether valid offset i terminates a drainage path.
func (d *Grid) Outlet(i int) bool {
	if !d.Valid(i) {
		return false
	}
	_, in := d.Target(i)

	return !in
}

// ToRaster converts the codes to a float grid; NoData maps to the raster sentinel.
func (d *Grid) ToRaster() *raster.Grid {
	g, _ := raster.New(d.rows, d.cols, raster.WithCellSize(d.cellSize), raster.WithOrigin(d.ox, d.oy))
	for i, code := range d.dirs {
		if code != NoData {
			g.SetCell(i, float64(code))
		}
	}

	return g
}

// Shape returns an all-nodata raster with the direction grid's shape and
// georeference, used to align companion grids.
func (d *Grid) Shape() *raster.Grid {
	g, _ := raster.New(d.rows, d.cols, raster.WithCellSize(d.cellSize), raster.WithOrigin(d.ox, d.oy))

	return g
}
