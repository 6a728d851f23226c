// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"math"
	"strings"
)

// DefaultNoData is the nodata sentinel used when none is configured.
const DefaultNoData = -9999.0

// Options holds the georeference and sentinel of a Grid.
type Options struct {
	// NoData marks cells without a value. NaN is allowed and then every NaN cell is nodata.
	NoData float64
	// CellSize is the world-unit length of a cell edge; must be > 0.
	CellSize float64
	// OriginX, OriginY locate the upper-left corner of the grid.
	OriginX, OriginY float64
}

// Option configures a Grid at construction.
type Option func(*Options)

// DefaultOptions returns NoData=DefaultNoData, CellSize=1 and a zero origin.
func DefaultOptions() Options {
	return Options{
		NoData:   DefaultNoData,
		CellSize: 1,
	}
}

// WithNoData sets the nodata sentinel.
func WithNoData(v float64) Option {
	return func(o *Options) {
		o.NoData = v
	}
}

// WithCellSize sets the cell edge length in world units.
func WithCellSize(cs float64) Option {
	return func(o *Options) {
		o.CellSize = cs
	}
}

// WithOrigin sets the upper-left corner in world coordinates.
func WithOrigin(x, y float64) Option {
	return func(o *Options) {
		o.OriginX, o.OriginY = x, y
	}
}

// Grid is a row-major raster of float64 cells.
// The shape and georeference never change after construction; consumers
// treat a Grid handed to them as read-only and return new grids.
type Grid struct {
	rows, cols int       // shape
	data       []float64 // len == rows*cols, offset = r*cols + c
	noData     float64   // sentinel (may be NaN)
	cellSize   float64   // world units per cell edge
	ox, oy     float64   // upper-left corner
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.CellSize <= 0 || math.IsNaN(o.CellSize) || math.IsInf(o.CellSize, 0) {
		return o, ErrBadCellSize
	}

	return o, nil
}

// New creates a rows×cols grid with every cell set to nodata.
// Complexity: O(R×C).
func New(rows, cols int, opts ...Option) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		rows:     rows,
		cols:     cols,
		data:     make([]float64, rows*cols),
		noData:   o.NoData,
		cellSize: o.CellSize,
		ox:       o.OriginX,
		oy:       o.OriginY,
	}
	for i := range g.data {
		g.data[i] = o.NoData
	}

	return g, nil
}

// FromRows builds a grid from a non-empty rectangular slice, deep-copying it.
// Cells equal to the nodata sentinel are nodata; any other NaN/Inf is rejected.
// Complexity: O(R×C).
func FromRows(values [][]float64, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(len(values), w, opts...)
	if err != nil {
		return nil, err
	}
	for r, row := range values {
		for c, v := range row {
			if !g.IsNoData(v) && !isFinite(v) {
				return nil, fmt.Errorf("raster: cell (%d,%d): %w", r, c, ErrNonFinite)
			}
			g.data[r*w+c] = v
		}
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns rows*cols.
func (g *Grid) Len() int { return len(g.data) }

// NoData returns the nodata sentinel.
func (g *Grid) NoData() float64 { return g.noData }

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Origin returns the upper-left corner.
func (g *Grid) Origin() (x, y float64) { return g.ox, g.oy }

// Options returns the grid's georeference and sentinel as construction options,
// so derived grids can be created with the same setup.
func (g *Grid) Options() []Option {
	return []Option{WithNoData(g.noData), WithCellSize(g.cellSize), WithOrigin(g.ox, g.oy)}
}

// IsNoData reports whether v equals the grid's nodata sentinel.
func (g *Grid) IsNoData(v float64) bool {
	if math.IsNaN(g.noData) {
		return math.IsNaN(v)
	}

	return v == g.noData
}

// InBounds reports whether (r,c) lies inside the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// OnEdge reports whether (r,c) lies on the outer ring of the grid.
func (g *Grid) OnEdge(r, c int) bool {
	return r == 0 || c == 0 || r == g.rows-1 || c == g.cols-1
}

// Index maps (r,c) to the row-major offset r*cols + c. No bounds check.
func (g *Grid) Index(r, c int) int {
	return r*g.cols + c
}

// Coordinate converts a row-major offset back to (r,c).
func (g *Grid) Coordinate(i int) (r, c int) {
	return i / g.cols, i % g.cols
}

// At returns the value at (r,c).
func (g *Grid) At(r, c int) (float64, error) {
	if !g.InBounds(r, c) {
		return 0, fmt.Errorf("raster: At(%d,%d): %w", r, c, ErrOutOfRange)
	}

	return g.data[g.Index(r, c)], nil
}

// Set stores v at (r,c). v must be finite or the nodata sentinel.
func (g *Grid) Set(r, c int, v float64) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("raster: Set(%d,%d): %w", r, c, ErrOutOfRange)
	}
	if !g.IsNoData(v) && !isFinite(v) {
		return fmt.Errorf("raster: Set(%d,%d): %w", r, c, ErrNonFinite)
	}
	g.data[g.Index(r, c)] = v

	return nil
}

// Cell returns the value at row-major offset i. It panics if i is out of range.
func (g *Grid) Cell(i int) float64 { return g.data[i] }

// SetCell stores v at row-major offset i without validation.
// Intended for stage implementations that build a fresh output grid.
func (g *Grid) SetCell(i int, v float64) { g.data[i] = v }

// SetNoData marks offset i as nodata.
func (g *Grid) SetNoData(i int) { g.data[i] = g.noData }

// Valid reports whether offset i holds a value.
func (g *Grid) Valid(i int) bool { return !g.IsNoData(g.data[i]) }

// ValidAt reports whether (r,c) is in bounds and holds a value.
func (g *Grid) ValidAt(r, c int) bool {
	return g.InBounds(r, c) && g.Valid(g.Index(r, c))
}

// Count returns the number of valid cells.
func (g *Grid) Count() int {
	n := 0
	for i := range g.data {
		if g.Valid(i) {
			n++
		}
	}

	return n
}

// Values returns a copy of all valid cell values in row-major order.
func (g *Grid) Values() []float64 {
	out := make([]float64, 0, len(g.data))
	for _, v := range g.data {
		if !g.IsNoData(v) {
			out = append(out, v)
		}
	}

	return out
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.data = make([]float64, len(g.data))
	copy(cp.data, g.data)

	return &cp
}

// Like returns a grid with the same shape and georeference, every cell nodata.
func (g *Grid) Like() *Grid {
	cp := *g
	cp.data = make([]float64, len(g.data))
	for i := range cp.data {
		cp.data[i] = g.noData
	}

	return &cp
}

// Map builds a new grid by applying f to every valid cell.
// If f returns keep=false the output cell is nodata. Nodata cells stay nodata.
// Complexity: O(R×C).
func (g *Grid) Map(f func(v float64) (out float64, keep bool)) *Grid {
	out := g.Like()
	for i, v := range g.data {
		if g.IsNoData(v) {
			continue
		}
		if nv, keep := f(v); keep {
			out.data[i] = nv
		}
	}

	return out
}

// SameShape returns ErrShapeMismatch unless a and b have identical dimensions.
func SameShape(a, b *Grid) error {
	if a.rows != b.rows || a.cols != b.cols {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	return nil
}

// String renders the grid row by row; nodata prints as "·".
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		sb.WriteString("[")
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			v := g.data[g.Index(r, c)]
			if g.IsNoData(v) {
				sb.WriteString("·")
			} else {
				sb.WriteString(fmt.Sprintf("%g", v))
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
