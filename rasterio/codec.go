// SPDX-License-Identifier: MIT

package rasterio

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/hydrodem/raster"
)

// ErrCorrupt indicates a document that does not describe a valid grid.
var ErrCorrupt = errors.New("rasterio: corrupt raster document")

// formatVersion is bumped whenever document changes incompatibly.
const formatVersion = 1

// document is the on-disk form of a grid.
type document struct {
	Version  int       `msgpack:"version"`
	Rows     int       `msgpack:"rows"`
	Cols     int       `msgpack:"cols"`
	NoData   float64   `msgpack:"nodata"`
	CellSize float64   `msgpack:"cell_size"`
	OriginX  float64   `msgpack:"origin_x"`
	OriginY  float64   `msgpack:"origin_y"`
	Cells    []float64 `msgpack:"cells"`
}

// Encode writes g to w.
func Encode(w io.Writer, g *raster.Grid) error {
	if g == nil {
		return errors.New("rasterio: grid is nil")
	}
	ox, oy := g.Origin()
	doc := document{
		Version:  formatVersion,
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		NoData:   g.NoData(),
		CellSize: g.CellSize(),
		OriginX:  ox,
		OriginY:  oy,
		Cells:    make([]float64, g.Len()),
	}
	for i := range doc.Cells {
		doc.Cells[i] = g.Cell(i)
	}

	return msgpack.NewEncoder(w).Encode(&doc)
}

// Decode reads one grid from r and validates it.
func Decode(r io.Reader) (*raster.Grid, error) {
	var doc document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}
	if doc.Rows <= 0 || doc.Cols <= 0 || doc.Rows*doc.Cols != len(doc.Cells) {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrCorrupt, doc.Rows, doc.Cols, len(doc.Cells))
	}
	g, err := raster.New(doc.Rows, doc.Cols,
		raster.WithNoData(doc.NoData),
		raster.WithCellSize(doc.CellSize),
		raster.WithOrigin(doc.OriginX, doc.OriginY),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i, v := range doc.Cells {
		row, col := g.Coordinate(i)
		if err := g.Set(row, col, v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return g, nil
}
