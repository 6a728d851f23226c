// SPDX-License-Identifier: MIT

package raster

import "errors"

// Sentinel errors for raster operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")

	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("raster: index out of range")

	// ErrNonFinite indicates a NaN or ±Inf cell value that is not the nodata sentinel.
	ErrNonFinite = errors.New("raster: NaN or Inf cell value")

	// ErrBadCellSize indicates a cell size that is not strictly positive and finite.
	ErrBadCellSize = errors.New("raster: cell size must be positive and finite")

	// ErrShapeMismatch indicates two grids that must align have different shapes.
	ErrShapeMismatch = errors.New("raster: grid shapes do not match")

	// ErrAllNoData indicates a statistic requested over a grid without valid cells.
	ErrAllNoData = errors.New("raster: grid has no valid cells")
)
