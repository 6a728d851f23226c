// SPDX-License-Identifier: MIT

// Package raster is the grid data model shared by every hydrodem stage.
//
// What:
//
//   - Grid is a rows×cols row-major float64 raster with a nodata sentinel,
//     a square cell size and an upper-left origin.
//   - D8 neighbourhood offsets in a fixed priority order (E, SE, S, SW, W,
//     NW, N, NE), reused by routing, filling and labelling.
//   - Regions finds connected components of valid cells under Conn4 or Conn8.
//   - Summary reports count/min/max/mean of valid cells.
//
// Why:
//
//   - Every downstream component must propagate nodata instead of treating
//     it as zero; centralising the sentinel test in IsNoData keeps that rule
//     in one place.
//   - Grids are treated as immutable by consumers: stages build new grids via
//     Like/Clone and never mutate their inputs.
//
// Complexity:
//
//   - New/FromRows/Clone: O(R×C) time and memory.
//   - At/Set/Cell/SetCell: O(1).
//   - Regions: O(R×C×d), d = 4 or 8.
//
// Errors:
//
//   - ErrEmptyGrid:       zero rows or zero columns.
//   - ErrNonRectangular:  rows of differing lengths.
//   - ErrOutOfRange:      row/col outside the grid.
//   - ErrNonFinite:       NaN or ±Inf where a finite value is required.
//   - ErrBadCellSize:     cell size not strictly positive and finite.
//   - ErrShapeMismatch:   two grids expected to align do not.
//   - ErrAllNoData:       a statistic was requested over no valid cells.
package raster
