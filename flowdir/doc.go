// SPDX-License-Identifier: MIT

// Package flowdir assigns every cell of a filled elevation grid a single D8
// (steepest-descent) flow direction.
//
// What:
//
//   - Route computes slope (z - zn) / d to each of the 8 neighbours, with
//     d = cell size or cell size·√2, and points the cell at the steepest
//     strictly-downhill neighbour.
//   - Ties use the fixed priority E, SE, S, SW, W, NW, N, NE.
//   - Cells without a lower neighbour are resolved in this order: edge cells
//     drain off-grid, nodata-adjacent cells drain into nodata, flat cells are
//     routed across the flat toward its draining rim by a breadth-first pass,
//     anything left (a sink kept by a capped fill) gets None.
//
// Codes follow the common D8 convention: E=1, SE=2, S=4, SW=8, W=16, NW=32,
// N=64, NE=128, None=0 and NoData=255.
//
// Complexity:
//
//   - Route: O(N) time and memory (8 neighbour checks per cell plus one BFS).
//
// Errors:
//
//   - ErrNilGrid:        nil input.
//   - ErrBadDirection:   a code outside the D8 set in FromCodes.
//   - raster.ErrEmptyGrid / ErrNonRectangular from FromCodes.
package flowdir
