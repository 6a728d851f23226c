// SPDX-License-Identifier: MIT

// Package fill produces a depressionless copy of an elevation grid using the
// priority-flood algorithm.
//
// What:
//
//   - Fill raises every interior local minimum to its spill elevation so that
//     each valid cell has a non-ascending path to the grid edge or to nodata.
//   - WithMaxFillHeight caps how far any cell may be raised; cells needing
//     more are resolved at the cap and may keep a local sink.
//   - Difference and Depth compare a filled surface with its original.
//
// Algorithm:
//
//  1. Seed a min-heap with every valid cell on the grid edge or touching
//     nodata, keyed by its own elevation.
//  2. Pop the lowest cell; each unresolved valid neighbour receives
//     max(original, popped) (capped when configured), is marked resolved and
//     pushed with that elevation.
//  3. Equal keys pop in insertion order (FIFO), so output is reproducible.
//
// Complexity:
//
//   - Fill:             O(N log N) time, O(N) memory (N = cells).
//   - Difference/Depth: O(N).
//
// Errors:
//
//   - ErrNilGrid:           nil input grid.
//   - ErrBadMaxFillHeight:  negative or non-finite fill cap.
//   - raster.ErrShapeMismatch from Difference/Depth.
package fill
