// SPDX-License-Identifier: MIT

// Package accum computes flow accumulation over a D8 direction grid.
//
// Each valid cell has at most one outgoing edge (its flow direction), so the
// direction grid is a forest of in-trees rooted at outlets. Accumulate walks
// it in topological order: cells with no donors first, each cell finalised
// only after every donor has been added, then pushed to its receiver.
//
//	accumulation(cell) = weight(cell) + Σ accumulation(donors)
//
// The default weight is 1 (the result counts contributing cells including
// the cell itself); WithWeights supplies a per-cell weight grid.
//
// Complexity:
//
//   - Time:   O(N) (each cell queued once, one edge per cell).
//   - Memory: O(N) for in-degrees, the queue and the output.
//
// Errors:
//
//   - ErrNilGrid:               nil direction grid.
//   - ErrRoutingCycle:          some cells never reach in-degree zero; the
//     directions contain a cycle, which a correct fill/route never produces.
//   - raster.ErrShapeMismatch:  weight grid not aligned with the directions.
package accum
