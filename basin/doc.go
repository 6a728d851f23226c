// SPDX-License-Identifier: MIT

// Package basin derives drainage structure from accumulation and direction
// grids.
//
// What:
//
//   - ExtractNetwork thresholds an accumulation grid into a network mask:
//     1 where accumulation ≥ threshold, nodata everywhere else. Masks (not
//     0/1 rasters) are what polygonization expects.
//   - LabelBasins gives every outlet a fresh label (1, 2, … in row-major
//     order of outlets) and spreads it upstream, so two cells share a label
//     iff they drain to the same outlet.
//
// Complexity:
//
//   - ExtractNetwork: O(N).
//   - LabelBasins:    O(N·8) (reverse-neighbour scan per queued cell).
//
// Errors:
//
//   - ErrNilGrid:       nil input.
//   - ErrBadThreshold:  NaN threshold.
package basin
