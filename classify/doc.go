// SPDX-License-Identifier: MIT

// Package classify turns continuous rasters into threshold masks, banded
// inundation extents and percentile classes.
//
// What:
//
//   - MaskBelow / MaskAbove keep cells on one side of a threshold (values kept).
//   - MaskBetween nulls cells above high, then cells below low, and writes the
//     constant marker 1 on the survivors: a presence mask ready for
//     polygonization.
//   - BandedInundation scales elevations to integers, round(v·10^d), so
//     threshold comparisons do not drift, and emits one MaskBetween band per
//     adjacent threshold pair (plus optional below/above bands).
//   - PercentileClassify derives classCount contiguous intervals from the
//     0..100 percentiles of the valid values and remaps each cell to its
//     1-based class.
//   - Reclassify applies an explicit, user-supplied Spec.
//
// Every operation preserves nodata: nodata in, nodata out.
//
// Complexity:
//
//   - Masks, Scale, Reclassify: O(N).
//   - BandedInundation:         O(N·B) for B bands, bands computed concurrently.
//   - PercentileClassify:       O(N log N) (sort of valid values).
//
// Errors:
//
//   - ErrNilGrid, ErrBadThreshold, ErrNoThresholds, ErrThresholdOrder,
//     ErrBadDecimalPlaces, ErrBadClassCount, ErrBadSpec.
//   - ErrEmptyValueDomain is reported with an all-nodata result, not instead of one.
package classify
