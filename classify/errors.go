// SPDX-License-Identifier: MIT

package classify

import "errors"

// Sentinel errors for classification.
var (
	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = errors.New("classify: grid is nil")

	// ErrBadThreshold indicates a NaN or infinite threshold.
	ErrBadThreshold = errors.New("classify: threshold must be finite")

	// ErrNoThresholds indicates an empty threshold list.
	ErrNoThresholds = errors.New("classify: at least one threshold is required")

	// ErrThresholdOrder indicates thresholds that are not strictly increasing,
	// or a low bound above its high bound.
	ErrThresholdOrder = errors.New("classify: thresholds must be strictly increasing")

	// ErrBadDecimalPlaces indicates a scale exponent outside [0, MaxDecimalPlaces].
	ErrBadDecimalPlaces = errors.New("classify: decimal places out of range")

	// ErrBadClassCount indicates a class count below 1.
	ErrBadClassCount = errors.New("classify: class count must be positive")

	// ErrBadSpec indicates an explicit spec with unordered or inverted intervals.
	ErrBadSpec = errors.New("classify: intervals must be ordered and non-inverted")

	// ErrEmptyValueDomain indicates a statistic over a grid without valid cells.
	// The accompanying result grid is entirely nodata.
	ErrEmptyValueDomain = errors.New("classify: no valid cells to classify")
)
