// SPDX-License-Identifier: MIT

package fill

import (
	"errors"
	"math"
)

// Sentinel errors returned by the fill package.
var (
	// ErrNilGrid indicates a nil *raster.Grid was passed in.
	ErrNilGrid = errors.New("fill: grid is nil")

	// ErrBadMaxFillHeight indicates a negative, NaN or infinite fill cap.
	ErrBadMaxFillHeight = errors.New("fill: max fill height must be finite and non-negative")
)

// Options configures Fill.
type Options struct {
	// MaxFillHeight bounds output - original for every cell. +Inf means no cap.
	MaxFillHeight float64
}

// Option is a functional option for Fill.
type Option func(*Options)

// DefaultOptions returns an uncapped fill.
func DefaultOptions() Options {
	return Options{MaxFillHeight: math.Inf(1)}
}

// WithMaxFillHeight caps the raise applied to any single cell.
// Validated by Fill; a negative or non-finite value yields ErrBadMaxFillHeight.
func WithMaxFillHeight(h float64) Option {
	return func(o *Options) {
		o.MaxFillHeight = h
	}
}

func (o Options) validate() error {
	if math.IsInf(o.MaxFillHeight, 1) {
		return nil
	}
	if o.MaxFillHeight < 0 || math.IsNaN(o.MaxFillHeight) || math.IsInf(o.MaxFillHeight, -1) {
		return ErrBadMaxFillHeight
	}

	return nil
}
