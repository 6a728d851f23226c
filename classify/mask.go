// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hydrodem/raster"
)

// MaxDecimalPlaces bounds the scale exponent accepted by Scale.
const MaxDecimalPlaces = 12

// Marker is the value written on cells kept by MaskBetween.
const Marker = 1.0

func checkThreshold(th float64) error {
	if math.IsNaN(th) || math.IsInf(th, 0) {
		return fmt.Errorf("%w: %v", ErrBadThreshold, th)
	}

	return nil
}

// MaskBelow keeps cells with v ≥ th; the rest become nodata.
func MaskBelow(g *raster.Grid, th float64) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkThreshold(th); err != nil {
		return nil, err
	}

	return g.Map(func(v float64) (float64, bool) { return v, v >= th }), nil
}

// MaskAbove keeps cells with v ≤ th; the rest become nodata.
func MaskAbove(g *raster.Grid, th float64) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkThreshold(th); err != nil {
		return nil, err
	}

	return g.Map(func(v float64) (float64, bool) { return v, v <= th }), nil
}

// MaskBetween nulls cells above high, then nulls the remaining cells below
// low, and writes Marker on the survivors (low ≤ v ≤ high).
func MaskBetween(g *raster.Grid, low, high float64) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkThreshold(low); err != nil {
		return nil, err
	}
	if err := checkThreshold(high); err != nil {
		return nil, err
	}
	if low > high {
		return nil, fmt.Errorf("%w: low %v > high %v", ErrThresholdOrder, low, high)
	}
	upper, err := MaskAbove(g, high)
	if err != nil {
		return nil, err
	}

	return upper.Map(func(v float64) (float64, bool) { return Marker, v >= low }), nil
}

// Scale returns round(v·10^decimals) for every valid cell.
func Scale(g *raster.Grid, decimals int) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if decimals < 0 || decimals > MaxDecimalPlaces {
		return nil, fmt.Errorf("%w: %d", ErrBadDecimalPlaces, decimals)
	}
	m := math.Pow10(decimals)

	return g.Map(func(v float64) (float64, bool) { return math.Round(v * m), true }), nil
}
