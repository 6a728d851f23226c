// SPDX-License-Identifier: MIT

package classify

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/hydrodem/raster"
)

// DefaultClassCount is the number of percentile classes used by the hotspot routine.
const DefaultClassCount = 5

// Interval maps values in [Low, High) to Class.
type Interval struct {
	Low, High float64
	Class     int
}

// Spec is an ordered list of intervals. The last interval is closed at High.
type Spec struct {
	Intervals []Interval
}

// Validate checks that intervals are non-inverted and sorted by bounds.
func (s Spec) Validate() error {
	for i, iv := range s.Intervals {
		if iv.Low > iv.High {
			return fmt.Errorf("%w: interval %d [%v, %v]", ErrBadSpec, i, iv.Low, iv.High)
		}
		if i > 0 && iv.Low < s.Intervals[i-1].High {
			return fmt.Errorf("%w: interval %d overlaps its predecessor", ErrBadSpec, i)
		}
	}

	return nil
}

// Classify returns the class of v and whether any interval contains it.
// Complexity: O(log K).
func (s Spec) Classify(v float64) (int, bool) {
	ivs := s.Intervals
	n := len(ivs)
	if n == 0 {
		return 0, false
	}
	if last := ivs[n-1]; v == last.High && v >= last.Low {
		return last.Class, true
	}
	k := sort.Search(n, func(i int) bool { return ivs[i].High > v })
	if k < n && v >= ivs[k].Low {
		return ivs[k].Class, true
	}

	return 0, false
}

// Nearest is Classify with the outer intervals stretched open: values under
// the first bound take the first class and values over the last bound take
// the last class. Values falling in a gap between intervals still miss.
func (s Spec) Nearest(v float64) (int, bool) {
	if c, ok := s.Classify(v); ok {
		return c, true
	}
	n := len(s.Intervals)
	switch {
	case n == 0:
		return 0, false
	case v < s.Intervals[0].Low:
		return s.Intervals[0].Class, true
	case v > s.Intervals[n-1].High:
		return s.Intervals[n-1].Class, true
	}

	return 0, false
}

// Reclassify replaces every valid cell with its class under spec.
// Cells no interval contains become nodata.
func Reclassify(g *raster.Grid, spec Spec) (*raster.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return g.Map(func(v float64) (float64, bool) {
		c, ok := spec.Classify(v)
		return float64(c), ok
	}), nil
}

// PercentileSpec builds classCount contiguous intervals whose bounds are the
// k/classCount percentiles (k = 0..classCount) of the valid values of g.
// A percentile p sits at rank p·(n-1) of the sorted values, interpolated
// linearly between its neighbours; the outer bounds are the exact minimum
// and maximum.
//
// Complexity: O(N log N).
func PercentileSpec(g *raster.Grid, classCount int) (Spec, error) {
	if g == nil {
		return Spec{}, ErrNilGrid
	}
	if classCount < 1 {
		return Spec{}, fmt.Errorf("%w: %d", ErrBadClassCount, classCount)
	}
	vals := g.Values()
	if len(vals) == 0 {
		return Spec{}, ErrEmptyValueDomain
	}
	sort.Float64s(vals)

	bounds := make([]float64, classCount+1)
	bounds[0] = floats.Min(vals)
	bounds[classCount] = floats.Max(vals)
	for k := 1; k < classCount; k++ {
		q := linearPercentile(vals, float64(k)/float64(classCount))
		// keep bounds monotone under rounding
		if q < bounds[k-1] {
			q = bounds[k-1]
		}
		if q > bounds[classCount] {
			q = bounds[classCount]
		}
		bounds[k] = q
	}

	spec := Spec{Intervals: make([]Interval, classCount)}
	for k := 0; k < classCount; k++ {
		spec.Intervals[k] = Interval{Low: bounds[k], High: bounds[k+1], Class: k + 1}
	}

	return spec, nil
}

// linearPercentile returns the p-th fraction of sorted (non-empty,
// ascending) at rank h = p·(n-1): x[⌊h⌋] + (h-⌊h⌋)·(x[⌊h⌋+1]-x[⌊h⌋]).
func linearPercentile(sorted []float64, p float64) float64 {
	last := len(sorted) - 1
	h := p * float64(last)
	lo := int(math.Floor(h))
	if lo >= last {
		return sorted[last]
	}
	if lo < 0 {
		return sorted[0]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// PercentileClassify reclassifies g into classCount percentile classes
// numbered 1..classCount. Values beyond the outer bounds take the nearest
// outer class. When g holds no valid cells it returns an all-nodata grid
// together with ErrEmptyValueDomain.
func PercentileClassify(g *raster.Grid, classCount int) (*raster.Grid, Spec, error) {
	spec, err := PercentileSpec(g, classCount)
	if err != nil {
		if g != nil && errors.Is(err, ErrEmptyValueDomain) {
			return g.Like(), Spec{}, err
		}
		return nil, Spec{}, err
	}
	out := g.Map(func(v float64) (float64, bool) {
		c, ok := spec.Nearest(v)
		return float64(c), ok
	})

	return out, spec, nil
}
