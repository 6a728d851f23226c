// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hydrodem/raster"
)

// BandKind tells which side of the threshold list a Band covers.
type BandKind int

const (
	// Below covers cells at or under the first threshold.
	Below BandKind = iota
	// Between covers cells within one adjacent threshold pair.
	Between
	// Above covers cells at or over the last threshold.
	Above
)

func (k BandKind) String() string {
	switch k {
	case Below:
		return "below"
	case Between:
		return "between"
	case Above:
		return "above"
	default:
		return fmt.Sprintf("BandKind(%d)", int(k))
	}
}

// Band is one inundation extent. Low and High are the unscaled thresholds;
// Below bands have Low = -Inf and Above bands have High = +Inf.
// Grid is a presence mask (Marker or nodata) and Cells its valid count.
type Band struct {
	Kind  BandKind
	Low   float64
	High  float64
	Grid  *raster.Grid
	Cells int
}

// Label names the band the way output layers are suffixed:
// "from_0_to_5", "below_0", "above_15".
func (b Band) Label() string {
	switch b.Kind {
	case Below:
		return "below_" + ThresholdLabel(b.High)
	case Above:
		return "above_" + ThresholdLabel(b.Low)
	default:
		return "from_" + ThresholdLabel(b.Low) + "_to_" + ThresholdLabel(b.High)
	}
}

// ThresholdLabel formats th for use in a layer name; '.' becomes 'p'.
func ThresholdLabel(th float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(th, 'f', -1, 64), ".", "p")
}

// InundationOption toggles the optional edge bands of BandedInundation.
type InundationOption func(*inundationOptions)

type inundationOptions struct {
	below, above bool
}

// WithBelowBand prepends a band of cells at or under the first threshold.
func WithBelowBand() InundationOption {
	return func(o *inundationOptions) { o.below = true }
}

// WithAboveBand appends a band of cells at or over the last threshold.
func WithAboveBand() InundationOption {
	return func(o *inundationOptions) { o.above = true }
}

// CheckThresholds validates a threshold list: non-empty, finite and
// strictly increasing.
func CheckThresholds(thresholds []float64) error {
	if len(thresholds) == 0 {
		return ErrNoThresholds
	}
	for i, th := range thresholds {
		if err := checkThreshold(th); err != nil {
			return err
		}
		if i > 0 && th <= thresholds[i-1] {
			return fmt.Errorf("%w: %v after %v", ErrThresholdOrder, th, thresholds[i-1])
		}
	}

	return nil
}

// BandedInundation scales elev by 10^decimals and returns one Between band
// per adjacent threshold pair, in threshold order, plus the optional edge
// bands. Thresholds are validated before any work is done. Bands are
// computed concurrently; an empty band is an all-nodata grid with Cells 0.
//
// Complexity: O(N·B) for B bands.
func BandedInundation(elev *raster.Grid, thresholds []float64, decimals int, opts ...InundationOption) ([]Band, error) {
	if elev == nil {
		return nil, ErrNilGrid
	}
	if err := CheckThresholds(thresholds); err != nil {
		return nil, err
	}
	var o inundationOptions
	for _, opt := range opts {
		opt(&o)
	}
	scaled, err := Scale(elev, decimals)
	if err != nil {
		return nil, err
	}
	m := math.Pow10(decimals)

	bands := make([]Band, 0, len(thresholds)+1)
	if o.below {
		bands = append(bands, Band{Kind: Below, Low: math.Inf(-1), High: thresholds[0]})
	}
	for i := 1; i < len(thresholds); i++ {
		bands = append(bands, Band{Kind: Between, Low: thresholds[i-1], High: thresholds[i]})
	}
	if o.above {
		bands = append(bands, Band{Kind: Above, Low: thresholds[len(thresholds)-1], High: math.Inf(1)})
	}

	var eg errgroup.Group
	for i := range bands {
		b := &bands[i]
		eg.Go(func() error {
			grid, err := bandMask(scaled, b, m)
			if err != nil {
				return fmt.Errorf("classify: band %s: %w", b.Label(), err)
			}
			b.Grid, b.Cells = grid, grid.Count()

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return bands, nil
}

func bandMask(scaled *raster.Grid, b *Band, m float64) (*raster.Grid, error) {
	switch b.Kind {
	case Below:
		th := math.Round(b.High * m)
		return scaled.Map(func(v float64) (float64, bool) { return Marker, v <= th }), nil
	case Above:
		th := math.Round(b.Low * m)
		return scaled.Map(func(v float64) (float64, bool) { return Marker, v >= th }), nil
	default:
		return MaskBetween(scaled, math.Round(b.Low*m), math.Round(b.High*m))
	}
}
