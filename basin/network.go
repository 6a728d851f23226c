// SPDX-License-Identifier: MIT

package basin

import (
	"errors"
	"math"

	"github.com/katalvlaran/hydrodem/raster"
)

// Sentinel errors for network extraction and labelling.
var (
	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = errors.New("basin: grid is nil")

	// ErrBadThreshold indicates a NaN accumulation threshold.
	ErrBadThreshold = errors.New("basin: threshold must not be NaN")
)

// ExtractNetwork returns a mask with 1 where acc ≥ threshold and nodata
// elsewhere, including nodata accumulation cells.
func ExtractNetwork(acc *raster.Grid, threshold float64) (*raster.Grid, error) {
	if acc == nil {
		return nil, ErrNilGrid
	}
	if math.IsNaN(threshold) {
		return nil, ErrBadThreshold
	}

	return acc.Map(func(v float64) (float64, bool) {
		return 1, v >= threshold
	}), nil
}
