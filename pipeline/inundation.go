// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/katalvlaran/hydrodem/classify"
	"github.com/katalvlaran/hydrodem/raster"
)

// InundationExtents splits elev into presence masks between consecutive
// thresholds after scaling by 10^decimals. See classify.BandedInundation.
func InundationExtents(elev *raster.Grid, thresholds []float64, decimals int, opts ...classify.InundationOption) ([]classify.Band, error) {
	if elev == nil {
		return nil, ErrNilGrid
	}

	return classify.BandedInundation(elev, thresholds, decimals, opts...)
}
