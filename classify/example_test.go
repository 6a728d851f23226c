// SPDX-License-Identifier: MIT

package classify_test

import (
	"fmt"

	"github.com/katalvlaran/hydrodem/classify"
	"github.com/katalvlaran/hydrodem/raster"
)

// ExampleBandedInundation splits a three-cell elevation profile into bands.
func ExampleBandedInundation() {
	elev, _ := raster.FromRows([][]float64{{2, 7, 12}})
	bands, err := classify.BandedInundation(elev, []float64{0, 5, 10, 15}, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range bands {
		fmt.Printf("%s: %d cell(s) %s", b.Label(), b.Cells, b.Grid)
	}
	// Output:
	// from_0_to_5: 1 cell(s) [1, ·, ·]
	// from_5_to_10: 1 cell(s) [·, 1, ·]
	// from_10_to_15: 1 cell(s) [·, ·, 1]
}
