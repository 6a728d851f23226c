// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"fmt"

	"github.com/katalvlaran/hydrodem/pipeline"
	"github.com/katalvlaran/hydrodem/raster"
)

// ExampleHydrologicalRoutine fills a single pit and reports what changed.
func ExampleHydrologicalRoutine() {
	surface, _ := raster.FromRows([][]float64{
		{9, 9, 9, 9, 9},
		{9, 6, 6, 6, 9},
		{9, 6, 1, 5, 4},
		{9, 6, 6, 6, 9},
		{9, 9, 9, 9, 9},
	})
	res, err := pipeline.HydrologicalRoutine(surface, 1000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("filled centre:", res.Fill.Cell(12))
	fmt.Println("raised cells:", res.FillDiff.Count())
	fmt.Println("network cells:", res.Network.Count())
	// Output:
	// filled centre: 5
	// raised cells: 1
	// network cells: 0
}
