package flowdir_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/hydrodem/flowdir"
	"github.com/katalvlaran/hydrodem/raster"
)

// ExampleRoute routes a small surface draining to the middle of the east edge.
func ExampleRoute() {
	g, _ := raster.FromRows([][]float64{
		{4, 3, 2},
		{4, 3, 1},
		{4, 3, 2},
	})
	dirs, _ := flowdir.Route(g)
	for r := 0; r < dirs.Rows(); r++ {
		row := make([]string, 0, dirs.Cols())
		for c := 0; c < dirs.Cols(); c++ {
			row = append(row, dirs.At(g.Index(r, c)).String())
		}
		fmt.Println(strings.Join(row, " "))
	}

	// Output:
	// E SE S
	// E E E
	// E NE N
}
