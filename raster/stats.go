// SPDX-License-Identifier: MIT

package raster

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the valid cells of a grid.
type Summary struct {
	Count          int
	Min, Max, Mean float64
}

// Summary computes count, min, max and mean over valid cells.
// Returns ErrAllNoData when the grid holds no valid cell.
func (g *Grid) Summary() (Summary, error) {
	vals := g.Values()
	if len(vals) == 0 {
		return Summary{}, ErrAllNoData
	}

	return Summary{
		Count: len(vals),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
		Mean:  stat.Mean(vals, nil),
	}, nil
}
