// SPDX-License-Identifier: MIT

package accum

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hydrodem/flowdir"
	"github.com/katalvlaran/hydrodem/raster"
)

// Sentinel errors for accumulation.
var (
	// ErrNilGrid indicates a nil direction grid.
	ErrNilGrid = errors.New("accum: direction grid is nil")

	// ErrRoutingCycle indicates the direction graph is not acyclic.
	ErrRoutingCycle = errors.New("accum: routing cycle detected")
)

// Options configures Accumulate.
type Options struct {
	// Weights, if non-nil, gives each cell's own contribution. Nodata weights contribute 0.
	Weights *raster.Grid
}

// Option is a functional option for Accumulate.
type Option func(*Options)

// WithWeights accumulates per-cell weights instead of cell counts.
func WithWeights(w *raster.Grid) Option {
	return func(o *Options) {
		o.Weights = w
	}
}

// Accumulate returns the accumulation grid for dirs.
// Nodata directions produce nodata; every other cell holds its own weight
// plus the accumulation of all cells draining into it.
func Accumulate(dirs *flowdir.Grid, opts ...Option) (*raster.Grid, error) {
	if dirs == nil {
		return nil, ErrNilGrid
	}
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	out := dirs.Shape()
	if cfg.Weights != nil {
		if err := raster.SameShape(out, cfg.Weights); err != nil {
			return nil, fmt.Errorf("accum: weights: %w", err)
		}
	}

	n := dirs.Len()
	indeg := make([]int32, n)
	valid := 0
	for i := 0; i < n; i++ {
		if !dirs.Valid(i) {
			continue
		}
		valid++
		out.SetCell(i, weight(cfg.Weights, i))
		if j, in := dirs.Target(i); in {
			indeg[j]++
		}
	}

	// Sources (no donors) in row-major order; receivers join once their
	// last donor is done.
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if dirs.Valid(i) && indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		j, in := dirs.Target(u)
		if !in {
			continue
		}
		out.SetCell(j, out.Cell(j)+out.Cell(u))
		indeg[j]--
		if indeg[j] == 0 {
			queue = append(queue, j)
		}
	}
	if len(queue) < valid {
		return nil, fmt.Errorf("%w: %d of %d cells never drain", ErrRoutingCycle, valid-len(queue), valid)
	}

	return out, nil
}

func weight(w *raster.Grid, i int) float64 {
	if w == nil {
		return 1
	}
	if !w.Valid(i) {
		return 0
	}

	return w.Cell(i)
}

// Outlets lists the row-major offsets of every outlet cell in dirs.
func Outlets(dirs *flowdir.Grid) []int {
	var out []int
	for i := 0; i < dirs.Len(); i++ {
		if dirs.Outlet(i) {
			out = append(out, i)
		}
	}

	return out
}
