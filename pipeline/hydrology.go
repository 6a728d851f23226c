// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/hydrodem/accum"
	"github.com/katalvlaran/hydrodem/basin"
	"github.com/katalvlaran/hydrodem/fill"
	"github.com/katalvlaran/hydrodem/flowdir"
	"github.com/katalvlaran/hydrodem/raster"
)

// ErrNilGrid indicates a nil input raster.
var ErrNilGrid = errors.New("pipeline: input grid is nil")

// HydrologyResult holds the products of HydrologicalRoutine. Fields of
// stages that did not run are nil.
type HydrologyResult struct {
	Fill         *raster.Grid
	Direction    *flowdir.Grid
	Accumulation *raster.Grid
	Network      *raster.Grid
	Basins       *basin.LabelGrid
	FillDiff     *raster.Grid
}

// stage is one named step of a routine.
type stage struct {
	name string
	run  func() error
}

// runStages executes stages in order, checking ctx before each one.
func runStages(ctx context.Context, log *zap.Logger, stages []stage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline: %s: %w", s.name, err)
		}
		start := time.Now()
		if err := s.run(); err != nil {
			log.Error("stage failed", zap.String("stage", s.name), zap.Error(err))
			return fmt.Errorf("pipeline: %s: %w", s.name, err)
		}
		log.Debug("stage done", zap.String("stage", s.name), zap.Duration("elapsed", time.Since(start)))
	}

	return nil
}

// HydrologicalRoutine fills surface, routes and accumulates flow, extracts
// the network of cells with accumulation ≥ threshold, labels basins and
// marks the cells raised by filling.
//
// On error the returned result carries every product computed so far.
func HydrologicalRoutine(surface *raster.Grid, threshold float64, opts ...fill.Option) (*HydrologyResult, error) {
	return hydrology(context.Background(), zap.NewNop(), surface, threshold, opts...)
}

func hydrology(ctx context.Context, log *zap.Logger, surface *raster.Grid, threshold float64, opts ...fill.Option) (*HydrologyResult, error) {
	if surface == nil {
		return nil, ErrNilGrid
	}
	if math.IsNaN(threshold) {
		return nil, fmt.Errorf("pipeline: %w", basin.ErrBadThreshold)
	}

	res := &HydrologyResult{}
	err := runStages(ctx, log, []stage{
		{"fill", func() (err error) {
			res.Fill, err = fill.Fill(surface, opts...)
			return err
		}},
		{"flow direction", func() (err error) {
			res.Direction, err = flowdir.Route(res.Fill)
			return err
		}},
		{"flow accumulation", func() (err error) {
			res.Accumulation, err = accum.Accumulate(res.Direction)
			return err
		}},
		{"flow network", func() (err error) {
			res.Network, err = basin.ExtractNetwork(res.Accumulation, threshold)
			return err
		}},
		{"basins", func() (err error) {
			res.Basins, err = basin.LabelBasins(res.Direction)
			return err
		}},
		{"fill difference", func() (err error) {
			res.FillDiff, err = fill.Difference(res.Fill, surface)
			return err
		}},
	})

	return res, err
}
