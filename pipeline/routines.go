// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/hydrodem/classify"
	"github.com/katalvlaran/hydrodem/fill"
	"github.com/katalvlaran/hydrodem/raster"
	"github.com/katalvlaran/hydrodem/terrain"
)

func (r *Runner) begin(routine string) (uuid.UUID, *zap.Logger) {
	id := uuid.New()
	log := r.log.With(zap.String("routine", routine), zap.String("run_id", id.String()))
	log.Info("routine started")

	return id, log
}

// RunHydrologicalRoutine runs HydrologicalRoutine with the configured
// accumulation threshold and fill cap, then exports every product:
// rasters <root>_fill, _fdir, _facc, _network, _basins, _filldiff and
// polygons <root>_Fill_polygons, _flow_network_polygons, _basins_polygons.
//
// A stage failure returns the partial result and exports nothing. Export
// failures are combined; the result is complete in that case.
func (r *Runner) RunHydrologicalRoutine(ctx context.Context, surface *raster.Grid) (*HydrologyResult, Report, error) {
	id, log := r.begin("hydrology")
	rep := Report{RunID: id}

	var opts []fill.Option
	if h := r.cfg.MaxFillHeight; h != nil {
		opts = append(opts, fill.WithMaxFillHeight(*h))
	}
	res, err := hydrology(ctx, log, surface, r.cfg.FlowAccThreshold, opts...)
	if err != nil {
		return res, rep, err
	}
	fields := []zap.Field{
		zap.Int("cells", surface.Count()),
		zap.Int("filled_cells", res.FillDiff.Count()),
		zap.Int("depressions", len(res.FillDiff.Regions(raster.Conn8))),
		zap.Int("network_cells", res.Network.Count()),
		zap.Int("basins", res.Basins.Count()),
	}
	if s, err := surface.Summary(); err == nil {
		fields = append(fields, zap.Float64("z_min", s.Min), zap.Float64("z_max", s.Max), zap.Float64("z_mean", s.Mean))
	}
	if depth, err := fill.Depth(res.Fill, surface); err == nil {
		if s, err := depth.Summary(); err == nil {
			fields = append(fields, zap.Float64("max_fill_depth", s.Max))
		}
	}
	log.Info("hydrology computed", fields...)

	basins := res.Basins.ToRaster()
	var layers []layer
	layers = append(layers, r.rasterLayer(SuffixFill, res.Fill)...)
	layers = append(layers, r.rasterLayer(SuffixFlowDir, res.Direction.ToRaster())...)
	layers = append(layers, r.rasterLayer(SuffixFlowAcc, res.Accumulation)...)
	layers = append(layers, r.rasterLayer(SuffixNetwork, res.Network)...)
	layers = append(layers, r.rasterLayer(SuffixBasins, basins)...)
	layers = append(layers, r.rasterLayer(SuffixFillDiff, res.FillDiff)...)
	layers = append(layers, r.polygonLayer(SuffixFillPolygons, res.FillDiff)...)
	layers = append(layers, r.polygonLayer(SuffixNetworkPolygons, res.Network)...)
	layers = append(layers, r.polygonLayer(SuffixBasinsPolygons, basins)...)

	rep.Outputs, err = r.export(ctx, log, id, layers)

	return res, rep, err
}

// RunInundationExtents computes the configured bands over elev and exports
// each as <root>_<label> (raster) and <root>_<label>_polygons.
func (r *Runner) RunInundationExtents(ctx context.Context, elev *raster.Grid) ([]classify.Band, Report, error) {
	id, log := r.begin("inundation")
	rep := Report{RunID: id}

	var opts []classify.InundationOption
	if r.cfg.BelowBand {
		opts = append(opts, classify.WithBelowBand())
	}
	if r.cfg.AboveBand {
		opts = append(opts, classify.WithAboveBand())
	}
	var bands []classify.Band
	err := runStages(ctx, log, []stage{{"inundation bands", func() (err error) {
		bands, err = InundationExtents(elev, r.cfg.Thresholds, r.cfg.DecimalPlaces, opts...)
		return err
	}}})
	if err != nil {
		return nil, rep, err
	}

	var layers []layer
	for _, b := range bands {
		log.Info("band computed",
			zap.String("band", b.Label()),
			zap.Int("cells", b.Cells),
			zap.Int("patches", len(b.Grid.Regions(raster.Conn8))),
		)
		if b.Cells == 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("band %s is empty", b.Label()))
		}
		suffix := "_" + b.Label()
		layers = append(layers, r.rasterLayer(suffix, b.Grid)...)
		layers = append(layers, r.polygonLayer(suffix+SuffixPolygons, b.Grid)...)
	}
	rep.Outputs, err = r.export(ctx, log, id, layers)

	return bands, rep, err
}

// RunPercentileClasses reclassifies g into Config.ClassCount percentile
// classes and exports <root>_classes. A grid without valid cells is not an
// error: the all-nodata result is exported and a warning is reported.
func (r *Runner) RunPercentileClasses(ctx context.Context, g *raster.Grid) (*raster.Grid, classify.Spec, Report, error) {
	id, log := r.begin("classes")
	rep := Report{RunID: id}

	var (
		out  *raster.Grid
		spec classify.Spec
	)
	err := runStages(ctx, log, []stage{{"percentile classes", func() (err error) {
		if g == nil {
			return ErrNilGrid
		}
		out, spec, err = classify.PercentileClassify(g, r.cfg.ClassCount)
		if errors.Is(err, classify.ErrEmptyValueDomain) {
			log.Warn("no valid cells to classify")
			rep.Warnings = append(rep.Warnings, err.Error())
			return nil
		}
		return err
	}}})
	if err != nil {
		return nil, spec, rep, err
	}
	for _, iv := range spec.Intervals {
		log.Debug("class", zap.Int("class", iv.Class), zap.Float64("low", iv.Low), zap.Float64("high", iv.High))
	}
	rep.Outputs, err = r.export(ctx, log, id, r.rasterLayer(SuffixClasses, out))

	return out, spec, rep, err
}

// TerrainResult holds the products of RunTerrain.
type TerrainResult struct {
	Slope  *raster.Grid
	Aspect *raster.Grid
	Steep  *raster.Grid
}

// RunTerrain derives slope, aspect and the steep-area mask (slope ≥
// Config.SteepSlope) and exports <root>_slope, _aspect, _steep and
// _steep_polygons.
func (r *Runner) RunTerrain(ctx context.Context, elev *raster.Grid) (*TerrainResult, Report, error) {
	id, log := r.begin("terrain")
	rep := Report{RunID: id}

	res := &TerrainResult{}
	err := runStages(ctx, log, []stage{
		{"slope", func() (err error) {
			res.Slope, err = terrain.Slope(elev)
			return err
		}},
		{"aspect", func() (err error) {
			res.Aspect, err = terrain.Aspect(elev)
			return err
		}},
		{"steep areas", func() (err error) {
			res.Steep, err = terrain.SteepAreas(elev, r.cfg.SteepSlope)
			return err
		}},
	})
	if err != nil {
		return res, rep, err
	}
	log.Info("terrain computed",
		zap.Int("steep_cells", res.Steep.Count()),
		zap.Int("steep_areas", len(res.Steep.Regions(raster.Conn8))),
	)

	var layers []layer
	layers = append(layers, r.rasterLayer(SuffixSlope, res.Slope)...)
	layers = append(layers, r.rasterLayer(SuffixAspect, res.Aspect)...)
	layers = append(layers, r.rasterLayer(SuffixSteep, res.Steep)...)
	layers = append(layers, r.polygonLayer(SuffixSteep+SuffixPolygons, res.Steep)...)
	rep.Outputs, err = r.export(ctx, log, id, layers)

	return res, rep, err
}
