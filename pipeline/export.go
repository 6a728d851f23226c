// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hydrodem/catalog"
	"github.com/katalvlaran/hydrodem/raster"
)

// Output describes one exported layer.
type Output struct {
	Name  string
	Kind  catalog.Kind
	Cells int
}

// Report summarizes a Runner invocation.
type Report struct {
	RunID    uuid.UUID
	Outputs  []Output
	Warnings []string
}

// layer is a product waiting for export.
type layer struct {
	name string
	kind catalog.Kind
	grid *raster.Grid
}

// rasterLayer and polygonLayer build the export list; a layer whose sink is
// not configured is dropped here so no name gets reserved for it.
func (r *Runner) rasterLayer(suffix string, g *raster.Grid) []layer {
	if r.store == nil || g == nil {
		return nil
	}

	return []layer{{name: r.cfg.Root + suffix, kind: catalog.KindRaster, grid: g}}
}

func (r *Runner) polygonLayer(suffix string, g *raster.Grid) []layer {
	if r.poly == nil || !r.cfg.Polygons || g == nil {
		return nil
	}

	return []layer{{name: r.cfg.Root + suffix, kind: catalog.KindPolygons, grid: g}}
}

// export writes layers concurrently. Every layer is attempted; failures are
// combined into one error and the outputs that succeeded are returned in
// layer order.
func (r *Runner) export(ctx context.Context, log *zap.Logger, runID uuid.UUID, layers []layer) ([]Output, error) {
	outs := make([]Output, len(layers))
	errs := make([]error, len(layers))

	var eg errgroup.Group
	eg.SetLimit(r.cfg.ExportWorkers)
	for i, l := range layers {
		i, l := i, l
		eg.Go(func() error {
			outs[i], errs[i] = r.exportOne(ctx, runID, l)
			return nil
		})
	}
	_ = eg.Wait()

	done := outs[:0]
	for i, o := range outs {
		if errs[i] != nil {
			log.Warn("export failed", zap.String("layer", layers[i].name), zap.Error(errs[i]))
			continue
		}
		log.Info("exported", zap.String("layer", o.Name), zap.String("kind", string(o.Kind)), zap.Int("cells", o.Cells))
		done = append(done, o)
	}

	return done, multierr.Combine(errs...)
}

func (r *Runner) exportOne(ctx context.Context, runID uuid.UUID, l layer) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, fmt.Errorf("pipeline: export %s: %w", l.name, err)
	}
	name := l.name
	if r.catalog != nil {
		var err error
		if name, err = r.catalog.Resolve(ctx, l.name); err != nil {
			return Output{}, fmt.Errorf("pipeline: export %s: %w", l.name, err)
		}
	}

	out, err := r.write(ctx, runID, name, l)
	if err != nil && r.catalog != nil {
		// the layer was not recorded, so its name is free again
		err = multierr.Append(err, r.catalog.Release(context.WithoutCancel(ctx), name))
	}

	return out, err
}

func (r *Runner) write(ctx context.Context, runID uuid.UUID, name string, l layer) (Output, error) {
	var err error
	switch l.kind {
	case catalog.KindPolygons:
		err = r.poly.RasterToPolygon(ctx, l.grid, name, r.cfg.Simplify)
	default:
		err = r.store.Save(ctx, name, l.grid)
	}
	if err != nil {
		return Output{}, fmt.Errorf("pipeline: export %s: %w", name, err)
	}

	if r.catalog != nil {
		e := catalog.Entry{Name: name, Kind: l.kind, RunID: runID, CreatedAt: time.Now()}
		if err := r.catalog.Record(ctx, e); err != nil {
			return Output{}, fmt.Errorf("pipeline: record %s: %w", name, err)
		}
	}

	return Output{Name: name, Kind: l.kind, Cells: l.grid.Count()}, nil
}
