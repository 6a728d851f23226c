// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/katalvlaran/hydrodem/catalog"
	"github.com/katalvlaran/hydrodem/raster"
	"github.com/katalvlaran/hydrodem/rasterio"
)

// RasterStore persists rasters by name.
type RasterStore interface {
	Save(ctx context.Context, name string, g *raster.Grid) error
	Load(ctx context.Context, name string) (*raster.Grid, error)
}

// Polygonizer converts a presence or label raster into a polygon layer.
type Polygonizer interface {
	RasterToPolygon(ctx context.Context, g *raster.Grid, name string, simplify bool) error
}

// Catalog hands out collision-free layer names and records produced layers.
// A name from Resolve is either recorded or released.
type Catalog interface {
	Resolve(ctx context.Context, name string) (string, error)
	Record(ctx context.Context, e catalog.Entry) error
	Release(ctx context.Context, name string) error
}

// Runner executes routines with configuration, logging and export.
type Runner struct {
	cfg     Config
	log     *zap.Logger
	store   RasterStore
	catalog Catalog
	poly    Polygonizer
	closers []io.Closer // resources opened by New
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithStore sets the raster store, overriding Config.Workspace.
func WithStore(s RasterStore) Option {
	return func(r *Runner) { r.store = s }
}

// WithCatalog sets the layer catalog, overriding Config.Catalog.
func WithCatalog(c Catalog) Option {
	return func(r *Runner) { r.catalog = c }
}

// WithPolygonizer enables vector export.
func WithPolygonizer(p Polygonizer) Option {
	return func(r *Runner) { r.poly = p }
}

// New validates cfg and builds a Runner. Without injected collaborators it
// opens a rasterio.FileStore in cfg.Workspace and a SQLite catalog at
// cfg.Catalog when those are set; Close releases them.
func New(ctx context.Context, cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil && cfg.Workspace != "" {
		fs, err := rasterio.NewFileStore(cfg.Workspace)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		r.store = fs
	}
	if r.catalog == nil && cfg.Catalog != "" {
		c, err := catalog.Open(ctx, cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		r.catalog = c
		r.closers = append(r.closers, c)
	}
	r.log.Info("runner ready",
		zap.String("root", cfg.Root),
		zap.Bool("store", r.store != nil),
		zap.Bool("catalog", r.catalog != nil),
		zap.Bool("polygons", r.poly != nil && cfg.Polygons),
	)

	return r, nil
}

// Config returns the runner's configuration.
func (r *Runner) Config() Config { return r.cfg }

// Close releases resources opened by New.
func (r *Runner) Close() error {
	var err error
	for _, c := range r.closers {
		err = multierr.Append(err, c.Close())
	}
	r.closers = nil

	return err
}
