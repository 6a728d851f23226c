// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydrodem/classify"
)

// ErrInvalidConfig wraps every configuration problem found by Validate.
var ErrInvalidConfig = errors.New("pipeline: invalid configuration")

// Config drives a Runner. Zero-valued fields are not defaults: start from
// DefaultConfig (LoadConfig does).
type Config struct {
	// Workspace is the directory of the default file-backed raster store.
	// Empty means no store unless one is injected with WithStore.
	Workspace string `yaml:"workspace"`
	// Catalog is the path of the SQLite layer catalog. Empty disables it.
	Catalog string `yaml:"catalog"`
	// Root prefixes every output layer name.
	Root string `yaml:"root"`

	FlowAccThreshold float64  `yaml:"flow_acc_threshold"`
	MaxFillHeight    *float64 `yaml:"max_fill_height,omitempty"`

	Thresholds    []float64 `yaml:"thresholds"`
	DecimalPlaces int       `yaml:"decimal_places"`
	BelowBand     bool      `yaml:"below_band"`
	AboveBand     bool      `yaml:"above_band"`

	ClassCount int     `yaml:"class_count"`
	SteepSlope float64 `yaml:"steep_slope"`

	// Polygons enables vector export when a Polygonizer is configured.
	Polygons bool `yaml:"polygons"`
	// Simplify is forwarded to the Polygonizer.
	Simplify bool `yaml:"simplify"`
	// ExportWorkers bounds concurrent exports.
	ExportWorkers int `yaml:"export_workers"`
}

// DefaultConfig returns the stock settings: root "DTM", accumulation
// threshold 1000, bands at 0/5/10/15 with three decimals, five classes.
func DefaultConfig() Config {
	return Config{
		Root:             "DTM",
		FlowAccThreshold: 1000,
		Thresholds:       []float64{0, 5, 10, 15},
		DecimalPlaces:    3,
		BelowBand:        true,
		ClassCount:       classify.DefaultClassCount,
		SteepSlope:       20,
		Polygons:         true,
		ExportWorkers:    4,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pipeline: read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("pipeline: parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports every problem at once, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs error
	if c.Root == "" {
		errs = multierr.Append(errs, errors.New("root is empty"))
	}
	if math.IsNaN(c.FlowAccThreshold) || math.IsInf(c.FlowAccThreshold, 0) {
		errs = multierr.Append(errs, fmt.Errorf("flow_acc_threshold %v is not finite", c.FlowAccThreshold))
	}
	if h := c.MaxFillHeight; h != nil && (math.IsNaN(*h) || *h < 0) {
		errs = multierr.Append(errs, fmt.Errorf("max_fill_height %v is negative", *h))
	}
	if err := classify.CheckThresholds(c.Thresholds); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.DecimalPlaces < 0 || c.DecimalPlaces > classify.MaxDecimalPlaces {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d", classify.ErrBadDecimalPlaces, c.DecimalPlaces))
	}
	if c.ClassCount < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d", classify.ErrBadClassCount, c.ClassCount))
	}
	if math.IsNaN(c.SteepSlope) || c.SteepSlope < 0 || c.SteepSlope > 90 {
		errs = multierr.Append(errs, fmt.Errorf("steep_slope %v outside [0, 90]", c.SteepSlope))
	}
	if c.ExportWorkers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("export_workers %d < 1", c.ExportWorkers))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}

	return nil
}
