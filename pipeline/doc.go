// SPDX-License-Identifier: MIT

// Package pipeline chains the hydrodem stages into the routines users run:
//
//   - HydrologicalRoutine: fill → flow direction → accumulation → network,
//     basins and fill difference.
//   - InundationExtents:   banded inundation masks from elevation thresholds.
//
// Both are plain library functions. Runner wraps them with configuration,
// structured logging (zap) and export of every product to a RasterStore,
// an optional Polygonizer and an optional Catalog that resolves collision-free
// layer names. A Runner also drives the percentile-class and steep-area
// routines.
//
// Each stage finishes before the next begins and the context is checked
// between stages. A failing stage aborts the routine; the products of the
// stages that completed stay available in the returned result.
package pipeline
