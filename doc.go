// Package hydrodem is a raster-hydrology and threshold-classification engine
// for regular elevation grids.
//
// What is inside?
//
//	raster/    Grid data model, D8 neighbourhood, connected regions, summary stats
//	fill/      priority-flood depression filling, fill difference and depth
//	flowdir/   D8 flow routing with edge, nodata and flat resolution
//	accum/     flow accumulation (Kahn traversal of the drainage forest)
//	basin/     stream network extraction and basin labelling
//	classify/  threshold masks, banded inundation, percentile classes
//	terrain/   slope, aspect and steep areas
//	rasterio/  MessagePack raster files
//	catalog/   SQLite registry of collision-free layer names
//	pipeline/  hydrological and inundation routines, config, logging, export
//
// A typical hydrological run:
//
//	surface ──fill──▶ filled ──route──▶ directions ──accumulate──▶ accumulation
//	                                         │                          │
//	                                         └──label──▶ basins          └──threshold──▶ network
//
// Every stage returns a fresh grid and never mutates its input; nodata in is
// nodata out.
//
//	go get github.com/katalvlaran/hydrodem
package hydrodem
