// SPDX-License-Identifier: MIT

package pipeline

import "github.com/katalvlaran/hydrodem/classify"

// Output layer suffixes, appended to Config.Root.
const (
	SuffixFill     = "_fill"
	SuffixFlowDir  = "_fdir"
	SuffixFlowAcc  = "_facc"
	SuffixNetwork  = "_network"
	SuffixBasins   = "_basins"
	SuffixFillDiff = "_filldiff"

	SuffixFillPolygons    = "_Fill_polygons"
	SuffixNetworkPolygons = "_flow_network_polygons"
	SuffixBasinsPolygons  = "_basins_polygons"

	SuffixClasses  = "_classes"
	SuffixSlope    = "_slope"
	SuffixAspect   = "_aspect"
	SuffixSteep    = "_steep"
	SuffixPolygons = "_polygons"
)

// BandName names the raster layer of an inundation band, e.g. "DTM_from_0_to_5".
func BandName(root string, b classify.Band) string {
	return root + "_" + b.Label()
}
