// SPDX-License-Identifier: MIT

// Package terrain derives surface-shape rasters from an elevation grid:
// slope and aspect over the Horn 3×3 window, and a steep-area mask.
//
// Neighbours that are off-grid or nodata take the centre cell's value, so
// edge cells and cells next to holes still get a (damped) gradient.
// Nodata centres stay nodata.
package terrain
