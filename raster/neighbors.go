// SPDX-License-Identifier: MIT

package raster

import "math"

// Connectivity selects orthogonal (Conn4) or full (Conn8) neighbourhoods.
type Connectivity int

const (
	// Conn4 uses E, S, W, N.
	Conn4 Connectivity = iota
	// Conn8 uses E, SE, S, SW, W, NW, N, NE.
	Conn8
)

// Offsets holds the D8 neighbour offsets as (dRow, dCol) in priority order
// E, SE, S, SW, W, NW, N, NE. Row indices grow southward.
// Every tie between neighbours is resolved by this order.
var Offsets = [8][2]int{
	{0, 1},   // E
	{1, 1},   // SE
	{1, 0},   // S
	{1, -1},  // SW
	{0, -1},  // W
	{-1, -1}, // NW
	{-1, 0},  // N
	{-1, 1},  // NE
}

var orthogonal = [][2]int{Offsets[0], Offsets[2], Offsets[4], Offsets[6]}

// NeighborOffsets returns the offsets for conn, in priority order.
func NeighborOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return Offsets[:]
	}

	return orthogonal
}

// Diagonal reports whether offset k of Offsets is a diagonal step.
func Diagonal(k int) bool { return k%2 == 1 }

// Distance returns the centre-to-centre distance for offset k of Offsets.
func (g *Grid) Distance(k int) float64 {
	if Diagonal(k) {
		return g.cellSize * math.Sqrt2
	}

	return g.cellSize
}
