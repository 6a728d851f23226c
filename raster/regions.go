// SPDX-License-Identifier: MIT

package raster

// Regions finds contiguous groups of valid cells under conn.
// Each region is a slice of row-major offsets in breadth-first order;
// regions are reported in row-major order of their first cell.
//
// Time:   O(R·C·d), d = 4 or 8.
// Memory: O(R·C) for visited flags and output.
func (g *Grid) Regions(conn Connectivity) [][]int {
	seen := make([]bool, len(g.data))
	offsets := NeighborOffsets(conn)
	var regions [][]int

	for i0 := range g.data {
		if seen[i0] || !g.Valid(i0) {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			ur, uc := g.Coordinate(queue[qi])
			for _, d := range offsets {
				vr, vc := ur+d[0], uc+d[1]
				if !g.ValidAt(vr, vc) {
					continue
				}
				vi := g.Index(vr, vc)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		regions = append(regions, queue)
	}

	return regions
}
