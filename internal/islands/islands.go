// Package islands labels connected land components over a heightmap.
// The iterative stack flood-fill is the same shape as the teacher's
// coastal marking pass (internal/world/generation.go markCoastalHexes)
// but generalized from 6-neighbour hex adjacency to 4-neighbour grid
// adjacency and from a boolean mark to a monotonically increasing id.
package islands

import "github.com/c1921/worldforge/internal/terrain"

// Labelling holds, per cell, the island id (-1 for water) and, per
// island id, its area in cells.
type Labelling struct {
	IDs     []int32
	Areas   []int
	MaxArea int
}

// Label performs an iterative 4-connected flood fill over every cell
// with elevation >= coastThreshold, assigning ids starting at 0.
func Label(hm *terrain.Heightmap, coastThreshold float64) *Labelling {
	w, h := hm.Width, hm.Height
	ids := make([]int32, w*h)
	for i := range ids {
		ids[i] = -1
	}

	var areas []int
	maxArea := 0
	var stack []int

	isLand := func(idx int) bool {
		return hm.Cells[idx] >= coastThreshold
	}

	for start := 0; start < w*h; start++ {
		if ids[start] != -1 || !isLand(start) {
			continue
		}

		id := int32(len(areas))
		area := 0
		stack = stack[:0]
		stack = append(stack, start)
		ids[start] = id

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			x, y := idx%w, idx/w
			for _, n := range neighbors4(x, y, w, h) {
				if ids[n] == -1 && isLand(n) {
					ids[n] = id
					stack = append(stack, n)
				}
			}
		}

		areas = append(areas, area)
		if area > maxArea {
			maxArea = area
		}
	}

	return &Labelling{IDs: ids, Areas: areas, MaxArea: maxArea}
}

// neighbors4 returns the linear indices of the up-to-four orthogonal
// neighbours of (x, y) that lie within the grid.
func neighbors4(x, y, w, h int) []int {
	var out []int
	if x > 0 {
		out = append(out, y*w+(x-1))
	}
	if x < w-1 {
		out = append(out, y*w+(x+1))
	}
	if y > 0 {
		out = append(out, (y-1)*w+x)
	}
	if y < h-1 {
		out = append(out, (y+1)*w+x)
	}
	return out
}
