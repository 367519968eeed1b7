package road

import (
	"container/heap"
	"math"

	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
)

// refineEdge runs A* between the coarse grid cells containing e's
// endpoints, falling back to the straight two-point polyline if no
// path is found. The first and last points are always snapped to the
// exact settlement coordinates to avoid quantisation offset, and the
// stored length is the measured polyline length, not e.Dist.
func refineEdge(settlements []settlement.Settlement, e candidateEdge, hm *terrain.Heightmap, cfg Config) Segment {
	sa, sb := settlements[e.A], settlements[e.B]
	seg := Segment{A: e.A, B: e.B, AX: sa.X, AY: sa.Y, BX: sb.X, BY: sb.Y}

	step := cfg.GridStep
	if step <= 0 {
		step = 1
	}
	cw := int(math.Ceil(float64(hm.Width) / step))
	ch := int(math.Ceil(float64(hm.Height) / step))

	startCell := [2]int{clampInt(int(sa.X/step), 0, cw-1), clampInt(int(sa.Y/step), 0, ch-1)}
	goalCell := [2]int{clampInt(int(sb.X/step), 0, cw-1), clampInt(int(sb.Y/step), 0, ch-1)}

	points := astarPath(hm, startCell, goalCell, sb, step, cw, ch, cfg)
	if points == nil {
		points = []Point{{sa.X, sa.Y}, {sb.X, sb.Y}}
	} else {
		points[0] = Point{sa.X, sa.Y}
		points[len(points)-1] = Point{sb.X, sb.Y}
	}

	seg.Points = points
	seg.Length = polylineLength(points)
	return seg
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func polylineLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		dx, dy := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

type astarNode struct {
	cell [2]int
	f    float64
}

type astarHeap []astarNode

func (h astarHeap) Len() int            { return len(h) }
func (h astarHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h astarHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *astarHeap) Push(x interface{}) { *h = append(*h, x.(astarNode)) }
func (h *astarHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var astarOffsets = [8]struct{ dx, dy int }{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// cellHeight samples the heightmap at the centre of a coarse-grid cell
// (spec §4.6: "grid cell height is sampled at the cell centre"), so a
// GridStep other than 1 still reads the right heightmap cell instead of
// treating coarse-grid coordinates as heightmap coordinates.
func cellHeight(hm *terrain.Heightmap, cell [2]int, step float64) float64 {
	hx := clampInt(int((float64(cell[0])+0.5)*step), 0, hm.Width-1)
	hy := clampInt(int((float64(cell[1])+0.5)*step), 0, hm.Height-1)
	return hm.At(hx, hy)
}

// astarPath runs weighted A* on the coarse grid from start to goal,
// using the slope+water movement cost and Euclidean-to-goal heuristic
// from spec §4.6. Returns nil if no path is found.
func astarPath(hm *terrain.Heightmap, start, goal [2]int, goalSettlement settlement.Settlement, step float64, cw, ch int, cfg Config) []Point {
	key := func(c [2]int) int { return c[1]*cw + c[0] }

	gScore := map[int]float64{key(start): 0}
	parent := map[int][2]int{}
	visited := map[int]bool{}

	open := &astarHeap{{start, heuristic(start, goalSettlement, step)}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(astarNode)
		ck := key(cur.cell)
		if visited[ck] {
			continue
		}
		visited[ck] = true

		if cur.cell == goal {
			return reconstructPath(cw, parent, start, goal, step)
		}

		curG := gScore[ck]
		curElev := cellHeight(hm, cur.cell, step)

		for _, off := range astarOffsets {
			nx, ny := cur.cell[0]+off.dx, cur.cell[1]+off.dy
			if nx < 0 || nx >= cw || ny < 0 || ny >= ch {
				continue
			}
			nc := [2]int{nx, ny}
			nk := key(nc)
			if visited[nk] {
				continue
			}

			nElev := cellHeight(hm, nc, step)
			diag := off.dx != 0 && off.dy != 0
			base := step
			if diag {
				base = step * math.Sqrt2
			}
			waterPenalty := 0.0
			if curElev < cfg.WaterThresh || nElev < cfg.WaterThresh {
				waterPenalty = cfg.WaterPenalty
			}
			moveCost := base * (1 + math.Abs(nElev-curElev)*cfg.SlopeCost + waterPenalty)

			tentative := curG + moveCost
			if existing, ok := gScore[nk]; !ok || tentative < existing {
				gScore[nk] = tentative
				parent[nk] = cur.cell
				f := tentative + heuristic(nc, goalSettlement, step)
				heap.Push(open, astarNode{nc, f})
			}
		}
	}

	return nil
}

func heuristic(cell [2]int, goal settlement.Settlement, step float64) float64 {
	cx, cy := (float64(cell[0])+0.5)*step, (float64(cell[1])+0.5)*step
	dx, dy := cx-goal.X, cy-goal.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func reconstructPath(cw int, parent map[int][2]int, start, goal [2]int, step float64) []Point {
	key := func(c [2]int) int { return c[1]*cw + c[0] }

	var cellPath [][2]int
	cur := goal
	cellPath = append(cellPath, cur)
	for cur != start {
		p, ok := parent[key(cur)]
		if !ok {
			break
		}
		cur = p
		cellPath = append(cellPath, cur)
	}

	points := make([]Point, len(cellPath))
	for i, c := range cellPath {
		// Reverse while converting to world-space cell centres.
		j := len(cellPath) - 1 - i
		points[j] = Point{(float64(c[0]) + 0.5) * step, (float64(c[1]) + 0.5) * step}
	}
	return points
}
