// Package road plans the road network: k-nearest candidate edges,
// Kruskal MST for global connectivity, a shortest-path redundancy
// filter, and per-edge A* path refinement over the heightmap. None of
// this exists in the teacher repo (mini-world has no inter-settlement
// roads); it is grounded on the general shortest-path/MST idiom shown
// across the retrieval pack (container/heap-based search as in
// other_examples/grubbymits-noisey-world__world.go) rather than on any
// single teacher file.
package road

import (
	"math"
	"sort"

	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
)

// Point is a single polyline vertex in cell-unit world coordinates.
type Point struct {
	X, Y float64
}

// Segment is one finished road: settlement endpoints, redundant endpoint
// coordinates, measured path length, and the polyline connecting them.
type Segment struct {
	A, B           int
	AX, AY, BX, BY float64
	Length         float64
	Points         []Point
}

// Config configures the planner. See config.Config for spec defaults.
type Config struct {
	KNearest     int
	MaxEdgeDist  float64
	PathFactor   float64
	ForceMST     bool
	GridStep     float64
	SlopeCost    float64
	WaterThresh  float64
	WaterPenalty float64
}

type candidateEdge struct {
	A, B int
	Dist float64
}

// Plan builds the full road network for the given settlements: MST
// connectivity, redundancy-filtered extra edges, then A*-refined
// polylines for every admitted edge.
func Plan(settlements []settlement.Settlement, hm *terrain.Heightmap, cfg Config) []Segment {
	n := len(settlements)
	if n < 2 {
		return nil
	}

	candidates := candidateEdges(settlements, cfg.KNearest, cfg.MaxEdgeDist)

	admitted := selectEdges(n, candidates, cfg)

	segments := make([]Segment, 0, len(admitted))
	for _, e := range admitted {
		s := refineEdge(settlements, e, hm, cfg)
		segments = append(segments, s)
	}
	return segments
}

// candidateEdges keeps each settlement's k nearest peers within
// maxDist, deduplicating the undirected pair, ordered by (a,b) for
// deterministic downstream sorting.
func candidateEdges(settlements []settlement.Settlement, k int, maxDist float64) []candidateEdge {
	n := len(settlements)
	seen := make(map[[2]int]bool)
	var out []candidateEdge

	type neighborDist struct {
		idx  int
		dist float64
	}

	for i := 0; i < n; i++ {
		var dists []neighborDist
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := euclid(settlements[i], settlements[j])
			if d > maxDist {
				continue
			}
			dists = append(dists, neighborDist{j, d})
		}
		sort.Slice(dists, func(a, b int) bool {
			if dists[a].dist != dists[b].dist {
				return dists[a].dist < dists[b].dist
			}
			return dists[a].idx < dists[b].idx
		})
		if len(dists) > k {
			dists = dists[:k]
		}
		for _, nd := range dists {
			a, b := i, nd.idx
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, candidateEdge{A: a, B: b, Dist: euclid(settlements[a], settlements[b])})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist != out[j].Dist {
			return out[i].Dist < out[j].Dist
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

func euclid(a, b settlement.Settlement) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// selectEdges runs the MST pass (if ForceMST) followed by the
// redundancy filter, returning the final admitted candidate set.
func selectEdges(n int, candidates []candidateEdge, cfg Config) []candidateEdge {
	g := newIncrementalGraph(n)
	var admitted []candidateEdge

	remaining := candidates

	if cfg.ForceMST {
		mstEdges, rest := kruskalMST(n, candidates)
		for _, e := range mstEdges {
			g.addEdge(e.A, e.B, e.Dist)
			admitted = append(admitted, e)
		}
		remaining = rest
	}

	for _, e := range remaining {
		existing, ok := g.shortestPath(e.A, e.B)
		if !ok || existing > e.Dist*cfg.PathFactor {
			g.addEdge(e.A, e.B, e.Dist)
			admitted = append(admitted, e)
		}
	}

	return admitted
}

// kruskalMST runs Kruskal's algorithm over candidates (already sorted
// ascending by (dist, a, b)) and returns the MST edges plus every
// candidate not selected, both preserving candidate order.
func kruskalMST(n int, candidates []candidateEdge) (mst, rest []candidateEdge) {
	uf := newUnionFind(n)
	for _, e := range candidates {
		if uf.union(e.A, e.B) {
			mst = append(mst, e)
		} else {
			rest = append(rest, e)
		}
	}
	return mst, rest
}
