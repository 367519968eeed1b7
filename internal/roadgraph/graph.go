// Package roadgraph is the immutable, queryable view of a finished
// road network: adjacency for Dijkstra shortest-path queries and
// polyline reconstruction for travel requests. Grounded on the same
// container/heap binary-heap idiom as internal/road's A* (and, at one
// remove, other_examples/grubbymits-noisey-world__world.go), since the
// teacher repo has no pathfinding of its own to adapt.
package roadgraph

import (
	"container/heap"

	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/settlement"
)

// Edge is one adjacency entry: the neighbour settlement index, the
// road's measured length, and the index of the road in the owning
// World's road list (used to reconstruct polylines).
type Edge struct {
	Neighbor  int
	Length    float64
	RoadIndex int
}

// Graph is the adjacency list plus an unordered-pair index, built once
// from a finished road list and never mutated afterward.
type Graph struct {
	adj      [][]Edge
	pairRoad map[[2]int]int
	n        int
}

// Build constructs the graph for n settlements from the final road
// list.
func Build(n int, roads []road.Segment) *Graph {
	g := &Graph{
		adj:      make([][]Edge, n),
		pairRoad: make(map[[2]int]int, len(roads)),
		n:        n,
	}
	for ri, r := range roads {
		g.adj[r.A] = append(g.adj[r.A], Edge{Neighbor: r.B, Length: r.Length, RoadIndex: ri})
		g.adj[r.B] = append(g.adj[r.B], Edge{Neighbor: r.A, Length: r.Length, RoadIndex: ri})

		a, b := r.A, r.B
		if a > b {
			a, b = b, a
		}
		g.pairRoad[[2]int{a, b}] = ri
	}
	return g
}

// PathResult is the outcome of a shortest-path query: the node
// sequence and total distance.
type PathResult struct {
	Nodes    []int
	Distance float64
}

type pqItem struct {
	node int
	dist float64
}

type pq []pqItem

func (h pq) Len() int            { return len(h) }
func (h pq) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h pq) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pq) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *pq) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra with a binary min-heap and a visited
// bitmap, terminating early once the target is popped. Returns nil
// when unreachable or either endpoint is out of [0, N).
func (g *Graph) ShortestPath(from, to int) *PathResult {
	if from < 0 || from >= g.n || to < 0 || to >= g.n {
		return nil
	}
	if from == to {
		return &PathResult{Nodes: []int{from}, Distance: 0}
	}

	dist := make([]float64, g.n)
	visited := make([]bool, g.n)
	parent := make([]int, g.n)
	for i := range dist {
		dist[i] = -1
		parent[i] = -1
	}
	dist[from] = 0

	h := &pq{{from, 0}}
	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if cur.node == to {
			return &PathResult{Nodes: reconstructNodes(parent, from, to), Distance: cur.dist}
		}

		for _, e := range g.adj[cur.node] {
			if visited[e.Neighbor] {
				continue
			}
			nd := cur.dist + e.Length
			if dist[e.Neighbor] < 0 || nd < dist[e.Neighbor] {
				dist[e.Neighbor] = nd
				parent[e.Neighbor] = cur.node
				heap.Push(h, pqItem{e.Neighbor, nd})
			}
		}
	}
	return nil
}

func reconstructNodes(parent []int, from, to int) []int {
	var nodes []int
	cur := to
	for cur != -1 {
		nodes = append(nodes, cur)
		if cur == from {
			break
		}
		cur = parent[cur]
	}
	// Reverse in place.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// Polyline reconstructs the travel path for a node sequence: for each
// consecutive pair it looks up the road, orients its stored points so
// the start matches the current node (reversing if necessary), and
// appends every point but the first to avoid duplicating the join
// point. A single-node path collapses to that settlement's coordinate.
func (g *Graph) Polyline(nodes []int, roads []road.Segment, settlements []settlement.Settlement) []road.Point {
	if len(nodes) == 0 {
		return nil
	}
	if len(nodes) == 1 {
		s := settlements[nodes[0]]
		return []road.Point{{X: s.X, Y: s.Y}}
	}

	out := []road.Point{}
	for i := 0; i < len(nodes)-1; i++ {
		a, b := nodes[i], nodes[i+1]
		key := a
		other := b
		if a > b {
			key, other = b, a
		}
		ri, ok := g.pairRoad[[2]int{key, other}]
		if !ok {
			continue
		}
		r := roads[ri]
		pts := r.Points
		if r.A != a {
			pts = reversePoints(pts)
		}
		if i == 0 {
			out = append(out, pts[0])
		}
		out = append(out, pts[1:]...)
	}
	return out
}

func reversePoints(pts []road.Point) []road.Point {
	out := make([]road.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
