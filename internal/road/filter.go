package road

import "container/heap"

// incrementalGraph is a growing weighted adjacency used only during
// the redundancy filter: weights are "current path length" for edges
// admitted so far (straight-line distance, since no A* refinement has
// run yet), and shortestPath answers Dijkstra queries against it.
type incrementalGraph struct {
	adj [][]weightedEdge
}

type weightedEdge struct {
	to     int
	weight float64
}

func newIncrementalGraph(n int) *incrementalGraph {
	return &incrementalGraph{adj: make([][]weightedEdge, n)}
}

func (g *incrementalGraph) addEdge(a, b int, weight float64) {
	g.adj[a] = append(g.adj[a], weightedEdge{b, weight})
	g.adj[b] = append(g.adj[b], weightedEdge{a, weight})
}

// shortestPath returns the current Dijkstra shortest-path distance
// between a and b, or (0, false) if no path exists yet.
func (g *incrementalGraph) shortestPath(a, b int) (float64, bool) {
	dist := make([]float64, len(g.adj))
	visited := make([]bool, len(g.adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[a] = 0

	pq := &distHeap{{a, 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == b {
			return cur.dist, true
		}
		for _, e := range g.adj[cur.node] {
			nd := cur.dist + e.weight
			if dist[e.to] < 0 || nd < dist[e.to] {
				dist[e.to] = nd
				heap.Push(pq, distItem{e.to, nd})
			}
		}
	}
	return 0, false
}

type distItem struct {
	node int
	dist float64
}

type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
