// Package classify annotates settlements with road-adjacency metrics
// and assigns them a village/town/city tier. There is no teacher
// analog for settlement tiering (mini-world assigns size at spawn
// time, internal/world/settlement_placer.go SettlementSize, purely
// from a pre-sorted desirability score); this package is grounded on
// that same top-N-with-minimum-distance shape, generalized from
// Euclidean distance to road-graph hop distance per the spec.
package classify

import (
	"math"
	"sort"

	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/settlement"
)

// Config configures the classifier. See config.Config for spec defaults.
type Config struct {
	CityShare       float64
	MinCities       int
	MaxCities       int
	MinScoreForCity float64
	MinCityHops     int
}

// Classify builds adjacency from roads, annotates every settlement's
// RoadDegree/SecondHopReach/CityScore/Category in place, and returns
// the list of settlement indices chosen as cities.
func Classify(settlements []settlement.Settlement, roads []road.Segment, cfg Config) []int {
	n := len(settlements)
	if n == 0 {
		return nil
	}
	adj := buildAdjacency(n, roads)

	maxDegree := 1
	maxSuitability := epsMax(settlements, func(s settlement.Settlement) float64 { return s.Suitability })
	for i := range settlements {
		if len(adj[i]) > maxDegree {
			maxDegree = len(adj[i])
		}
	}

	reach := make([]int, n)
	meanNeighborSuit := make([]float64, n)
	for i := range settlements {
		reach[i] = twoHopReach(adj, i)
		meanNeighborSuit[i] = meanNeighborSuitability(settlements, adj, i)
	}
	maxReach := 1
	for _, r := range reach {
		if r > maxReach {
			maxReach = r
		}
	}

	rawScores := make([]float64, n)
	for i, s := range settlements {
		degree := len(adj[i])
		bonus := 0.0
		if degree >= 4 {
			bonus = 0.05
		} else if degree >= 2 {
			bonus = 0.02
		}
		raw := 0.55*s.Suitability/maxSuitability +
			0.20*float64(degree)/float64(maxDegree) +
			0.15*meanNeighborSuit[i] +
			0.25*float64(reach[i])/float64(maxReach) +
			bonus
		if raw > 1.4 {
			raw = 1.4
		}
		if raw < 0 {
			raw = 0
		}
		rawScores[i] = raw
	}

	maxCityScore := 0.0
	for i := range settlements {
		settlements[i].RoadDegree = len(adj[i])
		settlements[i].SecondHopReach = reach[i]
		settlements[i].CityScore = rawScores[i] / 1.4
		if settlements[i].CityScore > maxCityScore {
			maxCityScore = settlements[i].CityScore
		}
		settlements[i].Category = settlement.Village
	}

	cities := selectCities(settlements, adj, n, cfg)
	isCity := make([]bool, n)
	for _, c := range cities {
		settlements[c].Category = settlement.City
		isCity[c] = true
	}

	townThreshold := math.Max(0.55*cfg.MinScoreForCity, 0.4*maxCityScore)
	for i := range settlements {
		if isCity[i] {
			continue
		}
		if settlements[i].RoadDegree >= 2 || settlements[i].CityScore >= townThreshold {
			settlements[i].Category = settlement.Town
		}
	}

	return cities
}

func epsMax(settlements []settlement.Settlement, f func(settlement.Settlement) float64) float64 {
	max := 0.0
	for _, s := range settlements {
		if v := f(s); v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}

func buildAdjacency(n int, roads []road.Segment) [][]int {
	adj := make([][]int, n)
	for _, r := range roads {
		adj[r.A] = append(adj[r.A], r.B)
		adj[r.B] = append(adj[r.B], r.A)
	}
	return adj
}

func twoHopReach(adj [][]int, v int) int {
	set := make(map[int]bool)
	for _, u := range adj[v] {
		set[u] = true
	}
	for _, u := range adj[v] {
		for _, w := range adj[u] {
			if w != v {
				set[w] = true
			}
		}
	}
	return len(set)
}

func meanNeighborSuitability(settlements []settlement.Settlement, adj [][]int, v int) float64 {
	if len(adj[v]) == 0 {
		return 0
	}
	total := 0.0
	for _, u := range adj[v] {
		total += settlements[u].Suitability
	}
	return total / float64(len(adj[v]))
}

// selectCities sorts settlements by score descending and admits
// candidates top-down that clear MinScoreForCity and sit at hop
// distance >= MinCityHops from every already-admitted city.
func selectCities(settlements []settlement.Settlement, adj [][]int, n int, cfg Config) []int {
	target := int(math.Round(float64(n) * cfg.CityShare))
	if target < cfg.MinCities {
		target = cfg.MinCities
	}
	if target > cfg.MaxCities {
		target = cfg.MaxCities
	}
	if target > n {
		target = n
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if settlements[a].CityScore != settlements[b].CityScore {
			return settlements[a].CityScore > settlements[b].CityScore
		}
		return a < b
	})

	var cities []int
	for _, idx := range order {
		if len(cities) >= target {
			break
		}
		if settlements[idx].CityScore < cfg.MinScoreForCity {
			continue
		}
		farEnough := true
		for _, c := range cities {
			if hopDistanceWithinBound(adj, idx, c, cfg.MinCityHops) {
				farEnough = false
				break
			}
		}
		if !farEnough {
			continue
		}
		cities = append(cities, idx)
	}
	return cities
}

// hopDistanceWithinBound runs a bounded BFS and returns true as soon as
// it discovers a hop distance strictly less than bound — i.e. true
// means "too close", mirroring the early-exit BFS in spec §4.7.
func hopDistanceWithinBound(adj [][]int, from, to, bound int) bool {
	if from == to {
		return true
	}
	visited := map[int]int{from: 0}
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := visited[cur]
		if d >= bound-1 {
			continue
		}
		for _, next := range adj[cur] {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = d + 1
			if next == to {
				return d+1 < bound
			}
			queue = append(queue, next)
		}
	}
	return false
}
