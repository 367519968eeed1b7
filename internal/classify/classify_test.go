package classify

import (
	"testing"

	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/settlement"
)

func starNetwork(n int) ([]settlement.Settlement, []road.Segment) {
	settlements := make([]settlement.Settlement, n)
	for i := range settlements {
		settlements[i] = settlement.Settlement{Suitability: 0.5}
	}
	var roads []road.Segment
	for i := 1; i < n; i++ {
		roads = append(roads, road.Segment{A: 0, B: i})
	}
	return settlements, roads
}

func defaultConfig() Config {
	return Config{CityShare: 0.1, MinCities: 1, MaxCities: 5, MinScoreForCity: 0, MinCityHops: 2}
}

func TestClassifyAnnotatesRoadDegree(t *testing.T) {
	settlements, roads := starNetwork(6)
	Classify(settlements, roads, defaultConfig())
	if settlements[0].RoadDegree != 5 {
		t.Fatalf("hub degree = %d, want 5", settlements[0].RoadDegree)
	}
	for i := 1; i < 6; i++ {
		if settlements[i].RoadDegree != 1 {
			t.Fatalf("spoke %d degree = %d, want 1", i, settlements[i].RoadDegree)
		}
	}
}

func chainNetwork(n int) ([]settlement.Settlement, []road.Segment) {
	settlements := make([]settlement.Settlement, n)
	for i := range settlements {
		settlements[i] = settlement.Settlement{Suitability: 0.5}
	}
	roads := make([]road.Segment, 0, n-1)
	for i := 1; i < n; i++ {
		roads = append(roads, road.Segment{A: i - 1, B: i})
	}
	return settlements, roads
}

func TestClassifyPicksAtLeastMinCitiesWhenHopsAllow(t *testing.T) {
	// A chain gives every settlement room to be several hops from the
	// next, unlike a star where every spoke is one hop from every other.
	settlements, roads := chainNetwork(20)
	cfg := defaultConfig()
	cfg.MinCities = 3
	cfg.MinCityHops = 2
	cities := Classify(settlements, roads, cfg)
	if len(cities) < cfg.MinCities {
		t.Fatalf("got %d cities, want at least %d", len(cities), cfg.MinCities)
	}
}

func TestClassifyCapsAtMaxCities(t *testing.T) {
	settlements, roads := starNetwork(50)
	cfg := defaultConfig()
	cfg.CityShare = 1.0
	cfg.MaxCities = 4
	cities := Classify(settlements, roads, cfg)
	if len(cities) > cfg.MaxCities {
		t.Fatalf("got %d cities, want at most %d", len(cities), cfg.MaxCities)
	}
}

func TestClassifyEmptyInputReturnsNil(t *testing.T) {
	if Classify(nil, nil, defaultConfig()) != nil {
		t.Fatal("expected nil for empty settlement list")
	}
}

func TestHopDistanceWithinBoundDetectsClosePairs(t *testing.T) {
	adj := [][]int{{1}, {0, 2}, {1}}
	if !hopDistanceWithinBound(adj, 0, 1, 2) {
		t.Fatal("adjacent nodes should be within bound 2")
	}
	if hopDistanceWithinBound(adj, 0, 2, 2) {
		t.Fatal("nodes 2 hops apart should not be within bound 2")
	}
}

func TestTwoHopReachCountsUniqueNeighbours(t *testing.T) {
	adj := [][]int{{1, 2}, {0, 3}, {0, 3}, {1, 2}}
	if r := twoHopReach(adj, 0); r != 3 {
		t.Fatalf("twoHopReach(0) = %d, want 3 (1,2,3)", r)
	}
}
