package settlement

import (
	"math"
	"testing"

	"github.com/c1921/worldforge/internal/islands"
	"github.com/c1921/worldforge/internal/prng"
	"github.com/c1921/worldforge/internal/terrain"
)

func testConfig() SamplerConfig {
	return SamplerConfig{
		Stride: 2, CoastThreshold: 0.35, FadeOutHeight: 0.92,
		IslandBase: 0.35, IslandExponent: 0.75, BaseChance: 1.0,
		MinDistance: 3, MaxSettlements: 1000,
	}
}

func TestSampleRespectsMinDistance(t *testing.T) {
	hm := terrain.Build(64, 64, 5)
	lbl := islands.Label(hm, 0.35)
	out := Sample(hm, lbl, prng.New(5), testConfig())

	for i := range out {
		for j := i + 1; j < len(out); j++ {
			dx, dy := out[i].X-out[j].X, out[i].Y-out[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < 3 {
				t.Fatalf("settlements %d and %d are %v apart, want >= MinDistance", i, j, d)
			}
		}
	}
}

func TestSampleStopsAtMaxSettlements(t *testing.T) {
	hm := terrain.Build(64, 64, 5)
	lbl := islands.Label(hm, 0.35)
	cfg := testConfig()
	cfg.MaxSettlements = 3
	out := Sample(hm, lbl, prng.New(5), cfg)
	if len(out) > 3 {
		t.Fatalf("got %d settlements, want <= 3", len(out))
	}
}

func TestSampleIsDeterministicForSameSeed(t *testing.T) {
	hm := terrain.Build(48, 48, 11)
	lbl := islands.Label(hm, 0.35)
	cfg := testConfig()

	a := Sample(hm, lbl, prng.New(11), cfg)
	b := Sample(hm, lbl, prng.New(11), cfg)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("settlement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSuitabilityZeroOutsideRange(t *testing.T) {
	if suitability(0.1, 0.35, 0.92) != 0 {
		t.Fatal("below coast threshold should be 0")
	}
	if suitability(0.95, 0.35, 0.92) != 0 {
		t.Fatal("at/above fade-out height should be 0")
	}
	if v := suitability(0.35, 0.35, 0.92); v != 1 {
		t.Fatalf("at coast threshold should be 1, got %v", v)
	}
}

func TestNamesAreUnique(t *testing.T) {
	names := Names(prng.New(3), 20)
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
	if len(names) != 20 {
		t.Fatalf("got %d names, want 20", len(names))
	}
}

func TestNamesTerminatesWhenCountExceedsUniqueSpace(t *testing.T) {
	maxUnique := len(namePrefixes) * len(nameSuffixes)
	names := Names(prng.New(7), maxUnique+50)
	if len(names) != maxUnique+50 {
		t.Fatalf("got %d names, want %d", len(names), maxUnique+50)
	}
}
