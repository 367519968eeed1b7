package savecodec

import (
	"testing"

	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
)

func TestHeightmapRoundTrip(t *testing.T) {
	hm := terrain.New(4, 3)
	for i := range hm.Cells {
		hm.Cells[i] = float64(i) / 10
	}

	encoded := EncodeHeightmap(hm)
	decoded, err := DecodeHeightmap(encoded, 4, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range hm.Cells {
		// float32 round trip loses precision beyond ~7 significant digits.
		if diff := decoded.Cells[i] - hm.Cells[i]; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("cell %d: got %v, want %v", i, decoded.Cells[i], hm.Cells[i])
		}
	}
}

func TestDecodeHeightmapRejectsWrongLength(t *testing.T) {
	_, err := DecodeHeightmap(make([]byte, 10), 4, 4)
	if err == nil {
		t.Fatal("expected an error for a truncated buffer")
	}
}

func TestSettlementRoundTrip(t *testing.T) {
	original := []settlement.Settlement{
		{X: 1.5, Y: 2.5, Elevation: 0.6, Suitability: 0.8, IslandID: 3, IslandArea: 40,
			RoadDegree: 2, SecondHopReach: 5, CityScore: 0.7, Category: settlement.Town},
	}
	records := EncodeSettlements(original)
	back := DecodeSettlements(records)
	if len(back) != 1 || back[0] != original[0] {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back[0], original[0])
	}
}

func TestRoadRoundTrip(t *testing.T) {
	original := []road.Segment{
		{A: 0, B: 1, AX: 0, AY: 0, BX: 10, BY: 0, Length: 10,
			Points: []road.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}},
		{A: 1, B: 2, AX: 10, AY: 0, BX: 10, BY: 10, Length: 10,
			Points: []road.Point{{X: 10, Y: 0}, {X: 10, Y: 10}}},
	}
	meta, points := EncodeRoads(original)
	back, err := DecodeRoads(meta, points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(back) != len(original) {
		t.Fatalf("got %d roads, want %d", len(back), len(original))
	}
	for i, r := range original {
		if back[i].A != r.A || back[i].B != r.B || len(back[i].Points) != len(r.Points) {
			t.Fatalf("road %d mismatch: got %+v, want %+v", i, back[i], r)
		}
		for j, p := range r.Points {
			if back[i].Points[j] != p {
				t.Fatalf("road %d point %d mismatch: got %+v, want %+v", i, j, back[i].Points[j], p)
			}
		}
	}
}

func TestDecodeRoadsRejectsShortPointsBuffer(t *testing.T) {
	meta := []RoadMeta{{PointsOffset: 0, PointsCount: 5}}
	_, err := DecodeRoads(meta, make([]byte, 8))
	if err == nil {
		t.Fatal("expected an error when the points buffer is too short for the metadata")
	}
}
