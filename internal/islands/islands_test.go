package islands

import (
	"testing"

	"github.com/c1921/worldforge/internal/terrain"
)

func TestLabelSeparatesTwoDisjointLandmasses(t *testing.T) {
	hm := terrain.New(5, 1)
	hm.Set(0, 0, 0.9)
	hm.Set(1, 0, 0.1) // water gap
	hm.Set(2, 0, 0.1)
	hm.Set(3, 0, 0.9)
	hm.Set(4, 0, 0.9)

	lbl := Label(hm, 0.5)
	if len(lbl.Areas) != 2 {
		t.Fatalf("expected 2 islands, got %d: %+v", len(lbl.Areas), lbl.Areas)
	}
	if lbl.IDs[0] == lbl.IDs[3] {
		t.Fatal("disjoint landmasses should not share an island id")
	}
	if lbl.IDs[1] != -1 || lbl.IDs[2] != -1 {
		t.Fatal("water cells should be labelled -1")
	}
}

func TestLabelMergesConnectedCells(t *testing.T) {
	hm := terrain.New(3, 1)
	for x := 0; x < 3; x++ {
		hm.Set(x, 0, 0.9)
	}
	lbl := Label(hm, 0.5)
	if len(lbl.Areas) != 1 || lbl.Areas[0] != 3 {
		t.Fatalf("expected one 3-cell island, got %+v", lbl.Areas)
	}
	if lbl.MaxArea != 3 {
		t.Fatalf("MaxArea = %d, want 3", lbl.MaxArea)
	}
}

func TestLabelAllWaterYieldsNoIslands(t *testing.T) {
	hm := terrain.New(4, 4)
	lbl := Label(hm, 0.5)
	if len(lbl.Areas) != 0 {
		t.Fatalf("expected no islands, got %d", len(lbl.Areas))
	}
	for _, id := range lbl.IDs {
		if id != -1 {
			t.Fatal("all-water map should have no labelled cells")
		}
	}
}

func TestNeighbors4ExcludesOutOfBoundsAndDiagonals(t *testing.T) {
	n := neighbors4(0, 0, 3, 3)
	if len(n) != 2 {
		t.Fatalf("corner cell should have 2 neighbours, got %d", len(n))
	}
	mid := neighbors4(1, 1, 3, 3)
	if len(mid) != 4 {
		t.Fatalf("interior cell should have 4 neighbours, got %d", len(mid))
	}
}
