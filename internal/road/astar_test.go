package road

import (
	"testing"

	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
)

// TestRefineEdgeWithGridStepSnapsEndpoints runs A* on a coarse grid
// (GridStep 4, so a 10x10 grid over a 40x40 heightmap) and checks that
// the refined path spans the whole edge, starting and ending exactly at
// the settlement coordinates.
func TestRefineEdgeWithGridStepSnapsEndpoints(t *testing.T) {
	hm := terrain.New(40, 40)
	for i := range hm.Cells {
		hm.Cells[i] = 0.6
	}
	settlements := []settlement.Settlement{
		{X: 2, Y: 2},
		{X: 36, Y: 36},
	}
	cfg := defaultConfig()
	cfg.GridStep = 4

	seg := refineEdge(settlements, candidateEdge{A: 0, B: 1, Dist: 48}, hm, cfg)

	if len(seg.Points) < 2 {
		t.Fatalf("expected a multi-point path, got %+v", seg.Points)
	}
	first, last := seg.Points[0], seg.Points[len(seg.Points)-1]
	if first.X != settlements[0].X || first.Y != settlements[0].Y {
		t.Fatalf("path should start at the first settlement, got %+v", first)
	}
	if last.X != settlements[1].X || last.Y != settlements[1].Y {
		t.Fatalf("path should end at the second settlement, got %+v", last)
	}
}

func TestCellHeightClampsToHeightmapBoundsAtGridEdge(t *testing.T) {
	hm := terrain.New(10, 10)
	for i := range hm.Cells {
		hm.Cells[i] = 0.5
	}
	hm.Set(9, 9, 0.9)

	// With step 4 the coarse grid is 3x3 (ceil(10/4)); cell (2,2)'s
	// centre falls at (10,10), outside the 10x10 heightmap, and must
	// clamp to the last row/column rather than panic or silently wrap.
	got := cellHeight(hm, [2]int{2, 2}, 4)
	if got != 0.9 {
		t.Fatalf("cellHeight at the clamped edge = %v, want 0.9", got)
	}
}
