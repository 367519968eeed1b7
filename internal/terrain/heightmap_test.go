package terrain

import "testing"

func TestBuildIsDeterministicForSameSeed(t *testing.T) {
	a := Build(64, 64, 7)
	b := Build(64, 64, 7)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestBuildElevationsStayInUnitRange(t *testing.T) {
	hm := Build(32, 32, 1)
	for i, v := range hm.Cells {
		if v < 0 || v > 1 {
			t.Fatalf("cell %d out of range: %v", i, v)
		}
	}
}

func TestBuildDifferentSeedsDiverge(t *testing.T) {
	a := Build(32, 32, 1)
	b := Build(32, 32, 2)
	same := true
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different heightmaps")
	}
}

func TestContrastStretchSkipsDegenerateRange(t *testing.T) {
	hm := New(4, 4)
	for i := range hm.Cells {
		hm.Cells[i] = 0.6
	}
	ContrastStretch(hm, 0.48)
	for i, v := range hm.Cells {
		if v != 0.6 {
			t.Fatalf("cell %d changed to %v, degenerate range should be left alone", i, v)
		}
	}
}

func TestContrastStretchLeavesCoastUntouched(t *testing.T) {
	hm := New(2, 1)
	hm.Set(0, 0, 0.3) // below threshold
	hm.Set(1, 0, 0.9) // above threshold
	ContrastStretch(hm, 0.48)
	if hm.At(0, 0) != 0.3 {
		t.Fatalf("below-threshold cell changed to %v", hm.At(0, 0))
	}
}

func TestIndexMatchesRowMajorLayout(t *testing.T) {
	hm := New(5, 3)
	if hm.Index(2, 1) != 1*5+2 {
		t.Fatalf("Index(2,1) = %d, want %d", hm.Index(2, 1), 1*5+2)
	}
}

func TestStableSortByElevationDescBreaksTiesByIndex(t *testing.T) {
	hm := New(3, 1)
	hm.Set(0, 0, 0.5)
	hm.Set(1, 0, 0.5)
	hm.Set(2, 0, 0.9)
	order := stableSortByElevationDesc(hm)
	if order[0] != 2 {
		t.Fatalf("highest elevation should sort first, got order %v", order)
	}
	if order[1] != 0 || order[2] != 1 {
		t.Fatalf("tied elevations should break by index ascending, got order %v", order)
	}
}
