package terrain

import "testing"

func TestErodeKeepsElevationsInUnitRange(t *testing.T) {
	hm := Build(48, 48, 3)
	cfg := DefaultErosionConfig()
	cfg.Iterations = 2
	Erode(hm, cfg)
	for i, v := range hm.Cells {
		if v < 0 || v > 1 {
			t.Fatalf("cell %d out of range after erosion: %v", i, v)
		}
	}
}

func TestErodeIsDeterministic(t *testing.T) {
	cfg := DefaultErosionConfig()

	a := Build(32, 32, 9)
	Erode(a, cfg)

	b := Build(32, 32, 9)
	Erode(b, cfg)

	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs after erosion: %v vs %v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestSmoothPassReducesVariance(t *testing.T) {
	hm := New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				hm.Set(x, y, 1.0)
			}
		}
	}
	before := variance(hm.Cells)
	smoothPass(hm, 1.0)
	after := variance(hm.Cells)
	if after >= before {
		t.Fatalf("variance did not decrease: before=%v after=%v", before, after)
	}
}

func variance(cells []float64) float64 {
	mean := 0.0
	for _, v := range cells {
		mean += v
	}
	mean /= float64(len(cells))
	sq := 0.0
	for _, v := range cells {
		sq += (v - mean) * (v - mean)
	}
	return sq / float64(len(cells))
}
