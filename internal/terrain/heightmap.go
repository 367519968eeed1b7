// Package terrain builds and erodes the world heightmap. The island mask
// and contrast stretch here play the same role as the teacher repo's
// edge falloff and terrain derivation in internal/world/generation.go,
// generalized from a hex-radius continental falloff to the spec's
// dense row-major grid.
package terrain

import (
	"math"
	"sort"

	"github.com/c1921/worldforge/internal/noise"
)

// Heightmap is a dense row-major grid of elevations in [0,1].
type Heightmap struct {
	Width, Height int
	Cells         []float64
}

// New allocates a zeroed heightmap of the given size.
func New(width, height int) *Heightmap {
	return &Heightmap{Width: width, Height: height, Cells: make([]float64, width*height)}
}

// At returns the elevation at (x, y).
func (h *Heightmap) At(x, y int) float64 {
	return h.Cells[y*h.Width+x]
}

// Set writes the elevation at (x, y).
func (h *Heightmap) Set(x, y int, v float64) {
	h.Cells[y*h.Width+x] = v
}

// Index returns the row-major linear index for (x, y).
func (h *Heightmap) Index(x, y int) int {
	return y*h.Width + x
}

// PlainsThreshold is the elevation above which the contrast stretch
// operates; default per spec.
const PlainsThreshold = 0.48

// Build generates the base heightmap: domain-warped multi-octave noise,
// shaped by a radial island mask, then contrast-stretched above the
// plains threshold.
func Build(width, height int, seed int64) *Heightmap {
	field := noise.New(seed)
	warp := noise.DefaultWarpParams()

	hm := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nx := (float64(x) + 0.5) / float64(width)
			ny := (float64(y) + 0.5) / float64(height)

			v := field.Warped(nx, ny, warp)

			dx := nx - 0.5
			dy := ny - 0.5
			d := math.Sqrt(dx*dx + dy*dy)
			mask := 1 - d
			if mask < 0 {
				mask = 0
			}
			mask = math.Pow(mask, 1.2)

			v *= mask
			v = clamp01(v)
			hm.Set(x, y, v)
		}
	}

	ContrastStretch(hm, PlainsThreshold)
	return hm
}

// ContrastStretch remaps the elevation range above threshold onto
// [threshold, 1.0] via a smoothstep curve, leaving cells at or below
// threshold untouched. If the range above threshold is degenerate
// (min == max), the stretch is skipped.
func ContrastStretch(hm *Heightmap, threshold float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range hm.Cells {
		if v > threshold {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max <= min {
		return
	}

	span := max - min
	for i, v := range hm.Cells {
		if v <= threshold {
			continue
		}
		t := (v - min) / span
		smoothed := t * t * (3 - 2*t)
		hm.Cells[i] = threshold + smoothed*(1.0-threshold)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// stableSortByElevationDesc sorts cell indices by elevation descending,
// breaking ties by index ascending, matching the spec's determinism
// requirement for flow accumulation ordering.
func stableSortByElevationDesc(hm *Heightmap) []int {
	order := make([]int, len(hm.Cells))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if hm.Cells[a] != hm.Cells[b] {
			return hm.Cells[a] > hm.Cells[b]
		}
		return a < b
	})
	return order
}
