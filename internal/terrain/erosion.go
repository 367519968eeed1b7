package terrain

import "math"

// ErosionConfig configures a run of the hydraulic erosion engine.
type ErosionConfig struct {
	Iterations          int
	Rainfall            float64
	Strength            float64
	FlowExponent        float64
	MinSlope            float64
	SmoothingIterations int
	SmoothingBlend      float64
}

// DefaultErosionConfig matches the spec's defaults.
func DefaultErosionConfig() ErosionConfig {
	return ErosionConfig{
		Iterations:   1,
		Rainfall:     1.0,
		Strength:     0.02,
		FlowExponent: 0.5,
		MinSlope:     1e-4,
	}
}

// d8Offsets lists the eight neighbour offsets with their travel
// distance (1 for orthogonal, sqrt(2) for diagonal).
var d8Offsets = [8]struct{ dx, dy int; dist float64 }{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, 1.4142135623730951}, {1, -1, 1.4142135623730951},
	{-1, 1, 1.4142135623730951}, {-1, -1, 1.4142135623730951},
}

// Erode runs cfg.Iterations passes of D8 flow, flow accumulation, slope
// erosion and optional smoothing over hm in place, then re-applies the
// contrast stretch once, per spec §4.3.
func Erode(hm *Heightmap, cfg ErosionConfig) {
	w, h := hm.Width, hm.Height
	n := w * h

	flowDir := make([]int, n)
	slope := make([]float64, n)
	flow := make([]float64, n)

	for iter := 0; iter < cfg.Iterations; iter++ {
		// 1. D8 flow direction.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := hm.Index(x, y)
				best := -1
				bestSlope := 0.0
				elev := hm.Cells[idx]
				for _, off := range d8Offsets {
					nxp, nyp := x+off.dx, y+off.dy
					if nxp < 0 || nxp >= w || nyp < 0 || nyp >= h {
						continue
					}
					nidx := hm.Index(nxp, nyp)
					drop := elev - hm.Cells[nidx]
					if drop <= 0 {
						continue
					}
					s := drop / off.dist
					if s > bestSlope {
						bestSlope = s
						best = nidx
					}
				}
				flowDir[idx] = best
				slope[idx] = bestSlope
			}
		}

		// 2. Flow accumulation in elevation-descending order (stable,
		// secondary key = cell index) so every upstream contribution
		// posts before its downstream target is processed.
		order := stableSortByElevationDesc(hm)
		for i := range flow {
			flow[i] = cfg.Rainfall
		}
		for _, idx := range order {
			dst := flowDir[idx]
			if dst >= 0 {
				flow[dst] += flow[idx]
			}
		}

		// 3. Erosion update.
		for idx := range hm.Cells {
			if slope[idx] <= cfg.MinSlope {
				continue
			}
			delta := cfg.Strength * math.Pow(flow[idx], cfg.FlowExponent) * slope[idx]
			v := hm.Cells[idx] - delta
			hm.Cells[idx] = clamp01(v)
		}

		// 4. Smoothing.
		for s := 0; s < cfg.SmoothingIterations; s++ {
			smoothPass(hm, cfg.SmoothingBlend)
		}
	}

	ContrastStretch(hm, PlainsThreshold)
}

// smoothPass blends every cell toward the mean of its up-to-9-cell
// neighbourhood (itself plus valid neighbours), weighted by
// SmoothingBlend.
func smoothPass(hm *Heightmap, blend float64) {
	w, h := hm.Width, hm.Height
	src := make([]float64, len(hm.Cells))
	copy(src, hm.Cells)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := src[hm.Index(x, y)]
			count := 1
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					sum += src[hm.Index(nx, ny)]
					count++
				}
			}
			mean := sum / float64(count)
			idx := hm.Index(x, y)
			hm.Cells[idx] = clamp01(src[idx] + (mean-src[idx])*blend)
		}
	}
}
