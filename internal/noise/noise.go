// Package noise provides deterministic 2D simplex noise with octave
// stacking and domain warping, in the style of the teacher repo's
// octaveNoise helper (internal/world/generation.go) but generalized to
// the spec's normalised-coordinate, configurable-warp evaluator.
package noise

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field samples deterministic simplex noise at arbitrary real
// coordinates, seeded once at construction.
type Field struct {
	n opensimplex.Noise
}

// New creates a noise field seeded by the world seed.
func New(seed int64) *Field {
	return &Field{n: opensimplex.NewNormalized(seed)}
}

// Eval2 returns raw noise in [0,1] at (x, y).
func (f *Field) Eval2(x, y float64) float64 {
	return f.n.Eval2(x, y)
}

// OctaveParams configures the multi-octave evaluator.
type OctaveParams struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// DefaultOctaveParams matches the spec defaults: 6 octaves, persistence
// 0.5, lacunarity 2.0.
func DefaultOctaveParams() OctaveParams {
	return OctaveParams{Octaves: 6, Persistence: 0.5, Lacunarity: 2.0}
}

// Octaves sums noise(nx*f*8, ny*f*8)*amp over p.Octaves iterations,
// f *= lacunarity and amp *= persistence each step, normalised by the
// sum of amplitudes and remapped (v+1)/2. nx, ny are normalised to
// [0,1]^2.
func (f *Field) Octaves(nx, ny float64, p OctaveParams) float64 {
	freq := 1.0
	amp := 1.0
	total := 0.0
	maxAmp := 0.0

	for i := 0; i < p.Octaves; i++ {
		total += rawSigned(f, nx*freq*8, ny*freq*8) * amp
		maxAmp += amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}

	if maxAmp == 0 {
		return 0.5
	}
	v := total / maxAmp
	return (v + 1) / 2
}

// rawSigned returns noise in [-1,1] by un-normalising the [0,1]
// opensimplex.NewNormalized output, so octave summation behaves like
// signed noise before the final remap.
func rawSigned(f *Field, x, y float64) float64 {
	return f.n.Eval2(x, y)*2 - 1
}

// WarpParams configures the domain-warped evaluator.
type WarpParams struct {
	Strength float64
	Octave   OctaveParams
}

// DefaultWarpParams matches the spec default warp strength 0.08.
func DefaultWarpParams() WarpParams {
	return WarpParams{Strength: 0.08, Octave: DefaultOctaveParams()}
}

// Warped evaluates the octave stack at (nx+wx, ny+wy), where the warp
// vector (wx, wy) is itself sampled from the same field at 4x frequency,
// offset by (100,100) on the second axis to decorrelate it from the
// first. This is the primary generator the pipeline uses.
func (f *Field) Warped(nx, ny float64, p WarpParams) float64 {
	wx := rawSigned(f, nx*4, ny*4) * p.Strength
	wy := rawSigned(f, nx*4+100, ny*4+100) * p.Strength
	return f.Octaves(nx+wx, ny+wy, p.Octave)
}
