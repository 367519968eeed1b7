// Package prng provides the single deterministic random stream consumed
// during a world build. Unlike the teacher repo's habit of forking a new
// math/rand source per subsystem (internal/world/settlement_placer.go,
// cmd/worldsim/main.go each add an offset to the seed), the spec requires
// every stochastic decision in one build to come from exactly one stream,
// consumed strictly in pipeline order — so sampling is a pure function of
// the seed and call order, not of which subsystem happens to run first.
package prng

// Stream is a mulberry32 generator: fast, small state, good enough
// statistical quality for content generation, and it has no dependency
// on math/rand's global or per-source locking.
type Stream struct {
	state uint32
}

// New creates a stream seeded from the low 32 bits of seed.
func New(seed int64) *Stream {
	return &Stream{state: uint32(seed)}
}

// Uint32 advances the stream and returns the next raw word.
func (s *Stream) Uint32() uint32 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a uniform value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint32()) / 4294967296.0
}
