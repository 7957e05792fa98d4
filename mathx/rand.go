package mathx

import "math/rand/v2"

// Stream is one of the brush engine's two independent pseudo-random
// sources, each sampled uniformly from [0, 1). Streams are owned per
// brush rather than process-global so strokes are reproducible in tests
// without a shared global.
type Stream struct {
	r *rand.Rand
}

// NewStream creates a Stream seeded deterministically from seed. Two
// Streams constructed with different seeds produce independent sequences.
func NewStream(seed uint64) Stream {
	return Stream{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns the next value in [0, 1).
func (s Stream) Float64() float64 {
	return s.r.Float64()
}
