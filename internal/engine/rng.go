package engine

import "math/rand/v2"

// RandSource supplies the engine's tie-break randomness. Injecting it keeps
// generation reproducible: same seed, same inputs, same plan. Tests can
// substitute a fixed sequence.
type RandSource interface {
	// Next returns the next value in [0, 1).
	Next() float64
}

type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a deterministic RandSource for the given seed.
func NewSeededSource(seed uint64) RandSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Next() float64 {
	return s.r.Float64()
}
