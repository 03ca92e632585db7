package srs

import "math/rand/v2"

// RNG is the source of randomness for the engine's sampled decisions: the
// new-vs-review draw, the soft mode draw, and the random catalog fallbacks.
// Tests supply deterministic sequences through this interface.
//
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64

	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// newDefaultRNG returns the engine's default randomness source.
func newDefaultRNG() RNG {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
