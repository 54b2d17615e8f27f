package fireworks

import "math/rand/v2"

// Rand is the random source used by every stochastic decision in the
// simulation (jitter, lifespans, trail emission, secondary sparks).
//
// Float64 must return a value in [0, 1). *rand.Rand from math/rand/v2
// satisfies it directly; tests inject a fixed-sequence source.
type Rand interface {
	Float64() float64
}

// globalRand delegates to the unseeded package-level generator.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand returns the process-wide unseeded random source.
func DefaultRand() Rand { return globalRand{} }

// NewSeededRand returns a reproducible source, used by the headless tools.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randRange returns a value uniformly distributed in [min, max).
func randRange(r Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// randJitter returns a value uniformly distributed in [-amount, amount).
func randJitter(r Rand, amount float64) float64 {
	return (r.Float64() - 0.5) * 2 * amount
}
