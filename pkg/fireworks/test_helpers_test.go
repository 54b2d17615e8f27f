package fireworks

import "math"

// sequenceRand replays a fixed sequence of values, wrapping around.
type sequenceRand struct {
	values []float64
	next   int
}

func newSequenceRand(values ...float64) *sequenceRand {
	return &sequenceRand{values: values}
}

func (s *sequenceRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// constRand always returns the same value.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// runUntilComplete steps f at 60 FPS and returns the phases observed after
// every tick, stopping at completion or after maxTicks.
func runUntilComplete(f *Firework, maxTicks int) []Phase {
	phases := []Phase{f.Phase()}
	for i := 0; i < maxTicks && !f.IsComplete(); i++ {
		f.Update(1.0 / 60.0)
		phases = append(phases, f.Phase())
	}
	return phases
}
