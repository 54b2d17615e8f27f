package fireworks

import "math"

const (
	angleJitter      = 0.1 // radians, applied on top of even spacing
	colorVariation   = 0.2 // ±10% per channel
	launchJitterX    = 15.0
	trailSpawnOdds   = 0.5
	trailGravityMul  = 0.3
	decayThreshold   = 0.1 // fraction of the original burst still alive
	secondaryInherit = 0.3
)

// explosionAngle spaces burst particles evenly over the full circle and
// adds a small uniform jitter so low counts still cover every direction.
func explosionAngle(r Rand, i, n int) float64 {
	return float64(i)/float64(n)*2*math.Pi + randJitter(r, angleJitter)
}

// sampleSpeed draws a burst speed in [min, max].
func sampleSpeed(r Rand, min, max float64, dist Distribution) float64 {
	if dist == DistributionGaussian {
		mean := (min + max) / 2
		stdDev := (max - min) / 4
		v := mean + gaussian(r)*stdDev
		return math.Min(max, math.Max(min, v))
	}
	return randRange(r, min, max)
}

// gaussian returns a standard normal variate via the Box–Muller transform.
func gaussian(r Rand) float64 {
	u1 := 1 - r.Float64() // (0, 1], keeps log finite
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
