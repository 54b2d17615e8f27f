package fireworks

import (
	"errors"
	"fmt"
	"math"
)

// Distribution selects how explosion speeds are sampled.
type Distribution string

const (
	DistributionUniform  Distribution = "uniform"
	DistributionGaussian Distribution = "gaussian"
)

// FireworkConfig holds the launch, explosion, physics and visual parameters
// of one firework. A Firework copies it at construction time.
type FireworkConfig struct {
	// Launch (发射)
	LaunchX     float64
	LaunchY     float64
	TargetY     float64 // apex height in canvas coordinates (y grows downward)
	LaunchSpeed float64 // used only when gravity is zero and the apex cannot be derived

	// Explosion (爆炸)
	ExplosionParticleCount int
	ExplosionVelocityMin   float64
	ExplosionVelocityMax   float64
	VelocityDistribution   Distribution

	// Secondary effect (二次效果)
	SecondaryEnabled       bool
	SecondaryDelay         float64
	SecondaryParticleCount int
	Crackle                bool

	// Physics
	Gravity float64
	Drag    float64

	// Visual
	PrimaryColor   ParticleColor
	SecondaryColor ParticleColor
	TrailLength    int
	FlickerRate    float64
}

// DefaultFireworkConfig returns the fixed defaults for a firework launched
// from the bottom of an 800x600 canvas. FireworkSystem randomizes position
// and colors on top of these.
func DefaultFireworkConfig() FireworkConfig {
	return FireworkConfig{
		LaunchX:     400,
		LaunchY:     600,
		TargetY:     200,
		LaunchSpeed: 500,

		ExplosionParticleCount: 120,
		ExplosionVelocityMin:   80,
		ExplosionVelocityMax:   250,
		VelocityDistribution:   DistributionGaussian,

		SecondaryEnabled:       true,
		SecondaryDelay:         0.8,
		SecondaryParticleCount: 30,
		Crackle:                false,

		Gravity: 150,
		Drag:    0.9,

		PrimaryColor:   ParticleColor{R: 255, G: 100, B: 50},
		SecondaryColor: ParticleColor{R: 255, G: 220, B: 150},
		TrailLength:    8,
		FlickerRate:    0,
	}
}

// Override mutates a config; FireworkSystem.Launch applies overrides in order
// on top of its randomized defaults.
type Override func(*FireworkConfig)

// WithLaunchPosition sets the launch point.
func WithLaunchPosition(x, y float64) Override {
	return func(c *FireworkConfig) {
		c.LaunchX = x
		c.LaunchY = y
	}
}

// WithTargetY sets the apex height.
func WithTargetY(y float64) Override {
	return func(c *FireworkConfig) { c.TargetY = y }
}

// WithColors sets the primary and secondary colors.
func WithColors(primary, secondary ParticleColor) Override {
	return func(c *FireworkConfig) {
		c.PrimaryColor = primary
		c.SecondaryColor = secondary
	}
}

// WithExplosion sets particle count, speed range and distribution.
func WithExplosion(count int, vmin, vmax float64, dist Distribution) Override {
	return func(c *FireworkConfig) {
		c.ExplosionParticleCount = count
		c.ExplosionVelocityMin = vmin
		c.ExplosionVelocityMax = vmax
		c.VelocityDistribution = dist
	}
}

// WithSecondary configures the delayed spark effect.
func WithSecondary(enabled bool, delay float64, count int, crackle bool) Override {
	return func(c *FireworkConfig) {
		c.SecondaryEnabled = enabled
		c.SecondaryDelay = delay
		c.SecondaryParticleCount = count
		c.Crackle = crackle
	}
}

// WithPhysics sets gravity and drag.
func WithPhysics(gravity, drag float64) Override {
	return func(c *FireworkConfig) {
		c.Gravity = gravity
		c.Drag = drag
	}
}

var errNonFinite = errors.New("must be finite")

// Validate rejects configurations that would produce immortal or undefined
// particles.
func (c *FireworkConfig) Validate() error {
	for name, v := range map[string]float64{
		"launchX":        c.LaunchX,
		"launchY":        c.LaunchY,
		"targetY":        c.TargetY,
		"launchSpeed":    c.LaunchSpeed,
		"gravity":        c.Gravity,
		"drag":           c.Drag,
		"velocityMin":    c.ExplosionVelocityMin,
		"velocityMax":    c.ExplosionVelocityMax,
		"secondaryDelay": c.SecondaryDelay,
		"flickerRate":    c.FlickerRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s %w", name, errNonFinite)
		}
	}

	if c.ExplosionParticleCount < 0 {
		return fmt.Errorf("explosion particle count must be >= 0, got %d", c.ExplosionParticleCount)
	}
	if c.ExplosionVelocityMin < 0 || c.ExplosionVelocityMin > c.ExplosionVelocityMax {
		return fmt.Errorf("explosion velocity range invalid: min(%.1f) max(%.1f)",
			c.ExplosionVelocityMin, c.ExplosionVelocityMax)
	}
	switch c.VelocityDistribution {
	case DistributionUniform, DistributionGaussian:
	default:
		return fmt.Errorf("unknown velocity distribution %q", c.VelocityDistribution)
	}
	if c.SecondaryParticleCount < 0 {
		return fmt.Errorf("secondary particle count must be >= 0, got %d", c.SecondaryParticleCount)
	}
	if c.SecondaryDelay < 0 {
		return fmt.Errorf("secondary delay must be >= 0, got %.2f", c.SecondaryDelay)
	}
	if c.Gravity < 0 || c.Drag < 0 {
		return fmt.Errorf("gravity(%.1f) and drag(%.2f) must be >= 0", c.Gravity, c.Drag)
	}
	if c.Gravity == 0 && c.LaunchSpeed <= 0 {
		return errors.New("launch speed must be > 0 when gravity is 0")
	}
	if c.TrailLength < 0 {
		return fmt.Errorf("trail length must be >= 0, got %d", c.TrailLength)
	}
	if c.FlickerRate < 0 {
		return fmt.Errorf("flicker rate must be >= 0, got %.2f", c.FlickerRate)
	}
	return nil
}
