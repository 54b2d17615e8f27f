package fireworks

import (
	"fmt"
	"math"
	"slices"
)

const (
	cometLifespan      = 10.0 // upper bound; the comet normally explodes long before
	cometSize          = 3.0
	crackleFlickerRate = 15.0
)

// Point is a 2D position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Firework drives one comet and its bursts through the phase machine:
//
//	launch → explosion → (secondary) → decay → complete
//
// Transitions never go backwards. Once complete the firework is inert.
type Firework struct {
	cfg FireworkConfig
	rng Rand

	comet     *Particle // nil once the explosion has fired
	trail     []*Particle
	explosion []*Particle
	secondary []*Particle

	phase              Phase
	phaseStartTime     float64 // seconds since the current phase was entered
	sinceExplosion     float64
	secondaryTriggered bool
	origin             Point
}

// NewFirework validates cfg and creates a firework in the launch phase.
// A nil r falls back to DefaultRand.
func NewFirework(cfg FireworkConfig, r Rand) (*Firework, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid firework config: %w", err)
	}
	if r == nil {
		r = DefaultRand()
	}

	f := &Firework{
		cfg:   cfg,
		rng:   r,
		phase: PhaseLaunch,
	}
	f.comet = NewParticle(ParticleOptions{
		X:           cfg.LaunchX,
		Y:           cfg.LaunchY,
		VX:          randJitter(r, launchJitterX),
		VY:          LaunchVelocity(cfg),
		Gravity:     cfg.Gravity,
		// 彗星不受阻力，LaunchVelocity 是无阻力解，否则达不到 TargetY
		Lifespan:    cometLifespan,
		Color:       cfg.PrimaryColor,
		Size:        cometSize,
		TrailLength: cfg.TrailLength,
	})
	return f, nil
}

// LaunchVelocity returns the initial vertical velocity that puts the apex of
// a drag-free ballistic arc exactly at cfg.TargetY. With zero gravity the
// apex is undefined and LaunchSpeed is used instead.
func LaunchVelocity(cfg FireworkConfig) float64 {
	if cfg.Gravity <= 0 {
		return -cfg.LaunchSpeed
	}
	return -math.Sqrt(2 * cfg.Gravity * math.Abs(cfg.TargetY-cfg.LaunchY))
}

// Update advances the firework by dt seconds.
func (f *Firework) Update(dt float64) {
	if f.phase == PhaseComplete || !(dt > 0) {
		return
	}

	f.phaseStartTime += dt

	switch f.phase {
	case PhaseLaunch:
		f.updateLaunch(dt)
	case PhaseExplosion, PhaseSecondary, PhaseDecay:
		f.updateExplosion(dt)
	}
}

func (f *Firework) updateLaunch(dt float64) {
	c := f.comet
	c.Update(dt)

	if f.rng.Float64() < trailSpawnOdds {
		f.spawnTrailSpark(c)
	}
	f.trail = updateParticles(f.trail, dt)

	// Apex reached, target height passed, or the comet burnt out.
	if !c.Alive || c.VY >= 0 || c.Y <= f.cfg.TargetY {
		f.TriggerExplosion()
	}
}

func (f *Firework) spawnTrailSpark(c *Particle) {
	r := f.rng
	f.trail = append(f.trail, NewParticle(ParticleOptions{
		X:        c.X,
		Y:        c.Y,
		VX:       randJitter(r, 10),
		VY:       randRange(r, 10, 40),
		Gravity:  f.cfg.Gravity * trailGravityMul,
		Drag:     f.cfg.Drag,
		Lifespan: randRange(r, 0.2, 0.4),
		Color:    f.cfg.SecondaryColor,
		Size:     randRange(r, 1, 2),
	}))
}

// updateExplosion serves the explosion, secondary and decay phases alike.
func (f *Firework) updateExplosion(dt float64) {
	f.sinceExplosion += dt

	f.explosion = updateParticles(f.explosion, dt)
	f.secondary = updateParticles(f.secondary, dt)
	f.trail = updateParticles(f.trail, dt)

	if f.cfg.SecondaryEnabled && !f.secondaryTriggered && f.sinceExplosion >= f.cfg.SecondaryDelay {
		f.TriggerSecondary()
	}

	if (f.phase == PhaseExplosion || f.phase == PhaseSecondary) &&
		float64(len(f.explosion)) < decayThreshold*float64(f.cfg.ExplosionParticleCount) {
		f.setPhase(PhaseDecay)
	}

	if len(f.explosion) == 0 && len(f.secondary) == 0 && len(f.trail) == 0 {
		f.setPhase(PhaseComplete)
	}
}

// TriggerExplosion kills the comet and emits the main burst from its last
// position. It does nothing once the comet is spent.
func (f *Firework) TriggerExplosion() {
	if f.comet == nil {
		return
	}

	c := f.comet
	c.Kill()
	f.comet = nil
	f.origin = Point{X: c.X, Y: c.Y}

	r := f.rng
	n := f.cfg.ExplosionParticleCount
	f.explosion = slices.Grow(f.explosion, n)
	for i := 0; i < n; i++ {
		angle := explosionAngle(r, i, n)
		speed := sampleSpeed(r, f.cfg.ExplosionVelocityMin, f.cfg.ExplosionVelocityMax, f.cfg.VelocityDistribution)
		f.explosion = append(f.explosion, NewParticle(ParticleOptions{
			X:           f.origin.X,
			Y:           f.origin.Y,
			VX:          math.Cos(angle) * speed,
			VY:          math.Sin(angle) * speed,
			Gravity:     f.cfg.Gravity,
			Drag:        f.cfg.Drag,
			Lifespan:    randRange(r, 1.5, 3.0),
			Color:       f.cfg.PrimaryColor.Jitter(r, colorVariation),
			Size:        randRange(r, 2, 4),
			FlickerRate: f.cfg.FlickerRate,
			TrailLength: f.cfg.TrailLength,
		}))
	}

	f.sinceExplosion = 0
	f.setPhase(PhaseExplosion)
}

// TriggerSecondary spawns delayed sparks from a random sample of the
// surviving burst particles. Only the first call after the explosion has
// any effect. The phase moves to secondary unless decay was already reached.
func (f *Firework) TriggerSecondary() {
	if f.secondaryTriggered || f.phase == PhaseLaunch || f.phase == PhaseComplete {
		return
	}
	f.secondaryTriggered = true

	sources := make([]*Particle, 0, len(f.explosion))
	for _, p := range f.explosion {
		if p.Alive {
			sources = append(sources, p)
		}
	}

	r := f.rng
	n := min(f.cfg.SecondaryParticleCount, len(sources))
	// Partial Fisher–Yates: the first n entries become a uniform sample.
	for i := 0; i < n; i++ {
		j := i + int(r.Float64()*float64(len(sources)-i))
		sources[i], sources[j] = sources[j], sources[i]
	}

	flicker := f.cfg.FlickerRate
	if f.cfg.Crackle {
		flicker = crackleFlickerRate
	}

	for _, src := range sources[:n] {
		sparks := 1
		if f.cfg.Crackle {
			sparks = 3 + int(r.Float64()*3)
		}
		for k := 0; k < sparks; k++ {
			angle := r.Float64() * 2 * math.Pi
			kick := randRange(r, 30, 80)
			f.secondary = append(f.secondary, NewParticle(ParticleOptions{
				X:           src.X,
				Y:           src.Y,
				VX:          src.VX*secondaryInherit + math.Cos(angle)*kick,
				VY:          src.VY*secondaryInherit + math.Sin(angle)*kick,
				Gravity:     f.cfg.Gravity,
				Drag:        f.cfg.Drag,
				Lifespan:    randRange(r, 0.3, 0.8),
				Color:       f.cfg.SecondaryColor,
				Size:        randRange(r, 1, 2),
				FlickerRate: flicker,
			}))
		}
	}

	if f.phase != PhaseDecay {
		f.setPhase(PhaseSecondary)
	}
}

func (f *Firework) setPhase(p Phase) {
	if p <= f.phase {
		return
	}
	f.phase = p
	f.phaseStartTime = 0
}

// updateParticles advances every particle and drops the dead ones in place.
func updateParticles(ps []*Particle, dt float64) []*Particle {
	for _, p := range ps {
		p.Update(dt)
	}
	return slices.DeleteFunc(ps, func(p *Particle) bool { return !p.Alive })
}

// Phase returns the current phase.
func (f *Firework) Phase() Phase { return f.phase }

// PhaseTime returns the seconds spent in the current phase.
func (f *Firework) PhaseTime() float64 { return f.phaseStartTime }

// IsComplete reports whether the firework is inert and can be dropped.
func (f *Firework) IsComplete() bool { return f.phase == PhaseComplete }

// SecondaryTriggered reports whether the secondary sparks were spawned.
func (f *Firework) SecondaryTriggered() bool { return f.secondaryTriggered }

// Config returns a copy of the firework's configuration.
func (f *Firework) Config() FireworkConfig { return f.cfg }

// Origin returns the explosion point; zero before the explosion.
func (f *Firework) Origin() Point { return f.origin }

// Comet returns the launch particle, or nil once it exploded.
func (f *Firework) Comet() *Particle { return f.comet }

// ExplosionParticles returns the live burst particles. Read-only.
func (f *Firework) ExplosionParticles() []*Particle { return f.explosion }

// SecondaryParticles returns the live secondary sparks. Read-only.
func (f *Firework) SecondaryParticles() []*Particle { return f.secondary }

// TrailParticles returns the live comet trail sparks. Read-only.
func (f *Firework) TrailParticles() []*Particle { return f.trail }

// AppendParticles appends every drawable particle to dst.
func (f *Firework) AppendParticles(dst []*Particle) []*Particle {
	if f.comet != nil && f.comet.Alive {
		dst = append(dst, f.comet)
	}
	dst = append(dst, f.trail...)
	dst = append(dst, f.explosion...)
	dst = append(dst, f.secondary...)
	return dst
}

// ParticleCount returns the number of particles AppendParticles would add.
func (f *Firework) ParticleCount() int {
	n := len(f.trail) + len(f.explosion) + len(f.secondary)
	if f.comet != nil && f.comet.Alive {
		n++
	}
	return n
}
