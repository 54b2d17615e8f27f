package fireworks

import "math"

// TrailPoint is one historical sample of a particle's streak.
type TrailPoint struct {
	X, Y  float64
	Alpha float64 // life ratio at the time the sample was recorded
}

// Particle is a single aging physical point.
//
// Fields are exported so renderers and tools can read snapshots directly;
// only the owning Firework mutates them, and only inside Update.
type Particle struct {
	// Kinematics (像素, 像素/秒)
	X, Y   float64
	VX, VY float64
	AX, AY float64 // extra acceleration on top of gravity

	Gravity float64
	Drag    float64

	// Lifecycle (秒)
	Lifespan float64
	Age      float64
	Alive    bool

	// Visual state, recomputed from the life ratio on every update
	Color        ParticleColor
	InitialColor ParticleColor
	Size         float64
	InitialSize  float64
	Brightness   float64
	FlickerRate  float64 // strobe frequency in Hz, 0 disables flicker

	TrailLength int
	Trail       []TrailPoint
}

// ParticleOptions describes a particle at spawn time.
type ParticleOptions struct {
	X, Y        float64
	VX, VY      float64
	AX, AY      float64
	Gravity     float64
	Drag        float64
	Lifespan    float64
	Color       ParticleColor
	Size        float64
	FlickerRate float64
	TrailLength int
}

// NewParticle creates a live particle.
//
// A non-positive (or NaN) lifespan yields a particle that is already dead.
func NewParticle(opts ParticleOptions) *Particle {
	p := &Particle{
		X:            opts.X,
		Y:            opts.Y,
		VX:           opts.VX,
		VY:           opts.VY,
		AX:           opts.AX,
		AY:           opts.AY,
		Gravity:      opts.Gravity,
		Drag:         opts.Drag,
		Lifespan:     opts.Lifespan,
		Alive:        opts.Lifespan > 0,
		Color:        opts.Color,
		InitialColor: opts.Color,
		Size:         opts.Size,
		InitialSize:  opts.Size,
		Brightness:   1,
		FlickerRate:  opts.FlickerRate,
		TrailLength:  max(opts.TrailLength, 0),
	}
	if p.TrailLength > 0 {
		p.Trail = make([]TrailPoint, 0, p.TrailLength)
	}
	p.UpdateVisuals()
	return p
}

// Update advances the particle by dt seconds.
//
// The steps run in a fixed order: record trail (pre-move position), drag,
// gravity, extra acceleration, integrate, age, visuals. Dead particles and
// non-positive or non-finite dt are ignored.
func (p *Particle) Update(dt float64) {
	if !p.Alive || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	if p.TrailLength > 0 {
		p.Trail = append(p.Trail, TrailPoint{X: p.X, Y: p.Y, Alpha: p.LifeRatio()})
		if over := len(p.Trail) - p.TrailLength; over > 0 {
			// 丢弃最旧的轨迹点
			n := copy(p.Trail, p.Trail[over:])
			p.Trail = p.Trail[:n]
		}
	}

	damping := 1 - p.Drag*dt
	p.VX *= damping
	p.VY *= damping

	p.VY += p.Gravity * dt

	p.VX += p.AX * dt
	p.VY += p.AY * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	p.Age += dt
	if p.Age >= p.Lifespan {
		p.Alive = false
	}

	p.UpdateVisuals()
}

// UpdateVisuals recomputes size, brightness and color from the life ratio.
// It is a pure function of Age and Lifespan, so calling it repeatedly
// within the same tick is idempotent.
func (p *Particle) UpdateVisuals() {
	lifeRatio := p.LifeRatio()

	p.Size = p.InitialSize * (0.3 + 0.7*lifeRatio)

	flicker := 1.0
	if p.FlickerRate != 0 {
		flicker = 0.5 + 0.5*math.Sin(p.Age*p.FlickerRate*2*math.Pi)
	}
	p.Brightness = lifeRatio * flicker

	p.Color = coolingColor(p.InitialColor, lifeRatio)
}

// coolingColor maps a base color through the hot / steady / fade bands.
func coolingColor(base ParticleColor, lifeRatio float64) ParticleColor {
	switch {
	case lifeRatio > 0.7:
		t := (lifeRatio - 0.7) / 0.3
		return base.lerpWeighted(hotColor, t, 0.5, 0.3, 0.2)
	case lifeRatio > 0.3:
		return base
	default:
		t := 1 - lifeRatio/0.3
		return ParticleColor{
			R: base.R,
			G: base.G * (1 - t*0.5),
			B: base.B * (1 - t*0.8),
		}
	}
}

// LifeRatio returns 1 - age/lifespan clamped to [0, 1].
func (p *Particle) LifeRatio() float64 {
	if !(p.Lifespan > 0) {
		return 0
	}
	return clamp01(1 - p.Age/p.Lifespan)
}

// Alpha is the effective opacity: brightness scaled by the life ratio.
func (p *Particle) Alpha() float64 {
	return p.Brightness * p.LifeRatio()
}

// Kill marks the particle dead without advancing its age.
func (p *Particle) Kill() {
	p.Alive = false
}

// RenderColor returns the current color string with an external alpha
// multiplier applied on top of the particle's own alpha.
func (p *Particle) RenderColor(alphaMul float64) string {
	return p.Color.CSS(p.Alpha() * alphaMul)
}
