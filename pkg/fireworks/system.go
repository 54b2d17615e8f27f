package fireworks

import (
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MaxFrameDelta caps a single Update call, e.g. after the window was
	// hidden for a while.
	MaxFrameDelta = 0.25
	// MaxSubstep is the largest step handed to the fireworks; longer frames
	// are integrated in several sub-steps.
	MaxSubstep = 1.0 / 30.0
)

// FireworkSystem owns every live firework and the canvas bounds used to
// place new launches.
type FireworkSystem struct {
	width, height float64
	rng           Rand
	palette       []ParticleColor
	fireworks     []*Firework
}

// SystemOption configures a FireworkSystem.
type SystemOption func(*FireworkSystem)

// WithRand injects the random source shared by the system and its fireworks.
func WithRand(r Rand) SystemOption {
	return func(s *FireworkSystem) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithPalette restricts random launch colors to the given set.
func WithPalette(colors []ParticleColor) SystemOption {
	return func(s *FireworkSystem) {
		s.palette = slices.Clone(colors)
	}
}

// NewFireworkSystem creates an empty system for a canvas of the given size.
func NewFireworkSystem(width, height float64, opts ...SystemOption) *FireworkSystem {
	s := &FireworkSystem{
		width:  width,
		height: height,
		rng:    DefaultRand(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Launch builds a randomized default config (launch point in the central
// 60% of the width at the bottom edge, apex in the 20%–50% band of the
// height), applies overrides in order, and starts a new firework.
func (s *FireworkSystem) Launch(overrides ...Override) (*Firework, error) {
	cfg := s.defaultConfig()
	for _, o := range overrides {
		if o != nil {
			o(&cfg)
		}
	}

	f, err := NewFirework(cfg, s.rng)
	if err != nil {
		log.Printf("[FireworkSystem] launch rejected: %v", err)
		return nil, fmt.Errorf("failed to launch firework: %w", err)
	}
	s.fireworks = append(s.fireworks, f)
	return f, nil
}

func (s *FireworkSystem) defaultConfig() FireworkConfig {
	r := s.rng
	cfg := DefaultFireworkConfig()
	cfg.LaunchX = s.width*0.2 + r.Float64()*s.width*0.6
	cfg.LaunchY = s.height
	cfg.TargetY = s.height*0.2 + r.Float64()*s.height*0.3
	cfg.PrimaryColor, cfg.SecondaryColor = s.randomColors()
	return cfg
}

func (s *FireworkSystem) randomColors() (primary, secondary ParticleColor) {
	r := s.rng
	if len(s.palette) > 0 {
		primary = s.palette[int(r.Float64()*float64(len(s.palette)))]
		secondary = s.palette[int(r.Float64()*float64(len(s.palette)))]
		return primary, secondary
	}

	// 随机色相：主色高饱和，辅色偏淡
	hue := r.Float64() * 360
	primary = ColorFromColorful(colorful.Hsv(hue, 0.7+r.Float64()*0.3, 1))
	secondary = ColorFromColorful(colorful.Hsv(math.Mod(hue+30, 360), 0.35, 1))
	return primary, secondary
}

// Update advances every firework and drops the completed ones.
func (s *FireworkSystem) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	dt = math.Min(dt, MaxFrameDelta)

	for dt > 1e-9 {
		step := math.Min(dt, MaxSubstep)
		for _, f := range s.fireworks {
			f.Update(step)
		}
		dt -= step
	}

	s.fireworks = slices.DeleteFunc(s.fireworks, (*Firework).IsComplete)
}

// AllParticles returns a fresh snapshot of every drawable particle.
func (s *FireworkSystem) AllParticles() []*Particle {
	return s.AppendParticles(make([]*Particle, 0, s.ParticleCount()))
}

// AppendParticles appends every drawable particle to dst, letting callers
// reuse a buffer across frames. The particles must not be modified.
func (s *FireworkSystem) AppendParticles(dst []*Particle) []*Particle {
	for _, f := range s.fireworks {
		dst = f.AppendParticles(dst)
	}
	return dst
}

// ParticleCount returns the number of drawable particles.
func (s *FireworkSystem) ParticleCount() int {
	n := 0
	for _, f := range s.fireworks {
		n += f.ParticleCount()
	}
	return n
}

// Resize changes the bounds used by future launches only.
func (s *FireworkSystem) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Size returns the current canvas bounds.
func (s *FireworkSystem) Size() (width, height float64) {
	return s.width, s.height
}

// Fireworks returns the live fireworks in launch order. Read-only.
func (s *FireworkSystem) Fireworks() []*Firework { return s.fireworks }

// Len returns the number of live fireworks.
func (s *FireworkSystem) Len() int { return len(s.fireworks) }

// Clear drops every live firework immediately.
func (s *FireworkSystem) Clear() {
	clear(s.fireworks)
	s.fireworks = s.fireworks[:0]
}
