package fireworks

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/fireworks/pkg/utils"
)

// ParticleColor holds three independent channel intensities, roughly in
// [0, 255]. Alpha is never stored; it is derived from the particle state.
type ParticleColor struct {
	R, G, B float64
}

// hotColor is the white-hot tint a fresh particle blends toward.
var hotColor = ParticleColor{R: 255, G: 255, B: 200}

// White is used for highlights.
var White = ParticleColor{R: 255, G: 255, B: 255}

// ColorFromColorful converts a go-colorful color (channels in [0, 1]).
func ColorFromColorful(c colorful.Color) ParticleColor {
	c = c.Clamped()
	return ParticleColor{R: c.R * 255, G: c.G * 255, B: c.B * 255}
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (ParticleColor, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ParticleColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromColorful(c), nil
}

// Jitter returns a copy with every channel independently multiplied by a
// factor in [1-variation/2, 1+variation/2], clamped to [0, 255].
func (c ParticleColor) Jitter(r Rand, variation float64) ParticleColor {
	half := variation / 2
	return ParticleColor{
		R: clampChannel(c.R * (1 + randJitter(r, half))),
		G: clampChannel(c.G * (1 + randJitter(r, half))),
		B: clampChannel(c.B * (1 + randJitter(r, half))),
	}
}

// NRGBA floors each channel and applies alpha in [0, 1].
func (c ParticleColor) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: floorChannel(c.R),
		G: floorChannel(c.G),
		B: floorChannel(c.B),
		A: uint8(math.Floor(clamp01(alpha) * 255)),
	}
}

// CSS formats the color as an rgba() string with floored channels.
func (c ParticleColor) CSS(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)",
		floorChannel(c.R), floorChannel(c.G), floorChannel(c.B), clamp01(alpha))
}

func (c ParticleColor) String() string {
	return c.CSS(1)
}

// lerpWeighted blends channel-wise toward target with per-channel weights.
func (c ParticleColor) lerpWeighted(target ParticleColor, t, wr, wg, wb float64) ParticleColor {
	return ParticleColor{
		R: utils.Lerp(c.R, target.R, t*wr),
		G: utils.Lerp(c.G, target.G, t*wg),
		B: utils.Lerp(c.B, target.B, t*wb),
	}
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func floorChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Floor(clampChannel(v)))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
