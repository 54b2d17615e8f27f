package render

import (
	"fmt"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// drawCall 记录一次绘制调用
type drawCall struct {
	op     string // composite, clear, rect, circle, polyline
	mode   CompositeMode
	x, y   float64
	size   float64 // 圆半径或线宽
	points int
	color  fireworks.ParticleColor
	alpha  float64
}

func (c drawCall) String() string {
	return fmt.Sprintf("%s(mode=%v x=%v y=%v size=%v alpha=%v)", c.op, c.mode, c.x, c.y, c.size, c.alpha)
}

// recordingSurface 记录所有调用，不做真实绘制
type recordingSurface struct {
	width, height int
	mode          CompositeMode
	calls         []drawCall
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{width: w, height: h}
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }

func (s *recordingSurface) Resize(w, h int) { s.width, s.height = w, h }

func (s *recordingSurface) SetComposite(mode CompositeMode) {
	s.mode = mode
	s.calls = append(s.calls, drawCall{op: "composite", mode: mode})
}

func (s *recordingSurface) ClearAll() {
	s.calls = append(s.calls, drawCall{op: "clear", mode: s.mode})
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c fireworks.ParticleColor, alpha float64) {
	s.calls = append(s.calls, drawCall{op: "rect", mode: s.mode, x: x, y: y, size: w * h, color: c, alpha: alpha})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c fireworks.ParticleColor, alpha float64) {
	s.calls = append(s.calls, drawCall{op: "circle", mode: s.mode, x: cx, y: cy, size: r, color: c, alpha: alpha})
}

func (s *recordingSurface) StrokePolyline(points []Point, width float64, c fireworks.ParticleColor, alpha float64) {
	s.calls = append(s.calls, drawCall{op: "polyline", mode: s.mode, size: width, points: len(points), color: c, alpha: alpha})
}

// shapes 返回除合成模式切换和清屏之外的调用
func (s *recordingSurface) shapes() []drawCall {
	var out []drawCall
	for _, c := range s.calls {
		if c.op == "circle" || c.op == "polyline" {
			out = append(out, c)
		}
	}
	return out
}

// staticSource 固定的粒子快照
type staticSource []*fireworks.Particle

func (s staticSource) AppendParticles(dst []*fireworks.Particle) []*fireworks.Particle {
	return append(dst, s...)
}

// particleWithAlpha 构造 alpha 恰好等于给定值的粒子（lifeRatio = 1）
func particleWithAlpha(alpha float64, trail int) *fireworks.Particle {
	p := fireworks.NewParticle(fireworks.ParticleOptions{
		X:        50,
		Y:        60,
		Lifespan: 1,
		Size:     2,
		Color:    fireworks.ParticleColor{R: 200, G: 100, B: 50},
	})
	p.Brightness = alpha
	for i := 0; i < trail; i++ {
		p.Trail = append(p.Trail, fireworks.TrailPoint{X: float64(40 + i), Y: 60, Alpha: 1})
	}
	return p
}
