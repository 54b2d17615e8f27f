package render

import (
	"errors"
	"math"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// 绘制参数
const (
	// minVisibleAlpha 低于此 alpha 的粒子不绘制
	minVisibleAlpha = 0.05

	trailAlphaMul = 0.3
	trailWidthMul = 0.5

	glowMinAlpha  = 0.2
	glowRadiusMul = 3.0
	glowAlphaMul  = 0.15

	highlightMinAlpha  = 0.6
	highlightRadiusMul = 0.4
	highlightAlphaMul  = 0.8
)

// ErrNilSurface 渲染器没有可用的绘制表面
var ErrNilSurface = errors.New("render: nil drawing surface")

var black = fireworks.ParticleColor{}

// ParticleSource 可供渲染的粒子快照来源，*fireworks.FireworkSystem 满足该接口
type ParticleSource interface {
	AppendParticles(dst []*fireworks.Particle) []*fireworks.Particle
}

// RendererConfig 渲染开关
type RendererConfig struct {
	GlowEnabled       bool
	TrailEnabled      bool
	MotionBlurEnabled bool
	FadeAlpha         float64 // 运动模糊每帧擦除的比例 [0, 1]
}

// DefaultRendererConfig 返回默认渲染配置
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		GlowEnabled:       true,
		TrailEnabled:      true,
		MotionBlurEnabled: true,
		FadeAlpha:         0.15,
	}
}

// RendererOption 构造时覆盖渲染配置
type RendererOption func(*RendererConfig)

// WithGlow 开关光晕
func WithGlow(enabled bool) RendererOption {
	return func(c *RendererConfig) { c.GlowEnabled = enabled }
}

// WithTrails 开关拖尾
func WithTrails(enabled bool) RendererOption {
	return func(c *RendererConfig) { c.TrailEnabled = enabled }
}

// WithMotionBlur 开关运动模糊并设置渐隐比例
func WithMotionBlur(enabled bool, fadeAlpha float64) RendererOption {
	return func(c *RendererConfig) {
		c.MotionBlurEnabled = enabled
		c.FadeAlpha = fadeAlpha
	}
}

// RendererPatch 部分更新，nil 字段保持不变
type RendererPatch struct {
	GlowEnabled       *bool
	TrailEnabled      *bool
	MotionBlurEnabled *bool
	FadeAlpha         *float64
}

// FireworkRenderer 把粒子快照投影到 Surface 上
//
// 渲染器不持有模拟状态，也从不修改粒子。
type FireworkRenderer struct {
	surface Surface
	config  RendererConfig

	particles []*fireworks.Particle // 每帧复用的快照缓冲
	polyline  []Point
}

// NewFireworkRenderer 创建渲染器
//
// 参数：
//   - surface: 绘制表面，不可为 nil
//   - overrides: 依次应用到默认配置上
//
// 返回：
//   - *FireworkRenderer: 渲染器实例
//   - error: surface 为 nil 时返回 ErrNilSurface
func NewFireworkRenderer(surface Surface, overrides ...RendererOption) (*FireworkRenderer, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}

	cfg := DefaultRendererConfig()
	for _, o := range overrides {
		if o != nil {
			o(&cfg)
		}
	}
	cfg.FadeAlpha = clampUnit(cfg.FadeAlpha)

	return &FireworkRenderer{
		surface: surface,
		config:  cfg,
	}, nil
}

// Config 返回当前渲染配置
func (r *FireworkRenderer) Config() RendererConfig { return r.config }

// SetConfig 部分更新渲染配置
func (r *FireworkRenderer) SetConfig(patch RendererPatch) {
	if patch.GlowEnabled != nil {
		r.config.GlowEnabled = *patch.GlowEnabled
	}
	if patch.TrailEnabled != nil {
		r.config.TrailEnabled = *patch.TrailEnabled
	}
	if patch.MotionBlurEnabled != nil {
		r.config.MotionBlurEnabled = *patch.MotionBlurEnabled
	}
	if patch.FadeAlpha != nil {
		r.config.FadeAlpha = clampUnit(*patch.FadeAlpha)
	}
}

// Resize 调整绘制表面尺寸
func (r *FireworkRenderer) Resize(width, height int) {
	r.surface.Resize(width, height)
}

// Surface 返回绘制表面
func (r *FireworkRenderer) Surface() Surface { return r.surface }

// Clear 开始新的一帧
//
// 运动模糊模式下用 destination-out 擦除 FadeAlpha 比例的旧内容，
// 否则直接清空画布。
func (r *FireworkRenderer) Clear() {
	if !r.config.MotionBlurEnabled {
		r.surface.ClearAll()
		return
	}

	w, h := r.surface.Size()
	r.surface.SetComposite(CompositeDestinationOut)
	r.surface.FillRect(0, 0, float64(w), float64(h), black, r.config.FadeAlpha)
	r.surface.SetComposite(CompositeSourceOver)
}

// Render 清屏后以加法混合绘制所有可见粒子
//
// 每个粒子依次绘制：拖尾、光晕、核心、高光。
func (r *FireworkRenderer) Render(src ParticleSource) {
	r.Clear()
	if src == nil {
		return
	}

	r.particles = src.AppendParticles(r.particles[:0])

	r.surface.SetComposite(CompositeLighter)
	for _, p := range r.particles {
		r.drawParticle(p)
	}
	r.surface.SetComposite(CompositeSourceOver)

	// 不保留对粒子的引用
	clear(r.particles)
}

func (r *FireworkRenderer) drawParticle(p *fireworks.Particle) {
	alpha := p.Alpha()
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= minVisibleAlpha {
		return
	}
	alpha = math.Min(alpha, 1)

	if r.config.TrailEnabled && len(p.Trail) >= 2 {
		r.polyline = r.polyline[:0]
		for _, tp := range p.Trail {
			r.polyline = append(r.polyline, Point{X: tp.X, Y: tp.Y})
		}
		r.polyline = append(r.polyline, Point{X: p.X, Y: p.Y})
		r.surface.StrokePolyline(r.polyline, p.Size*trailWidthMul, p.Color, alpha*trailAlphaMul)
	}

	if r.config.GlowEnabled && alpha > glowMinAlpha {
		r.surface.FillCircle(p.X, p.Y, p.Size*glowRadiusMul, p.Color, alpha*glowAlphaMul)
	}

	r.surface.FillCircle(p.X, p.Y, p.Size, p.Color, alpha)

	if alpha > highlightMinAlpha {
		r.surface.FillCircle(p.X, p.Y, p.Size*highlightRadiusMul, fireworks.White, alpha*highlightAlphaMul)
	}
}
