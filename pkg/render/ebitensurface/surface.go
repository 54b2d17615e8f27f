// Package ebitensurface 提供基于 ebiten 的 render.Surface 实现
//
// render 包本身不导入 ebiten，无头工具只依赖 render。
package ebitensurface

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/render"
)

var _ render.Surface = (*Surface)(nil)

// maxBatchVertices 超过后提前提交，保证 uint16 索引不溢出
const maxBatchVertices = 60000

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteTexture 返回 1x1 白色纹理，三角形颜色完全由顶点颜色决定
func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Surface 基于 ebiten 离屏图像的 render.Surface
//
// 形状先由 ebiten/v2/vector 细分为三角形，同一合成模式下的三角形
// 攒成一批，用 DrawTriangles 一次提交。画布跨帧保留，运动模糊依赖这一点。
type Surface struct {
	canvas *ebiten.Image
	mode   render.CompositeMode

	vertices []ebiten.Vertex
	indices  []uint16
}

// New 创建指定尺寸的离屏画布
func New(width, height int) *Surface {
	return &Surface{
		canvas: ebiten.NewImage(max(width, 1), max(height, 1)),
	}
}

// Size 返回画布尺寸
func (s *Surface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 重新分配画布
func (s *Surface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.discard()
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(width, height)
}

// SetComposite 切换合成模式，提交之前攒下的三角形
func (s *Surface) SetComposite(mode render.CompositeMode) {
	if mode == s.mode {
		return
	}
	s.Flush()
	s.mode = mode
}

// ClearAll 清空画布，未提交的三角形一并丢弃
func (s *Surface) ClearAll() {
	s.discard()
	s.canvas.Clear()
}

// FillRect 填充矩形
func (s *Surface) FillRect(x, y, width, height float64, c fireworks.ParticleColor, alpha float64) {
	var path vector.Path
	path.MoveTo(float32(x), float32(y))
	path.LineTo(float32(x+width), float32(y))
	path.LineTo(float32(x+width), float32(y+height))
	path.LineTo(float32(x), float32(y+height))
	path.Close()
	s.fill(&path, c, alpha)
}

// FillCircle 填充圆
func (s *Surface) FillCircle(cx, cy, radius float64, c fireworks.ParticleColor, alpha float64) {
	if !(radius > 0) {
		return
	}
	var path vector.Path
	path.Arc(float32(cx), float32(cy), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	s.fill(&path, c, alpha)
}

// StrokePolyline 以圆头圆角描边折线
func (s *Surface) StrokePolyline(points []render.Point, width float64, c fireworks.ParticleColor, alpha float64) {
	if len(points) < 2 || !(width > 0) {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}

	s.reserve()
	start := len(s.vertices)
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices, s.indices, &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	s.paint(start, c, alpha)
}

func (s *Surface) fill(path *vector.Path, c fireworks.ParticleColor, alpha float64) {
	s.reserve()
	start := len(s.vertices)
	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices, s.indices)
	s.paint(start, c, alpha)
}

// paint 给新追加的顶点上色（非预乘）
func (s *Surface) paint(start int, c fireworks.ParticleColor, alpha float64) {
	r := float32(clampUnit(c.R / 255))
	g := float32(clampUnit(c.G / 255))
	b := float32(clampUnit(c.B / 255))
	a := float32(clampUnit(alpha))
	for i := start; i < len(s.vertices); i++ {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
}

func (s *Surface) reserve() {
	if len(s.vertices) >= maxBatchVertices {
		s.Flush()
	}
}

// Flush 提交攒下的三角形
func (s *Surface) Flush() {
	if len(s.indices) == 0 {
		s.discard()
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		Blend:     blendFor(s.mode),
		AntiAlias: true,
	}
	s.canvas.DrawTriangles(s.vertices, s.indices, whiteTexture(), op)
	s.discard()
}

func (s *Surface) discard() {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// Image 提交后返回画布，用于绘制到屏幕
func (s *Surface) Image() *ebiten.Image {
	s.Flush()
	return s.canvas
}

func blendFor(mode render.CompositeMode) ebiten.Blend {
	switch mode {
	case render.CompositeLighter:
		return ebiten.BlendLighter
	case render.CompositeDestinationOut:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
