package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// circleKappa 用三次贝塞尔近似四分之一圆的控制点系数
const circleKappa = 0.5522847498

// RasterSurface 纯 CPU 的 Surface，用于无窗口环境（导出 PNG、测试）
//
// 每个形状先由 x/image/vector 光栅化成覆盖率蒙版，再按当前合成模式
// 逐像素混合到预乘 alpha 的浮点缓冲中。
type RasterSurface struct {
	width, height int
	mode          CompositeMode
	pix           []float32 // 预乘 RGBA，行优先

	z    *vector.Rasterizer
	mask []uint8
}

// NewRasterSurface 创建全透明画布
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{z: vector.NewRasterizer(1, 1)}
	s.Resize(width, height)
	return s
}

// Size 返回画布尺寸
func (s *RasterSurface) Size() (int, int) { return s.width, s.height }

// Resize 重新分配画布
func (s *RasterSurface) Resize(width, height int) {
	s.width, s.height = max(width, 1), max(height, 1)
	s.pix = make([]float32, s.width*s.height*4)
}

// SetComposite 切换合成模式
func (s *RasterSurface) SetComposite(mode CompositeMode) { s.mode = mode }

// ClearAll 清为全透明
func (s *RasterSurface) ClearAll() { clear(s.pix) }

// FillRect 填充矩形
func (s *RasterSurface) FillRect(x, y, width, height float64, c fireworks.ParticleColor, alpha float64) {
	s.rasterize(x, y, x+width, y+height, c, alpha, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(float32(x-ox), float32(y-oy))
		z.LineTo(float32(x+width-ox), float32(y-oy))
		z.LineTo(float32(x+width-ox), float32(y+height-oy))
		z.LineTo(float32(x-ox), float32(y+height-oy))
		z.ClosePath()
	})
}

// FillCircle 填充圆
func (s *RasterSurface) FillCircle(cx, cy, radius float64, c fireworks.ParticleColor, alpha float64) {
	if !(radius > 0) {
		return
	}
	s.rasterize(cx-radius, cy-radius, cx+radius, cy+radius, c, alpha, func(z *vector.Rasterizer, ox, oy float64) {
		addCircle(z, cx-ox, cy-oy, radius)
	})
}

// StrokePolyline 以圆头圆角描边折线
//
// 每段线段是一个四边形，每个顶点补一个圆；所有子路径同向，
// 重叠处覆盖率饱和为 1 而不会互相抵消。
func (s *RasterSurface) StrokePolyline(points []Point, width float64, c fireworks.ParticleColor, alpha float64) {
	if len(points) < 2 || !(width > 0) {
		return
	}

	half := width / 2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, minY = math.Min(minX, p.X-half), math.Min(minY, p.Y-half)
		maxX, maxY = math.Max(maxX, p.X+half), math.Max(maxY, p.Y+half)
	}

	s.rasterize(minX, minY, maxX, maxY, c, alpha, func(z *vector.Rasterizer, ox, oy float64) {
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			z.MoveTo(float32(a.X-nx-ox), float32(a.Y-ny-oy))
			z.LineTo(float32(b.X-nx-ox), float32(b.Y-ny-oy))
			z.LineTo(float32(b.X+nx-ox), float32(b.Y+ny-oy))
			z.LineTo(float32(a.X+nx-ox), float32(a.Y+ny-oy))
			z.ClosePath()
		}
		for _, p := range points {
			addCircle(z, p.X-ox, p.Y-oy, half)
		}
	})
}

// addCircle 以角度递增的方向添加一个闭合圆
func addCircle(z *vector.Rasterizer, cx, cy, r float64) {
	k := r * circleKappa
	z.MoveTo(float32(cx+r), float32(cy))
	z.CubeTo(float32(cx+r), float32(cy+k), float32(cx+k), float32(cy+r), float32(cx), float32(cy+r))
	z.CubeTo(float32(cx-k), float32(cy+r), float32(cx-r), float32(cy+k), float32(cx-r), float32(cy))
	z.CubeTo(float32(cx-r), float32(cy-k), float32(cx-k), float32(cy-r), float32(cx), float32(cy-r))
	z.CubeTo(float32(cx+k), float32(cy-r), float32(cx+r), float32(cy-k), float32(cx+r), float32(cy))
	z.ClosePath()
}

// rasterize 在 [minX, maxX] x [minY, maxY] 的包围盒内光栅化 build 描述的路径，
// 然后按覆盖率混合颜色。build 收到的坐标需减去包围盒原点 (ox, oy)。
func (s *RasterSurface) rasterize(minX, minY, maxX, maxY float64, c fireworks.ParticleColor, alpha float64,
	build func(z *vector.Rasterizer, ox, oy float64)) {
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return
	}

	x0 := max(int(math.Floor(minX)), 0)
	y0 := max(int(math.Floor(minY)), 0)
	x1 := min(int(math.Ceil(maxX)), s.width)
	y1 := min(int(math.Ceil(maxY)), s.height)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	bw, bh := x1-x0, y1-y0

	s.z.Reset(bw, bh)
	s.z.DrawOp = draw.Src
	build(s.z, float64(x0), float64(y0))

	if cap(s.mask) < bw*bh {
		s.mask = make([]uint8, bw*bh)
	}
	mask := &image.Alpha{Pix: s.mask[:bw*bh], Stride: bw, Rect: image.Rect(0, 0, bw, bh)}
	s.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	r := float32(clampUnit(c.R / 255))
	g := float32(clampUnit(c.G / 255))
	b := float32(clampUnit(c.B / 255))
	a := float32(clampUnit(alpha))

	for my := 0; my < bh; my++ {
		row := ((y0+my)*s.width + x0) * 4
		for mx := 0; mx < bw; mx++ {
			cov := mask.Pix[my*bw+mx]
			if cov == 0 {
				continue
			}
			s.blend(s.pix[row+mx*4:row+mx*4+4], r, g, b, a*float32(cov)/255)
		}
	}
}

// blend 把非预乘颜色 (r, g, b) 以有效 alpha sa 混合到一个预乘像素上
func (s *RasterSurface) blend(px []float32, r, g, b, sa float32) {
	switch s.mode {
	case CompositeLighter:
		px[0] = min(1, px[0]+r*sa)
		px[1] = min(1, px[1]+g*sa)
		px[2] = min(1, px[2]+b*sa)
		px[3] = min(1, px[3]+sa)
	case CompositeDestinationOut:
		k := 1 - sa
		px[0] *= k
		px[1] *= k
		px[2] *= k
		px[3] *= k
	default:
		k := 1 - sa
		px[0] = r*sa + px[0]*k
		px[1] = g*sa + px[1]*k
		px[2] = b*sa + px[2]*k
		px[3] = sa + px[3]*k
	}
}

// Image 导出为 8 位预乘 RGBA 图像
func (s *RasterSurface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i, v := range s.pix {
		img.Pix[i] = uint8(math.Round(float64(v) * 255))
	}
	return img
}
