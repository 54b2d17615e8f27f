package render

import (
	"math"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// CompositeMode 合成模式
// 决定新绘制的像素如何与画布上已有的像素混合
type CompositeMode int

const (
	// CompositeSourceOver 普通 alpha 混合（默认）
	CompositeSourceOver CompositeMode = iota
	// CompositeLighter 加法混合，重叠处越叠越亮
	CompositeLighter
	// CompositeDestinationOut 按源 alpha 擦除目标，用于运动模糊的渐隐
	CompositeDestinationOut
)

func (m CompositeMode) String() string {
	switch m {
	case CompositeSourceOver:
		return "source-over"
	case CompositeLighter:
		return "lighter"
	case CompositeDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// Point 画布坐标
type Point = fireworks.Point

// Surface 2D 绘制表面
//
// FireworkRenderer 只通过这个接口绘制，不关心后端是 GPU 还是 CPU。
// 颜色通道取值 [0, 255]，alpha 取值 [0, 1]，均为非预乘。
type Surface interface {
	// Size 返回画布尺寸（像素）
	Size() (width, height int)
	// Resize 重新分配画布，内容被清空
	Resize(width, height int)
	// SetComposite 切换后续绘制的合成模式
	SetComposite(mode CompositeMode)
	// ClearAll 把整个画布清为全透明，忽略合成模式
	ClearAll()
	// FillRect 填充矩形
	FillRect(x, y, width, height float64, c fireworks.ParticleColor, alpha float64)
	// FillCircle 填充圆
	FillCircle(cx, cy, radius float64, c fireworks.ParticleColor, alpha float64)
	// StrokePolyline 沿折线描边
	StrokePolyline(points []Point, width float64, c fireworks.ParticleColor, alpha float64)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
