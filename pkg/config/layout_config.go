package config

// 布局配置常量
// 本文件定义了窗口尺寸和 HUD 位置等参数

// Window Configuration (窗口配置)
const (
	// DefaultWindowWidth 默认窗口宽度（像素）
	DefaultWindowWidth = 800

	// DefaultWindowHeight 默认窗口高度（像素）
	DefaultWindowHeight = 600

	// DefaultWindowTitle 默认窗口标题
	DefaultWindowTitle = "Fireworks"

	// MinWindowWidth / MinWindowHeight 窗口可缩放到的最小尺寸
	MinWindowWidth  = 320
	MinWindowHeight = 240
)

// HUD Configuration (HUD 配置)
const (
	// HUDMarginX HUD 文字距离左边缘的距离
	HUDMarginX = 8

	// HUDMarginY HUD 文字距离上边缘的距离
	HUDMarginY = 8

	// HUDLineHeight debug 字体的行高
	HUDLineHeight = 16
)

// ClampWindowSize 把窗口尺寸限制在最小值以上
// 返回值：width, height
func ClampWindowSize(width, height int) (int, int) {
	return max(width, MinWindowWidth), max(height, MinWindowHeight)
}
