package scenes

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppendJustPressedPointers 追加本帧新按下的所有指针位置
// 同时支持鼠标左键和多点触摸，每个新触点各算一次
func AppendJustPressedPointers(dst []image.Point) []image.Point {
	// 检查触摸（移动设备）
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, image.Pt(x, y))
	}

	// 检查鼠标（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, image.Pt(x, y))
	}
	return dst
}

// IsLongPressed 检查是否有触点恰好按住了 ticks 帧
// 每次长按只在到达阈值的那一帧返回 true
func IsLongPressed(ticks int) bool {
	for _, id := range ebiten.AppendTouchIDs(nil) {
		if inpututil.TouchPressDuration(id) == ticks {
			return true
		}
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) &&
		inpututil.MouseButtonPressDuration(ebiten.MouseButtonRight) == ticks
}

// IsTouchDevice 检测当前是否为触摸设备
// 通过检查是否有活动的触摸来判断
func IsTouchDevice() bool {
	touchIDs := ebiten.AppendTouchIDs(nil)
	return len(touchIDs) > 0
}
