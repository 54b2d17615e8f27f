package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/render/ebitensurface"
	"github.com/decker502/fireworks/pkg/show"
	"github.com/decker502/fireworks/pkg/utils"
)

const (
	// statusDuration 状态提示显示的秒数
	statusDuration = 2.0

	// longPressTicks 长按多少帧触发齐射
	longPressTicks = 45
)

const (
	controlsHint      = "click/space launch  F finale  1-9 preset  0 random  G/T/B/A toggle  R clear  Q quit"
	touchControlsHint = "tap to launch  long press for finale"
)

// presetKeys 数字键 1-9 依次对应配置中的预设
var presetKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// ShowScene 烟花表演场景
//
// 职责：
//   - 把输入翻译成发射、齐射和渲染开关
//   - 开关同时写入用户设置，退出时保存
//   - 把渲染结果和 HUD 绘制到屏幕
type ShowScene struct {
	settings *game.SettingsManager
	director *show.Director
	surface  *ebitensurface.Surface
	renderer *render.FireworkRenderer

	width, height int
	pointers      []image.Point
	touchSeen     bool // 出现过触摸后 HUD 改用触摸提示

	status    string
	statusTTL float64
	quit      bool
}

// NewShowScene 创建表演场景
//
// 参数：
//   - cfg: 表演配置（调色板、预设、自动发射节奏）
//   - settings: 用户设置，渲染开关、自动发射和预设以此为准
//   - rng: 随机源，nil 时使用全局随机源
//
// 返回：
//   - *ShowScene: 场景实例
//   - error: 调色板或预设无法解析时返回错误
func NewShowScene(cfg *config.ShowConfig, settings *game.SettingsManager, rng fireworks.Rand) (*ShowScene, error) {
	s := settings.GetSettings()
	width, height := config.ClampWindowSize(cfg.Window.Width, cfg.Window.Height)

	director, err := show.NewDirector(cfg, width, height, s.AutoLaunch, rng)
	if err != nil {
		return nil, err
	}

	surface := ebitensurface.New(width, height)
	renderer, err := render.NewFireworkRenderer(surface, s.RendererOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if !director.SelectPresetByName(s.Preset) {
		log.Printf("[ShowScene] Saved preset %q no longer exists, using random", s.Preset)
		settings.SetPreset("")
	}

	log.Printf("[ShowScene] Created %dx%d, preset=%q", width, height, director.PresetName())
	return &ShowScene{
		settings: settings,
		director: director,
		surface:  surface,
		renderer: renderer,
		width:    width,
		height:   height,
	}, nil
}

// Update 更新场景逻辑
func (s *ShowScene) Update(deltaTime float64) {
	s.handleInput()
	s.director.Update(deltaTime)

	if s.statusTTL > 0 {
		s.statusTTL -= deltaTime
	}
}

// handleInput 把按键和指针映射到场景操作
func (s *ShowScene) handleInput() {
	if !s.touchSeen && IsTouchDevice() {
		s.touchSeen = true
	}
	s.pointers = AppendJustPressedPointers(s.pointers[:0])
	for _, p := range s.pointers {
		s.LaunchAt(float64(p.X), float64(p.Y))
	}
	// 触摸屏没有键盘，长按触发齐射
	if IsLongPressed(longPressTicks) {
		s.StartFinale()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.Launch()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		s.StartFinale()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		s.ToggleGlow()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		s.ToggleTrails()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.ToggleMotionBlur()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		s.ToggleAutoLaunch()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ClearShow()
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		s.SelectPreset(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.quit = true
	}

	for i, key := range presetKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.SelectPreset(i)
		}
	}
}

// Launch 从随机位置发射一枚烟花
func (s *ShowScene) Launch() {
	if err := s.director.Launch(); err != nil {
		s.setStatus("launch failed")
	}
}

// LaunchAt 从 x 处的地面发射，在 y 高度附近爆炸
func (s *ShowScene) LaunchAt(x, y float64) {
	if err := s.director.LaunchAt(x, y); err != nil {
		s.setStatus("launch failed")
	}
}

// StartFinale 安排一次压轴齐射
func (s *ShowScene) StartFinale() {
	count, _ := s.director.StartFinale()
	s.setStatus(fmt.Sprintf("finale x%d", count))
}

// ToggleGlow 切换光晕
func (s *ShowScene) ToggleGlow() {
	v := s.settings.ToggleGlow()
	s.renderer.SetConfig(render.RendererPatch{GlowEnabled: &v})
	s.setStatus("glow " + onOff(v))
}

// ToggleTrails 切换拖尾
func (s *ShowScene) ToggleTrails() {
	v := s.settings.ToggleTrail()
	s.renderer.SetConfig(render.RendererPatch{TrailEnabled: &v})
	s.setStatus("trails " + onOff(v))
}

// ToggleMotionBlur 切换运动模糊
func (s *ShowScene) ToggleMotionBlur() {
	v := s.settings.ToggleMotionBlur()
	s.renderer.SetConfig(render.RendererPatch{MotionBlurEnabled: &v})
	s.setStatus("motion blur " + onOff(v))
}

// ToggleAutoLaunch 切换自动发射
func (s *ShowScene) ToggleAutoLaunch() {
	v := s.settings.ToggleAutoLaunch()
	s.director.SetAutoLaunch(v)
	s.setStatus("auto launch " + onOff(v))
}

// ClearShow 清空天空和待发射的齐射
func (s *ShowScene) ClearShow() {
	s.director.Clear()
	s.surface.ClearAll()
	s.setStatus("cleared")
}

// SelectPreset 选择预设，越界的下标表示随机配置
func (s *ShowScene) SelectPreset(index int) {
	name := s.director.SelectPreset(index)
	s.settings.SetPreset(name)
	if name == "" {
		name = "random"
	}
	s.setStatus("preset: " + name)
}

// PresetName 返回当前预设名，随机配置时返回空字符串
func (s *ShowScene) PresetName() string { return s.director.PresetName() }

// Director 返回表演编排器
func (s *ShowScene) Director() *show.Director { return s.director }

// Renderer 返回渲染器
func (s *ShowScene) Renderer() *render.FireworkRenderer { return s.renderer }

// Status 返回当前状态提示，过期后为空
func (s *ShowScene) Status() string {
	if s.statusTTL <= 0 {
		return ""
	}
	return s.status
}

// QuitRequested 用户是否要求退出
func (s *ShowScene) QuitRequested() bool { return s.quit }

func (s *ShowScene) setStatus(text string) {
	s.status = text
	s.statusTTL = statusDuration
	log.Printf("[ShowScene] %s", text)
}

// Resize 实现 game.Resizable
// 新尺寸只影响之后发射的烟花
func (s *ShowScene) Resize(width, height int) {
	width, height = config.ClampWindowSize(width, height)
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.director.Resize(width, height)
	s.renderer.Resize(width, height)
}

// SaveOnExit 实现 game.Saveable
func (s *ShowScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[ShowScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// Draw 绘制场景
func (s *ShowScene) Draw(screen *ebiten.Image) {
	s.renderer.Render(s.director.System())

	screen.Fill(color.Black)
	screen.DrawImage(s.surface.Image(), nil)

	s.drawHUD(screen)
}

// ControlsHint 返回 HUD 上的操作提示
// 移动端或出现过触摸时显示触摸操作
func (s *ShowScene) ControlsHint() string {
	if s.touchSeen || utils.IsMobile() {
		return touchControlsHint
	}
	return controlsHint
}

// drawHUD 绘制左上角的状态信息
func (s *ShowScene) drawHUD(screen *ebiten.Image) {
	preset := s.PresetName()
	if preset == "" {
		preset = "random"
	}
	cfg := s.renderer.Config()
	system := s.director.System()

	lines := []string{
		fmt.Sprintf("FPS %.0f  fireworks %d  particles %d", ebiten.ActualFPS(), system.Len(), system.ParticleCount()),
		fmt.Sprintf("preset %s  glow %s  trails %s  blur %s  auto %s",
			preset, onOff(cfg.GlowEnabled), onOff(cfg.TrailEnabled), onOff(cfg.MotionBlurEnabled), onOff(s.director.AutoLaunch())),
		s.ControlsHint(),
	}
	if status := s.Status(); status != "" {
		lines = append(lines, status)
	}

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMarginX, config.HUDMarginY+i*config.HUDLineHeight)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
