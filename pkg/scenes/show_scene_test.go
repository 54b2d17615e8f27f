package scenes

import (
	"testing"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
)

// constRand 总是返回同一个值
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func intPtr(v int) *int { return &v }

// newTestShowScene 创建一个不落盘的测试场景
func newTestShowScene(t *testing.T, settings *game.ShowSettings) (*ShowScene, *game.SettingsManager) {
	t.Helper()

	cfg := config.DefaultShowConfig()
	cfg.Palette = []string{"#ff0000", "#00ff00"}
	cfg.Presets = []config.PresetConfig{
		{Name: "tiny", ParticleCount: intPtr(7)},
		{Name: "ring", ParticleCount: intPtr(24), TrailLength: intPtr(0)},
	}

	sm, err := game.NewSettingsManager(nil, settings)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	scene, err := NewShowScene(cfg, sm, constRand(0.5))
	if err != nil {
		t.Fatalf("NewShowScene failed: %v", err)
	}
	return scene, sm
}

// TestShowScene_InvalidPalette 调色板无法解析时创建失败
func TestShowScene_InvalidPalette(t *testing.T) {
	cfg := config.DefaultShowConfig()
	cfg.Palette = []string{"not-a-color"}
	sm, _ := game.NewSettingsManager(nil, nil)

	if _, err := NewShowScene(cfg, sm, nil); err == nil {
		t.Error("expected an error for an invalid palette")
	}
}

// TestShowScene_SelectPreset 预设选择写入用户设置
func TestShowScene_SelectPreset(t *testing.T) {
	scene, sm := newTestShowScene(t, nil)

	scene.SelectPreset(1)
	if scene.PresetName() != "ring" || sm.GetSettings().Preset != "ring" {
		t.Errorf("got scene %q settings %q, want ring", scene.PresetName(), sm.GetSettings().Preset)
	}
	if scene.Status() != "preset: ring" {
		t.Errorf("Status: got %q", scene.Status())
	}

	scene.SelectPreset(-1)
	if scene.PresetName() != "" || sm.GetSettings().Preset != "" {
		t.Errorf("random preset: got scene %q settings %q", scene.PresetName(), sm.GetSettings().Preset)
	}
}

// TestShowScene_RestoresSavedPreset 启动时恢复上次的预设
func TestShowScene_RestoresSavedPreset(t *testing.T) {
	tests := []struct {
		name  string
		saved string
		want  string
	}{
		{"existing preset", "ring", "ring"},
		{"removed preset", "willow", ""},
		{"random", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := game.DefaultSettings()
			defaults.Preset = tt.saved
			scene, sm := newTestShowScene(t, defaults)

			if scene.PresetName() != tt.want {
				t.Errorf("PresetName: got %q, want %q", scene.PresetName(), tt.want)
			}
			if sm.GetSettings().Preset != tt.want {
				t.Errorf("settings preset: got %q, want %q", sm.GetSettings().Preset, tt.want)
			}
		})
	}
}

// TestShowScene_Toggles 开关同时作用于渲染器和用户设置
func TestShowScene_Toggles(t *testing.T) {
	scene, sm := newTestShowScene(t, nil)
	before := scene.Renderer().Config()

	scene.ToggleGlow()
	scene.ToggleTrails()
	scene.ToggleMotionBlur()

	after := scene.Renderer().Config()
	if after.GlowEnabled == before.GlowEnabled ||
		after.TrailEnabled == before.TrailEnabled ||
		after.MotionBlurEnabled == before.MotionBlurEnabled {
		t.Errorf("renderer config not toggled: before %+v after %+v", before, after)
	}

	s := sm.GetSettings()
	if s.GlowEnabled != after.GlowEnabled || s.TrailEnabled != after.TrailEnabled || s.MotionBlurEnabled != after.MotionBlurEnabled {
		t.Errorf("settings out of sync with renderer: %+v vs %+v", s, after)
	}
}

// TestShowScene_ToggleAutoLaunch 自动发射开关同步到编排器和用户设置
func TestShowScene_ToggleAutoLaunch(t *testing.T) {
	scene, sm := newTestShowScene(t, nil)

	if !scene.Director().AutoLaunch() {
		t.Fatal("auto launch should follow the default settings")
	}
	scene.ToggleAutoLaunch()
	if scene.Director().AutoLaunch() || sm.GetSettings().AutoLaunch {
		t.Error("auto launch should be off in both director and settings")
	}

	scene.ClearShow()
	for i := 0; i < 300; i++ {
		scene.Update(1.0 / 60.0)
	}
	if n := scene.Director().System().Len(); n != 0 {
		t.Errorf("auto launch disabled, got %d fireworks", n)
	}
}

// TestShowScene_LaunchAndFinale 手动发射和齐射经由编排器
func TestShowScene_LaunchAndFinale(t *testing.T) {
	defaults := game.DefaultSettings()
	defaults.AutoLaunch = false
	scene, _ := newTestShowScene(t, defaults)

	scene.LaunchAt(100, 150)
	scene.Launch()
	if n := scene.Director().Launched(); n != 2 {
		t.Errorf("Launched: got %d, want 2", n)
	}

	scene.StartFinale()
	if scene.Status() != "finale x15" {
		t.Errorf("Status: got %q, want %q", scene.Status(), "finale x15")
	}
	scene.ClearShow()
	if scene.Director().PendingFinale() != 0 || scene.Director().System().Len() != 0 {
		t.Error("ClearShow should cancel the finale and drop all fireworks")
	}
}

// TestShowScene_StatusExpires 状态提示在显示时长后消失
func TestShowScene_StatusExpires(t *testing.T) {
	scene, _ := newTestShowScene(t, nil)
	scene.ToggleGlow()

	for i := 0; i < int(statusDuration*60)+1; i++ {
		scene.Update(1.0 / 60.0)
	}
	if scene.Status() != "" {
		t.Errorf("status should expire, got %q", scene.Status())
	}
}

// TestShowScene_Resize 尺寸变化传递到编排器和渲染表面
func TestShowScene_Resize(t *testing.T) {
	scene, _ := newTestShowScene(t, nil)

	scene.Resize(1024, 768)
	if w, h := scene.Director().System().Size(); w != 1024 || h != 768 {
		t.Errorf("system size: got %vx%v, want 1024x768", w, h)
	}
	if w, h := scene.Renderer().Surface().Size(); w != 1024 || h != 768 {
		t.Errorf("surface size: got %dx%d, want 1024x768", w, h)
	}

	scene.Resize(10, 10)
	if w, h := scene.Director().System().Size(); w != config.MinWindowWidth || h != config.MinWindowHeight {
		t.Errorf("tiny window should clamp, got %vx%v", w, h)
	}
}

// TestShowScene_SaveOnExit 降级模式下保存总是成功
func TestShowScene_SaveOnExit(t *testing.T) {
	scene, _ := newTestShowScene(t, nil)
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit should succeed without persistent storage")
	}
	if scene.QuitRequested() {
		t.Error("QuitRequested should start false")
	}
}

// TestShowScene_ControlsHint 移动端或出现过触摸后显示触摸提示
func TestShowScene_ControlsHint(t *testing.T) {
	t.Setenv("FIREWORKS_MOBILE_EMULATE", "")
	scene, _ := newTestShowScene(t, nil)

	scene.Update(1.0 / 60.0)
	if got := scene.ControlsHint(); got != controlsHint {
		t.Errorf("desktop hint: got %q, want %q", got, controlsHint)
	}

	t.Setenv("FIREWORKS_MOBILE_EMULATE", "1")
	if got := scene.ControlsHint(); got != touchControlsHint {
		t.Errorf("mobile hint: got %q, want %q", got, touchControlsHint)
	}

	t.Setenv("FIREWORKS_MOBILE_EMULATE", "")
	scene.touchSeen = true
	if got := scene.ControlsHint(); got != touchControlsHint {
		t.Errorf("after touch: got %q, want %q", got, touchControlsHint)
	}
}
