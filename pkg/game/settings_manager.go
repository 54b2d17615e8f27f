package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/render"
)

// ShowSettings 用户设置
// 记录查看器中切换过的开关，下次启动时恢复
type ShowSettings struct {
	// 渲染设置
	GlowEnabled       bool    `yaml:"glowEnabled"`       // 光晕
	TrailEnabled      bool    `yaml:"trailEnabled"`      // 拖尾
	MotionBlurEnabled bool    `yaml:"motionBlurEnabled"` // 运动模糊
	FadeAlpha         float64 `yaml:"fadeAlpha"`         // 运动模糊渐隐比例 0.0 ~ 1.0

	// 表演设置
	AutoLaunch bool   `yaml:"autoLaunch"` // 自动发射
	Preset     string `yaml:"preset"`     // 当前预设，空字符串表示随机

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ShowSettings {
	r := render.DefaultRendererConfig()
	return &ShowSettings{
		GlowEnabled:       r.GlowEnabled,
		TrailEnabled:      r.TrailEnabled,
		MotionBlurEnabled: r.MotionBlurEnabled,
		FadeAlpha:         r.FadeAlpha,
		AutoLaunch:        true,
		Preset:            "",
		Fullscreen:        false,
	}
}

// SettingsFromConfig 以表演配置中的初始值作为默认设置
func SettingsFromConfig(cfg *config.ShowConfig) *ShowSettings {
	return &ShowSettings{
		GlowEnabled:       cfg.Renderer.Glow,
		TrailEnabled:      cfg.Renderer.Trail,
		MotionBlurEnabled: cfg.Renderer.MotionBlur,
		FadeAlpha:         cfg.Renderer.FadeAlpha,
		AutoLaunch:        cfg.AutoLaunch.Enabled,
	}
}

// RendererOptions 把设置转换为渲染器构造参数
func (s *ShowSettings) RendererOptions() []render.RendererOption {
	return []render.RendererOption{
		render.WithGlow(s.GlowEnabled),
		render.WithTrails(s.TrailEnabled),
		render.WithMotionBlur(s.MotionBlurEnabled, s.FadeAlpha),
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     ShowSettings   // 没有存档时使用的设置
	settings     *ShowSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "show"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 没有存档时使用的设置，nil 时使用 DefaultSettings()
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方统一处理，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager, defaults *ShowSettings) (*SettingsManager, error) {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
	}
	sm.resetToDefaults()

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

func (sm *SettingsManager) resetToDefaults() {
	s := sm.defaults
	sm.settings = &s
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.resetToDefaults()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.resetToDefaults()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.resetToDefaults()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本存档缺少的字段保持默认
	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.resetToDefaults()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.FadeAlpha = clampUnit(loaded.FadeAlpha)

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ShowSettings {
	return sm.settings
}

// ToggleGlow 切换光晕，返回新值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) ToggleGlow() bool {
	sm.settings.GlowEnabled = !sm.settings.GlowEnabled
	return sm.settings.GlowEnabled
}

// ToggleTrail 切换拖尾，返回新值
func (sm *SettingsManager) ToggleTrail() bool {
	sm.settings.TrailEnabled = !sm.settings.TrailEnabled
	return sm.settings.TrailEnabled
}

// ToggleMotionBlur 切换运动模糊，返回新值
func (sm *SettingsManager) ToggleMotionBlur() bool {
	sm.settings.MotionBlurEnabled = !sm.settings.MotionBlurEnabled
	return sm.settings.MotionBlurEnabled
}

// ToggleAutoLaunch 切换自动发射，返回新值
func (sm *SettingsManager) ToggleAutoLaunch() bool {
	sm.settings.AutoLaunch = !sm.settings.AutoLaunch
	return sm.settings.AutoLaunch
}

// SetFadeAlpha 设置运动模糊渐隐比例
//
// 值会被限制在 0.0 ~ 1.0 范围内
func (sm *SettingsManager) SetFadeAlpha(alpha float64) {
	sm.settings.FadeAlpha = clampUnit(alpha)
}

// SetPreset 设置当前预设，空字符串表示随机
func (sm *SettingsManager) SetPreset(name string) {
	sm.settings.Preset = name
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampUnit 将值限制在 0.0 ~ 1.0 范围内
func clampUnit(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
