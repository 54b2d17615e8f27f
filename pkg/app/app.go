// Package app 提供烟花表演应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 表演配置文件路径，为空则使用内嵌的 data/show.yaml
	ConfigPath string
	// Preset 启动时选择的预设名，为空则沿用上次保存的选择
	Preset string
}

// App 是烟花表演应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	show         *scenes.ShowScene
	showConfig   *config.ShowConfig
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 使用内嵌配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	showConfig, err := config.LoadShowConfigOrDefault(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("表演配置加载失败: %w", err)
	}

	// 用户设置以配置文件中的渲染开关为默认值
	settings, err := game.NewSettingsManager(game.OpenStorage(game.AppName), game.SettingsFromConfig(showConfig))
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	if cfg.Preset != "" {
		if _, err := showConfig.Preset(cfg.Preset); err != nil {
			return nil, err
		}
		settings.SetPreset(cfg.Preset)
	}

	show, err := scenes.NewShowScene(showConfig, settings, nil)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(show)
	log.Printf("[App] Show started, preset=%q", show.PresetName())

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		show:         show,
		showConfig:   showConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		log.Printf("[App] Fullscreen: %v", fullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	if a.show.QuitRequested() {
		a.Shutdown()
		return ebiten.Termination
	}
	return nil
}

// Shutdown 保存当前场景的状态
// 窗口关闭或用户退出时调用
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: failed to save on exit")
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 画布跟随窗口大小，烟花系统只在之后的发射中使用新尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := config.ClampWindowSize(outsideWidth, outsideHeight)
	a.sceneManager.Resize(w, h)
	return w, h
}

// ShowConfig 返回加载的表演配置
func (a *App) ShowConfig() *config.ShowConfig {
	return a.showConfig
}

// Settings 返回用户设置
func (a *App) Settings() *game.ShowSettings {
	return a.settings.GetSettings()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
