// Package main 是烟花表演查看器的桌面端入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose          Enable verbose logging
//	--config <path>    Show config file (default: embedded data/show.yaml)
//	--preset <name>    Start with a named preset (e.g., --preset=willow)
//
// Controls:
//
//	Mouse Click   - Launch a firework that bursts at the cursor height
//	Space         - Launch a random firework
//	F             - Finale
//	1-9 / 0       - Select preset / random
//	G / T / B     - Toggle glow / trails / motion blur
//	A             - Toggle auto launch
//	R             - Clear the sky
//	F11           - Toggle fullscreen
//	Q/Escape      - Quit
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Show config file (default: embedded data/show.yaml)")
	presetFlag  = flag.String("preset", "", "Start with a named preset")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Preset:     *presetFlag,
	})
	if err != nil {
		// 日志可能已被静音，直接写到 stderr
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	window := gameApp.ShowConfig().Window
	width, height := config.ClampWindowSize(window.Width, window.Height)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowSizeLimits(config.MinWindowWidth, config.MinWindowHeight, -1, -1)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Settings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	// 直接关闭窗口时 Update 没有机会保存
	gameApp.Shutdown()
}
