// cmd/validate_show/main.go
// 检查表演配置文件
//
// 用法：
//
//	go run ./cmd/validate_show [file ...]   # 默认检查 data/show.yaml
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
)

func main() {
	log.SetOutput(io.Discard)

	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{config.DefaultShowConfigPath}
	}

	failed := 0
	for _, path := range paths {
		if !validate(path) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func validate(path string) bool {
	cfg, err := config.LoadShowConfig(path)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		return false
	}

	fmt.Printf("✅ %s\n", path)
	fmt.Printf("   窗口: %dx%d %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	fmt.Printf("   自动发射: enabled=%v interval=%s burst=%s\n",
		cfg.AutoLaunch.Enabled, cfg.AutoLaunch.Interval, cfg.AutoLaunch.Burst)
	fmt.Printf("   齐射: count=%s spread=%s\n", cfg.Finale.Count, cfg.Finale.Spread)
	fmt.Printf("   调色板: %d 种颜色\n", len(cfg.Palette))

	ok := true
	for i := range cfg.Presets {
		p := &cfg.Presets[i]
		override, err := p.Override()
		if err != nil {
			fmt.Printf("   ❌ 预设 %q: %v\n", p.Name, err)
			ok = false
			continue
		}

		fc := fireworks.DefaultFireworkConfig()
		override(&fc)
		fmt.Printf("   ✅ 预设 %-14s particles=%-4d speed=[%g %g] %s secondary=%v trail=%d\n",
			p.Name, fc.ExplosionParticleCount, fc.ExplosionVelocityMin, fc.ExplosionVelocityMax,
			fc.VelocityDistribution, fc.SecondaryEnabled, fc.TrailLength)
	}
	return ok
}
