package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/fireworks/internal/valuerange"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/fireworks"
)

// TestLoadShowConfig_Repository 加载仓库中的默认配置
func TestLoadShowConfig_Repository(t *testing.T) {
	path := filepath.Join("..", "..", "data", "show.yaml")
	config, err := LoadShowConfig(path)
	if err != nil {
		t.Fatalf("LoadShowConfig(%q) error: %v", path, err)
	}

	if config.Window.Width != 800 || config.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", config.Window.Width, config.Window.Height)
	}
	if config.AutoLaunch.Interval != (valuerange.Range{Min: 0.6, Max: 1.8}) {
		t.Errorf("interval = %v", config.AutoLaunch.Interval)
	}

	colors, err := config.PaletteColors()
	if err != nil || len(colors) != len(config.Palette) {
		t.Errorf("PaletteColors() = %d colors, err %v", len(colors), err)
	}

	if len(config.Presets) == 0 || len(config.Presets) > 9 {
		t.Errorf("presets = %d, want 1-9 (one per number key)", len(config.Presets))
	}
}

// TestLoadDefaultShowConfig 通过 embedded 包读取
func TestLoadDefaultShowConfig(t *testing.T) {
	embedded.Init(os.DirFS(filepath.Join("..", "..")))
	defer embedded.Init(nil)

	config, err := LoadDefaultShowConfig()
	if err != nil {
		t.Fatalf("LoadDefaultShowConfig() error: %v", err)
	}
	if _, err := config.Preset("willow"); err != nil {
		t.Errorf("Preset(willow) error: %v", err)
	}
}

// TestLoadShowConfigOrDefault 空路径走内嵌配置，未初始化时报错
func TestLoadShowConfigOrDefault(t *testing.T) {
	embedded.Init(nil)
	if _, err := LoadShowConfigOrDefault(""); !errors.Is(err, embedded.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}

	config, err := LoadShowConfigOrDefault(filepath.Join("..", "..", "data", "show.yaml"))
	if err != nil {
		t.Fatalf("LoadShowConfigOrDefault(path) error: %v", err)
	}
	if len(config.Presets) == 0 {
		t.Error("expected presets from data/show.yaml")
	}
}

func TestLoadShowConfig_Missing(t *testing.T) {
	if _, err := LoadShowConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// TestParseShowConfig_Defaults 缺省字段使用默认值
func TestParseShowConfig_Defaults(t *testing.T) {
	config, err := ParseShowConfig([]byte("window:\n  title: Night\n"))
	if err != nil {
		t.Fatalf("ParseShowConfig() error: %v", err)
	}
	if config.Window.Title != "Night" {
		t.Errorf("title = %q", config.Window.Title)
	}
	if config.Window.Width != DefaultWindowWidth || !config.Renderer.Glow || config.Renderer.FadeAlpha != 0.15 {
		t.Errorf("defaults lost: %+v", config)
	}
}

// TestShowConfig_Validate 测试配置验证
func TestShowConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"zero width", "window:\n  width: 0\n", true},
		{"fade above one", "renderer:\n  fadeAlpha: 1.5\n", true},
		{"zero interval", "autoLaunch:\n  interval: 0\n", true},
		{"nan interval", "autoLaunch:\n  interval: nan\n", true},
		{"nan interval bound", "autoLaunch:\n  interval: \"[NaN 1]\"\n", true},
		{"empty burst", "autoLaunch:\n  burst: \"[0 2]\"\n", true},
		{"bad range", "autoLaunch:\n  interval: \"[1 2\"\n", true},
		{"bad palette color", "palette: [\"#ff00zz\"]\n", true},
		{"unnamed preset", "presets:\n  - particleCount: 10\n", true},
		{"duplicate preset", "presets:\n  - name: a\n  - name: a\n", true},
		{"invalid preset physics", "presets:\n  - name: a\n    drag: -1\n", true},
		{"invalid preset range", "presets:\n  - name: a\n    velocityMin: 300\n", true},
		{"bad preset color", "presets:\n  - name: a\n    primaryColor: red\n", true},
		{"valid preset", "presets:\n  - name: a\n    crackle: true\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShowConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseShowConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPresetConfig_Override 只覆盖填写的字段
func TestPresetConfig_Override(t *testing.T) {
	config, err := ParseShowConfig([]byte(`
presets:
  - name: gold
    particleCount: 42
    crackle: true
    distribution: uniform
    primaryColor: "#ffcc00"
`))
	if err != nil {
		t.Fatalf("ParseShowConfig() error: %v", err)
	}

	preset, err := config.Preset("gold")
	if err != nil {
		t.Fatalf("Preset() error: %v", err)
	}
	override, err := preset.Override()
	if err != nil {
		t.Fatalf("Override() error: %v", err)
	}

	cfg := fireworks.DefaultFireworkConfig()
	before := cfg
	override(&cfg)

	if cfg.ExplosionParticleCount != 42 || !cfg.Crackle || cfg.VelocityDistribution != fireworks.DistributionUniform {
		t.Errorf("override not applied: %+v", cfg)
	}
	if c := cfg.PrimaryColor; math.Abs(c.R-255) > 1e-6 || math.Abs(c.G-204) > 1e-6 || c.B > 1e-6 {
		t.Errorf("primary color = %v", cfg.PrimaryColor)
	}
	if cfg.SecondaryColor != before.SecondaryColor || cfg.Gravity != before.Gravity || cfg.TrailLength != before.TrailLength {
		t.Error("unset fields must keep their previous values")
	}
}

func TestShowConfig_UnknownPreset(t *testing.T) {
	config := DefaultShowConfig()
	if _, err := config.Preset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("error = %v, want ErrUnknownPreset", err)
	}
}
