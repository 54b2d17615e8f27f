package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/internal/valuerange"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/fireworks"
)

// DefaultShowConfigPath 内嵌默认配置的路径
const DefaultShowConfigPath = "data/show.yaml"

// ErrUnknownPreset 预设名不存在
var ErrUnknownPreset = errors.New("unknown preset")

// ShowConfig 烟花表演配置
//
// 配置文件位置: data/show.yaml
// 缺省字段保留 DefaultShowConfig 中的值。
type ShowConfig struct {
	// Window 窗口配置
	Window WindowConfig `yaml:"window"`

	// Renderer 渲染开关初始值（用户设置会覆盖）
	Renderer RendererSection `yaml:"renderer"`

	// AutoLaunch 自动发射
	AutoLaunch AutoLaunchConfig `yaml:"autoLaunch"`

	// Finale 压轴齐射
	Finale FinaleConfig `yaml:"finale"`

	// Palette 随机配色的候选颜色（"#rrggbb"），为空时使用随机色相
	Palette []string `yaml:"palette"`

	// Presets 命名的烟花预设，按顺序对应数字键 1-9
	Presets []PresetConfig `yaml:"presets"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RendererSection 渲染配置
type RendererSection struct {
	Glow       bool    `yaml:"glow"`
	Trail      bool    `yaml:"trail"`
	MotionBlur bool    `yaml:"motionBlur"`
	FadeAlpha  float64 `yaml:"fadeAlpha"`
}

// AutoLaunchConfig 自动发射配置
type AutoLaunchConfig struct {
	// Enabled 启动时是否自动发射
	Enabled bool `yaml:"enabled"`

	// Interval 两次发射之间的间隔（秒），如 "[0.6 1.8]"
	Interval valuerange.Range `yaml:"interval"`

	// Burst 每次发射的烟花数量，如 "[1 3]"
	Burst valuerange.Range `yaml:"burst"`
}

// FinaleConfig 压轴齐射配置
type FinaleConfig struct {
	// Count 齐射的烟花数量
	Count valuerange.Range `yaml:"count"`

	// Spread 齐射持续时间（秒），烟花在此期间依次升空
	Spread valuerange.Range `yaml:"spread"`
}

// PresetConfig 烟花预设
//
// 只覆盖填写了的字段，其余字段沿用系统的随机默认值。
type PresetConfig struct {
	Name string `yaml:"name"`

	ParticleCount  *int     `yaml:"particleCount"`
	VelocityMin    *float64 `yaml:"velocityMin"`
	VelocityMax    *float64 `yaml:"velocityMax"`
	Distribution   *string  `yaml:"distribution"`
	Secondary      *bool    `yaml:"secondary"`
	SecondaryDelay *float64 `yaml:"secondaryDelay"`
	SecondaryCount *int     `yaml:"secondaryCount"`
	Crackle        *bool    `yaml:"crackle"`
	Gravity        *float64 `yaml:"gravity"`
	Drag           *float64 `yaml:"drag"`
	TrailLength    *int     `yaml:"trailLength"`
	FlickerRate    *float64 `yaml:"flickerRate"`

	// PrimaryColor / SecondaryColor 为 "#rrggbb"，留空则使用随机配色
	PrimaryColor   string `yaml:"primaryColor"`
	SecondaryColor string `yaml:"secondaryColor"`
}

// DefaultShowConfig 返回默认表演配置
func DefaultShowConfig() *ShowConfig {
	return &ShowConfig{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
		},
		Renderer: RendererSection{
			Glow:       true,
			Trail:      true,
			MotionBlur: true,
			FadeAlpha:  0.15,
		},
		AutoLaunch: AutoLaunchConfig{
			Enabled:  true,
			Interval: valuerange.Range{Min: 0.6, Max: 1.8},
			Burst:    valuerange.Range{Min: 1, Max: 2},
		},
		Finale: FinaleConfig{
			Count:  valuerange.Range{Min: 12, Max: 18},
			Spread: valuerange.Range{Min: 1.5, Max: 2.5},
		},
	}
}

// LoadShowConfig 从磁盘加载表演配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *ShowConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadShowConfig(path string) (*ShowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read show config: %w", err)
	}
	return ParseShowConfig(data)
}

// LoadDefaultShowConfig 加载内嵌的默认表演配置
func LoadDefaultShowConfig() (*ShowConfig, error) {
	data, err := embedded.ReadFile(DefaultShowConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded show config: %w", err)
	}
	return ParseShowConfig(data)
}

// LoadShowConfigOrDefault 路径为空时加载内嵌配置，否则从磁盘加载
func LoadShowConfigOrDefault(path string) (*ShowConfig, error) {
	if path == "" {
		return LoadDefaultShowConfig()
	}
	return LoadShowConfig(path)
}

// ParseShowConfig 解析并验证 YAML 配置
func ParseShowConfig(data []byte) (*ShowConfig, error) {
	config := DefaultShowConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse show config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid show config: %w", err)
	}

	log.Printf("[ShowConfig] Loaded: %dx%d, %d palette colors, %d presets",
		config.Window.Width, config.Window.Height, len(config.Palette), len(config.Presets))
	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸为正
//   - fadeAlpha 在 [0, 1]
//   - 自动发射间隔为正，每次至少一发
//   - 调色板颜色可解析
//   - 预设名唯一且覆盖后的烟花配置合法
func (c *ShowConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Renderer.FadeAlpha < 0 || c.Renderer.FadeAlpha > 1 {
		return fmt.Errorf("renderer fadeAlpha must be in [0, 1], got %.2f", c.Renderer.FadeAlpha)
	}

	if !(c.AutoLaunch.Interval.Min > 0) {
		return fmt.Errorf("autoLaunch interval must be > 0, got %v", c.AutoLaunch.Interval)
	}
	if c.AutoLaunch.Burst.Min < 1 {
		return fmt.Errorf("autoLaunch burst must be >= 1, got %v", c.AutoLaunch.Burst)
	}
	if c.Finale.Count.Min < 0 || c.Finale.Spread.Min < 0 {
		return fmt.Errorf("finale count(%v) and spread(%v) must be >= 0", c.Finale.Count, c.Finale.Spread)
	}

	if _, err := c.PaletteColors(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Presets))
	for i := range c.Presets {
		p := &c.Presets[i]
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true

		override, err := p.Override()
		if err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
		cfg := fireworks.DefaultFireworkConfig()
		override(&cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}

	return nil
}

// PaletteColors 解析调色板
func (c *ShowConfig) PaletteColors() ([]fireworks.ParticleColor, error) {
	colors := make([]fireworks.ParticleColor, 0, len(c.Palette))
	for _, hex := range c.Palette {
		col, err := fireworks.ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// Preset 按名称查找预设
func (c *ShowConfig) Preset(name string) (*PresetConfig, error) {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetNames 按顺序返回所有预设名
func (c *ShowConfig) PresetNames() []string {
	names := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		names[i] = p.Name
	}
	return names
}

// Override 把预设转换为烟花配置覆盖项
func (p *PresetConfig) Override() (fireworks.Override, error) {
	var primary, secondary *fireworks.ParticleColor
	if p.PrimaryColor != "" {
		c, err := fireworks.ParseHexColor(p.PrimaryColor)
		if err != nil {
			return nil, err
		}
		primary = &c
	}
	if p.SecondaryColor != "" {
		c, err := fireworks.ParseHexColor(p.SecondaryColor)
		if err != nil {
			return nil, err
		}
		secondary = &c
	}

	preset := *p
	return func(c *fireworks.FireworkConfig) {
		setIfPresent(&c.ExplosionParticleCount, preset.ParticleCount)
		setIfPresent(&c.ExplosionVelocityMin, preset.VelocityMin)
		setIfPresent(&c.ExplosionVelocityMax, preset.VelocityMax)
		if preset.Distribution != nil {
			c.VelocityDistribution = fireworks.Distribution(*preset.Distribution)
		}
		setIfPresent(&c.SecondaryEnabled, preset.Secondary)
		setIfPresent(&c.SecondaryDelay, preset.SecondaryDelay)
		setIfPresent(&c.SecondaryParticleCount, preset.SecondaryCount)
		setIfPresent(&c.Crackle, preset.Crackle)
		setIfPresent(&c.Gravity, preset.Gravity)
		setIfPresent(&c.Drag, preset.Drag)
		setIfPresent(&c.TrailLength, preset.TrailLength)
		setIfPresent(&c.FlickerRate, preset.FlickerRate)
		setIfPresent(&c.PrimaryColor, primary)
		setIfPresent(&c.SecondaryColor, secondary)
	}, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
