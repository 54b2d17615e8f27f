// Package show 编排一场烟花表演：自动发射节奏、压轴齐射和预设选择
//
// 本包不依赖 ebiten，查看器场景和无窗口的命令行工具共用同一套编排逻辑。
package show

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
)

// maxTargetRatio 指定发射时爆炸高度最低只能到画布高度的这个比例，
// 太靠近地面的目标会让烟花一出膛就爆炸
const maxTargetRatio = 0.85

// presetEntry 已解析的预设
type presetEntry struct {
	name     string
	override fireworks.Override
}

// Director 驱动一个 FireworkSystem 完成整场表演
type Director struct {
	cfg       *config.ShowConfig
	system    *fireworks.FireworkSystem
	scheduler *LaunchScheduler
	rng       fireworks.Rand

	presets []presetEntry
	preset  int // 当前预设下标，-1 表示随机配置

	launched int
	rejected int
}

// NewDirector 创建表演编排器
//
// 参数：
//   - cfg: 表演配置（调色板、预设、自动发射节奏）
//   - width, height: 画布尺寸
//   - autoLaunch: 是否开启自动发射
//   - rng: 随机源，nil 时使用全局随机源
//
// 返回：
//   - *Director: 编排器实例
//   - error: 调色板或预设无法解析时返回错误
func NewDirector(cfg *config.ShowConfig, width, height int, autoLaunch bool, rng fireworks.Rand) (*Director, error) {
	if rng == nil {
		rng = fireworks.DefaultRand()
	}

	palette, err := cfg.PaletteColors()
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}

	presets := make([]presetEntry, 0, len(cfg.Presets))
	for i := range cfg.Presets {
		p := &cfg.Presets[i]
		o, err := p.Override()
		if err != nil {
			return nil, fmt.Errorf("failed to parse preset %q: %w", p.Name, err)
		}
		presets = append(presets, presetEntry{name: p.Name, override: o})
	}

	return &Director{
		cfg: cfg,
		system: fireworks.NewFireworkSystem(float64(width), float64(height),
			fireworks.WithRand(rng),
			fireworks.WithPalette(palette),
		),
		scheduler: NewLaunchScheduler(cfg.AutoLaunch.Interval, cfg.AutoLaunch.Burst, autoLaunch, rng),
		rng:       rng,
		presets:   presets,
		preset:    -1,
	}, nil
}

// Update 推进表演 dt 秒：先发射到期的烟花，再更新模拟
func (d *Director) Update(dt float64) {
	for n := d.scheduler.Update(dt); n > 0; n-- {
		d.Launch()
	}
	d.system.Update(dt)
}

// overrides 返回当前预设对应的覆盖项，extra 排在预设之后
func (d *Director) overrides(extra ...fireworks.Override) []fireworks.Override {
	if d.preset < 0 {
		return extra
	}
	return append([]fireworks.Override{d.presets[d.preset].override}, extra...)
}

func (d *Director) launch(overrides []fireworks.Override) error {
	if _, err := d.system.Launch(overrides...); err != nil {
		d.rejected++
		return err
	}
	d.launched++
	return nil
}

// Launch 按当前预设从随机位置发射一枚烟花
func (d *Director) Launch() error {
	return d.launch(d.overrides())
}

// LaunchAt 从 x 处的地面发射，在 y 高度附近爆炸
// 坐标会被限制在画布内，y 不会低于 maxTargetRatio 对应的高度
func (d *Director) LaunchAt(x, y float64) error {
	w, h := d.system.Size()
	x = math.Max(0, math.Min(x, w))
	y = math.Max(0, math.Min(y, h*maxTargetRatio))

	return d.launch(d.overrides(
		fireworks.WithLaunchPosition(x, h),
		fireworks.WithTargetY(y),
	))
}

// StartFinale 安排一次压轴齐射，数量和持续时间取自配置区间
func (d *Director) StartFinale() (count int, spread float64) {
	count = d.cfg.Finale.Count.SampleInt(d.rng.Float64())
	spread = d.cfg.Finale.Spread.Sample(d.rng.Float64())
	d.scheduler.Finale(count, spread)
	log.Printf("[Director] Finale: %d fireworks over %.1fs", count, spread)
	return count, spread
}

// SelectPreset 选择预设，越界的下标表示随机配置
// 返回选中的预设名，随机配置时为空字符串
func (d *Director) SelectPreset(index int) string {
	if index < 0 || index >= len(d.presets) {
		d.preset = -1
		return ""
	}
	d.preset = index
	return d.presets[index].name
}

// SelectPresetByName 按名称选择预设，空字符串表示随机配置
// 找不到时返回 false 并保持当前选择
func (d *Director) SelectPresetByName(name string) bool {
	if name == "" {
		d.preset = -1
		return true
	}
	for i, p := range d.presets {
		if p.name == name {
			d.preset = i
			return true
		}
	}
	return false
}

// PresetName 返回当前预设名，随机配置时返回空字符串
func (d *Director) PresetName() string {
	if d.preset < 0 {
		return ""
	}
	return d.presets[d.preset].name
}

// SetAutoLaunch 开关自动发射
func (d *Director) SetAutoLaunch(enabled bool) { d.scheduler.SetEnabled(enabled) }

// AutoLaunch 返回自动发射是否开启
func (d *Director) AutoLaunch() bool { return d.scheduler.Enabled() }

// PendingFinale 返回尚未发射的压轴烟花数量
func (d *Director) PendingFinale() int { return d.scheduler.PendingFinale() }

// Clear 清空所有烟花和待发射的齐射
func (d *Director) Clear() {
	d.system.Clear()
	d.scheduler.Reset()
}

// Resize 修改画布尺寸，只影响之后的发射
func (d *Director) Resize(width, height int) {
	d.system.Resize(float64(width), float64(height))
}

// System 返回烟花系统
func (d *Director) System() *fireworks.FireworkSystem { return d.system }

// Launched 返回成功发射的烟花总数
func (d *Director) Launched() int { return d.launched }

// Rejected 返回因配置无效被拒绝的发射次数
func (d *Director) Rejected() int { return d.rejected }
