package show

import (
	"slices"

	"github.com/decker502/fireworks/internal/valuerange"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/utils"
)

const (
	// MinInterval 自动发射的最小间隔（秒），非正或 NaN 的间隔按此值处理
	MinInterval = 0.05
	// maxCatchUp 单次 Update 最多补发的间隔数，超出部分直接丢弃
	maxCatchUp = 8
)

// LaunchScheduler 决定何时发射烟花
//
// 自动发射：每隔 Interval 秒发射 Burst 个烟花。
// 压轴齐射：在 Spread 秒内安排 Count 个烟花，越往后越密集，不受自动发射开关影响。
type LaunchScheduler struct {
	interval valuerange.Range
	burst    valuerange.Range
	rng      fireworks.Rand

	enabled   bool
	untilNext float64   // 距离下一次自动发射的秒数
	finale    []float64 // 压轴烟花的剩余等待时间，升序
}

// NewLaunchScheduler 创建调度器
func NewLaunchScheduler(interval, burst valuerange.Range, enabled bool, rng fireworks.Rand) *LaunchScheduler {
	if rng == nil {
		rng = fireworks.DefaultRand()
	}
	s := &LaunchScheduler{
		interval: interval,
		burst:    burst,
		rng:      rng,
		enabled:  enabled,
	}
	s.untilNext = s.nextInterval()
	return s
}

func (s *LaunchScheduler) nextInterval() float64 {
	v := s.interval.Sample(s.rng.Float64())
	if !(v >= MinInterval) {
		return MinInterval
	}
	return v
}

// SetEnabled 开关自动发射
// 重新开启时从完整的间隔开始计时
func (s *LaunchScheduler) SetEnabled(enabled bool) {
	if enabled && !s.enabled {
		s.untilNext = s.nextInterval()
	}
	s.enabled = enabled
}

// Enabled 返回自动发射是否开启
func (s *LaunchScheduler) Enabled() bool { return s.enabled }

// Finale 安排一次压轴齐射
//
// 参数：
//   - count: 烟花数量
//   - spread: 持续秒数，0 表示同时发射
func (s *LaunchScheduler) Finale(count int, spread float64) {
	for i := 0; i < count; i++ {
		at := 0.0
		if count > 1 {
			at = spread * utils.EaseOutQuad(float64(i)/float64(count-1))
		}
		s.finale = append(s.finale, at)
	}
	slices.Sort(s.finale)
}

// PendingFinale 返回尚未发射的压轴烟花数量
func (s *LaunchScheduler) PendingFinale() int { return len(s.finale) }

// Update 推进 dt 秒，返回本帧应发射的烟花数量
func (s *LaunchScheduler) Update(dt float64) int {
	if !(dt > 0) {
		return 0
	}

	due := 0

	// 压轴齐射
	n := 0
	for i := range s.finale {
		s.finale[i] -= dt
		if s.finale[i] <= 0 {
			n++
		}
	}
	due += n
	s.finale = s.finale[n:]

	if !s.enabled {
		return due
	}

	s.untilNext -= dt
	for i := 0; s.untilNext <= 0; i++ {
		if i == maxCatchUp {
			s.untilNext = s.nextInterval()
			break
		}
		due += s.burst.SampleInt(s.rng.Float64())
		s.untilNext += s.nextInterval()
	}
	return due
}

// Reset 取消所有待发射的烟花
func (s *LaunchScheduler) Reset() {
	s.finale = s.finale[:0]
	s.untilNext = s.nextInterval()
}
