// Package telemetry 采集无窗口运行时的逐帧统计并写成 CSV
package telemetry

import (
	"math"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// TickRecord 一帧的统计
type TickRecord struct {
	Run     int     `csv:"run"`
	Tick    int     `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	Fireworks int `csv:"fireworks"`
	Particles int `csv:"particles"`
	Launched  int `csv:"launched"`

	// 各阶段的烟花数量
	Launching int `csv:"phase_launch"`
	Exploding int `csv:"phase_explosion"`
	Secondary int `csv:"phase_secondary"`
	Decaying  int `csv:"phase_decay"`

	// 可见粒子的平均 alpha 和最高点
	MeanAlpha float64 `csv:"mean_alpha"`
	HighestY  float64 `csv:"highest_y"`
}

// Collect 从系统当前状态生成一条记录
// buf 用于复用粒子快照，返回更新后的缓冲
func Collect(rec *TickRecord, sys *fireworks.FireworkSystem, buf []*fireworks.Particle) []*fireworks.Particle {
	rec.Fireworks = sys.Len()
	rec.Launching, rec.Exploding, rec.Secondary, rec.Decaying = 0, 0, 0, 0
	for _, f := range sys.Fireworks() {
		switch f.Phase() {
		case fireworks.PhaseLaunch:
			rec.Launching++
		case fireworks.PhaseExplosion:
			rec.Exploding++
		case fireworks.PhaseSecondary:
			rec.Secondary++
		case fireworks.PhaseDecay:
			rec.Decaying++
		}
	}

	buf = sys.AppendParticles(buf[:0])
	rec.Particles = len(buf)

	var sum float64
	highest := math.Inf(1)
	for _, p := range buf {
		sum += p.Alpha()
		highest = math.Min(highest, p.Y)
	}
	rec.MeanAlpha, rec.HighestY = 0, 0
	if len(buf) > 0 {
		rec.MeanAlpha = sum / float64(len(buf))
		rec.HighestY = highest
	}

	clear(buf)
	return buf
}

// LifetimeTracker 记录每枚烟花从出现到被系统移除的时长
type LifetimeTracker struct {
	born map[*fireworks.Firework]float64
	live map[*fireworks.Firework]bool
}

// NewLifetimeTracker 创建追踪器
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		born: make(map[*fireworks.Firework]float64),
		live: make(map[*fireworks.Firework]bool),
	}
}

// Observe 对比上一次观察，把已经结束的烟花寿命追加到 dst
func (t *LifetimeTracker) Observe(simTime float64, sys *fireworks.FireworkSystem, dst []float64) []float64 {
	clear(t.live)
	for _, f := range sys.Fireworks() {
		t.live[f] = true
		if _, ok := t.born[f]; !ok {
			t.born[f] = simTime
		}
	}
	for f, born := range t.born {
		if !t.live[f] {
			dst = append(dst, simTime-born)
			delete(t.born, f)
		}
	}
	return dst
}

// Pending 返回仍在追踪中的烟花数量
func (t *LifetimeTracker) Pending() int { return len(t.born) }
