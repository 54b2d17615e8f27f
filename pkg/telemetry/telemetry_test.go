package telemetry

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// TestSummarize 测试描述统计
func TestSummarize(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := Summarize(values)

	if s.N != 10 || s.Mean != 5.5 {
		t.Errorf("N/Mean: got %d/%v, want 10/5.5", s.N, s.Mean)
	}
	if math.Abs(s.Std-3.0276503540974917) > 1e-9 {
		t.Errorf("Std: got %v, want ~3.0277", s.Std)
	}
	if s.P10 != 1 || s.P50 != 5 || s.P90 != 9 {
		t.Errorf("percentiles: got %v/%v/%v, want 1/5/9", s.P10, s.P50, s.P90)
	}
	if s.Min != 1 || s.Max != 10 {
		t.Errorf("Min/Max: got %v/%v, want 1/10", s.Min, s.Max)
	}
	// 输入不被排序
	if values[0] != 10 {
		t.Error("Summarize modified its input")
	}
}

// TestSummarize_Small 空输入和单个值
func TestSummarize_Small(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty: got %+v, want zero", s)
	}
	s := Summarize([]float64{4})
	if s.N != 1 || s.Mean != 4 || s.Std != 0 || s.P50 != 4 {
		t.Errorf("single: got %+v", s)
	}
}

// TestWriter_HeaderOnce 表头只写一次，并且可以读回
func TestWriter_HeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write([]TickRecord{{Run: 1, Tick: 1, Particles: 10}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write([]TickRecord{{Run: 1, Tick: 2, Particles: 20}, {Run: 1, Tick: 3, Particles: 30}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if n := strings.Count(buf.String(), "sim_time"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}
	if w.Rows() != 3 {
		t.Errorf("Rows: got %d, want 3", w.Rows())
	}

	records, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(records) != 3 || records[2].Tick != 3 || records[2].Particles != 30 {
		t.Errorf("read back: got %+v", records)
	}
}

// TestWriter_Nil 禁用输出时不报错
func TestWriter_Nil(t *testing.T) {
	w := NewWriter(nil)
	if w != nil {
		t.Fatal("NewWriter(nil) should return nil")
	}
	if err := w.Write([]TickRecord{{Tick: 1}}); err != nil {
		t.Errorf("nil Write: %v", err)
	}
	if w.Rows() != 0 {
		t.Error("nil Rows should be 0")
	}
}

// TestCollect 统计阶段分布和粒子数
func TestCollect(t *testing.T) {
	sys := fireworks.NewFireworkSystem(800, 600, fireworks.WithRand(fireworks.NewSeededRand(7)))
	var rec TickRecord
	var buf []*fireworks.Particle

	buf = Collect(&rec, sys, buf)
	if rec.Fireworks != 0 || rec.Particles != 0 || rec.MeanAlpha != 0 {
		t.Errorf("empty system: got %+v", rec)
	}

	sys.Launch()
	sys.Launch()
	buf = Collect(&rec, sys, buf)
	if rec.Fireworks != 2 || rec.Launching != 2 {
		t.Errorf("after launch: got %+v", rec)
	}
	if rec.Particles != sys.ParticleCount() {
		t.Errorf("Particles: got %d, want %d", rec.Particles, sys.ParticleCount())
	}
	if rec.HighestY != 600 {
		t.Errorf("HighestY: got %v, want 600 (both comets on the ground)", rec.HighestY)
	}

	// 跑到爆炸之后
	for i := 0; i < 300; i++ {
		sys.Update(1.0 / 60.0)
	}
	buf = Collect(&rec, sys, buf)
	if rec.Launching != 0 {
		t.Errorf("comets should have exploded after 5s, got %d launching", rec.Launching)
	}
	for _, p := range buf {
		if p != nil {
			t.Fatal("Collect should not retain particle references")
		}
	}
}

// TestLifetimeTracker 烟花被移除时报告寿命
func TestLifetimeTracker(t *testing.T) {
	sys := fireworks.NewFireworkSystem(800, 600, fireworks.WithRand(fireworks.NewSeededRand(3)))
	tracker := NewLifetimeTracker()

	sys.Launch(fireworks.WithExplosion(0, 80, 250, fireworks.DistributionUniform))
	var lifetimes []float64
	simTime := 0.0
	for i := 0; i < 600 && len(lifetimes) == 0; i++ {
		lifetimes = tracker.Observe(simTime, sys, lifetimes)
		sys.Update(1.0 / 60.0)
		simTime += 1.0 / 60.0
		lifetimes = tracker.Observe(simTime, sys, lifetimes)
	}

	if len(lifetimes) != 1 {
		t.Fatalf("expected one finished firework, got %d", len(lifetimes))
	}
	if lifetimes[0] <= 0 || lifetimes[0] > 10 {
		t.Errorf("lifetime out of range: %v", lifetimes[0])
	}
	if tracker.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", tracker.Pending())
	}
}
