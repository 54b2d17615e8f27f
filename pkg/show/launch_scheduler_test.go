package show

import (
	"math"
	"testing"

	"github.com/decker502/fireworks/internal/valuerange"
)

// constRand 总是返回同一个值
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

// TestLaunchScheduler_AutoLaunch 固定间隔下按时发射
func TestLaunchScheduler_AutoLaunch(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(1), valuerange.Fixed(2), true, constRand(0))

	if got := s.Update(0.5); got != 0 {
		t.Errorf("after 0.5s: got %d launches, want 0", got)
	}
	if got := s.Update(0.5); got != 2 {
		t.Errorf("after 1s: got %d launches, want 2", got)
	}

	// 一个很长的帧补齐所有错过的间隔
	if got := s.Update(3); got != 6 {
		t.Errorf("after a 3s frame: got %d launches, want 6", got)
	}
}

// TestLaunchScheduler_Disabled 关闭时不自动发射
func TestLaunchScheduler_Disabled(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(1), valuerange.Fixed(1), false, constRand(0))

	if got := s.Update(10); got != 0 {
		t.Errorf("disabled scheduler launched %d", got)
	}

	s.SetEnabled(true)
	if !s.Enabled() {
		t.Fatal("SetEnabled(true) had no effect")
	}
	if got := s.Update(0.9); got != 0 {
		t.Errorf("re-enabled scheduler should wait a full interval, got %d", got)
	}
	if got := s.Update(0.1); got != 1 {
		t.Errorf("got %d launches, want 1", got)
	}
}

// TestLaunchScheduler_Finale 压轴烟花在 spread 内全部发射
func TestLaunchScheduler_Finale(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(100), valuerange.Fixed(1), false, constRand(0))
	s.Finale(5, 2)

	if s.PendingFinale() != 5 {
		t.Fatalf("PendingFinale: got %d, want 5", s.PendingFinale())
	}

	total := 0
	for i := 0; i < 10 && s.PendingFinale() > 0; i++ {
		total += s.Update(0.25)
	}
	// 0, 0.875, 1.5, 1.875, 2.0
	if total != 5 {
		t.Errorf("finale launched %d, want 5", total)
	}
	if s.PendingFinale() != 0 {
		t.Errorf("PendingFinale after spread: %d", s.PendingFinale())
	}
}

// TestLaunchScheduler_FinaleImmediate spread 为 0 时下一帧全部发射
func TestLaunchScheduler_FinaleImmediate(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(100), valuerange.Fixed(1), false, constRand(0))
	s.Finale(4, 0)

	if got := s.Update(1.0 / 60.0); got != 4 {
		t.Errorf("got %d launches, want 4", got)
	}
}

// TestLaunchScheduler_Reset 清空待发射队列
func TestLaunchScheduler_Reset(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(1), valuerange.Fixed(1), true, constRand(0))
	s.Finale(3, 1)
	s.Update(0.5)
	s.Reset()

	if s.PendingFinale() != 0 {
		t.Errorf("PendingFinale after Reset: %d", s.PendingFinale())
	}
	if got := s.Update(0.5); got != 0 {
		t.Errorf("timer should restart after Reset, got %d", got)
	}
}

// TestLaunchScheduler_InvalidDelta 非正 dt 不推进
func TestLaunchScheduler_InvalidDelta(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(1), valuerange.Fixed(1), true, constRand(0))
	s.Finale(1, 0)
	if got := s.Update(-1); got != 0 {
		t.Errorf("negative dt launched %d", got)
	}
	if s.PendingFinale() != 1 {
		t.Error("negative dt consumed the finale")
	}
}

// TestLaunchScheduler_DegenerateInterval 间隔为 0 或 NaN 时按最小间隔发射，Update 必须返回
func TestLaunchScheduler_DegenerateInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval valuerange.Range
	}{
		{"zero", valuerange.Fixed(0)},
		{"negative", valuerange.Range{Min: -2, Max: -1}},
		{"nan", valuerange.Fixed(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLaunchScheduler(tt.interval, valuerange.Fixed(1), true, constRand(0))

			if got := s.Update(0.016); got != 0 {
				t.Errorf("first frame: got %d launches, want 0", got)
			}
			// 0.016 + 0.04 = 0.056 越过 MinInterval 一次
			if got := s.Update(0.04); got != 1 {
				t.Errorf("after MinInterval: got %d launches, want 1", got)
			}
		})
	}
}

// TestLaunchScheduler_CatchUpCapped 超长的帧最多补发 maxCatchUp 次
func TestLaunchScheduler_CatchUpCapped(t *testing.T) {
	s := NewLaunchScheduler(valuerange.Fixed(0.1), valuerange.Fixed(1), true, constRand(0))

	if got := s.Update(100); got != maxCatchUp {
		t.Errorf("100s frame: got %d launches, want %d", got, maxCatchUp)
	}
	// 补发被截断后重新从完整间隔开始计时
	if got := s.Update(0.05); got != 0 {
		t.Errorf("frame after cap: got %d launches, want 0", got)
	}
}
