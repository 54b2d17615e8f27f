// cmd/fireworks_stats/main.go
// 无窗口运行多轮表演，输出逐帧 CSV 和汇总统计
//
// 用法：
//
//	go run ./cmd/fireworks_stats [flags]
//
// Flags:
//
//	--config <path>   Show config file (default: data/show.yaml)
//	--preset <name>   Preset to launch (default: random)
//	--runs <n>        Number of runs (default 5)
//	--seed <n>        Base seed; run i uses seed+i (default 1)
//	--duration <s>    Seconds per run (default 20)
//	--fps <n>         Simulation rate (default 60)
//	--csv <path>      Per-tick CSV output (default: none)
//	--finale          Add a finale at the start of every run
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/show"
	"github.com/decker502/fireworks/pkg/telemetry"
)

var (
	configFlag   = flag.String("config", "", "Show config file (default: data/show.yaml)")
	presetFlag   = flag.String("preset", "", "Preset to launch (default: random)")
	runsFlag     = flag.Int("runs", 5, "Number of runs")
	seedFlag     = flag.Uint64("seed", 1, "Base seed; run i uses seed+i")
	durationFlag = flag.Float64("duration", 20, "Seconds per run")
	fpsFlag      = flag.Int("fps", 60, "Simulation rate")
	csvFlag      = flag.String("csv", "", "Per-tick CSV output (default: none)")
	finaleFlag   = flag.Bool("finale", false, "Add a finale at the start of every run")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// runStats 一轮运行的累计结果
type runStats struct {
	particles []float64 // 每帧粒子数
	lifetimes []float64 // 每枚完成的烟花寿命
	launched  int
	rejected  int
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fireworks_stats: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *runsFlag <= 0 || *fpsFlag <= 0 {
		return fmt.Errorf("--runs and --fps must be positive")
	}

	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadShowConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	var writer *telemetry.Writer
	if *csvFlag != "" {
		f, err := os.Create(*csvFlag)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *csvFlag, err)
		}
		defer f.Close()
		writer = telemetry.NewWriter(f)
	}

	var total runStats
	for i := 0; i < *runsFlag; i++ {
		stats, err := simulate(cfg, i, writer)
		if err != nil {
			return err
		}
		fmt.Printf("run %d: launched=%d rejected=%d peak particles=%.0f\n",
			i, stats.launched, stats.rejected, telemetry.Summarize(stats.particles).Max)

		total.particles = append(total.particles, stats.particles...)
		total.lifetimes = append(total.lifetimes, stats.lifetimes...)
		total.launched += stats.launched
		total.rejected += stats.rejected
	}

	fmt.Printf("\n%d runs, %d fireworks launched, %d rejected\n", *runsFlag, total.launched, total.rejected)
	fmt.Printf("particles per tick: %s\n", telemetry.Summarize(total.particles))
	fmt.Printf("firework lifetime (s): %s\n", telemetry.Summarize(total.lifetimes))
	if writer != nil {
		fmt.Printf("wrote %d rows to %s\n", writer.Rows(), *csvFlag)
	}
	return nil
}

// simulate 运行一轮并把逐帧记录写入 writer
func simulate(cfg *config.ShowConfig, runIndex int, writer *telemetry.Writer) (runStats, error) {
	director, err := show.NewDirector(cfg, cfg.Window.Width, cfg.Window.Height, true,
		fireworks.NewSeededRand(*seedFlag+uint64(runIndex)))
	if err != nil {
		return runStats{}, err
	}
	if !director.SelectPresetByName(*presetFlag) {
		return runStats{}, fmt.Errorf("%w: %q (available: %v)", config.ErrUnknownPreset, *presetFlag, cfg.PresetNames())
	}
	if *finaleFlag {
		director.StartFinale()
	}

	dt := 1.0 / float64(*fpsFlag)
	ticks := int(*durationFlag * float64(*fpsFlag))

	var (
		stats   runStats
		buf     []*fireworks.Particle
		tracker = telemetry.NewLifetimeTracker()
		records = make([]telemetry.TickRecord, 0, *fpsFlag)
	)
	for tick := 1; tick <= ticks; tick++ {
		director.Update(dt)
		simTime := float64(tick) * dt

		rec := telemetry.TickRecord{Run: runIndex, Tick: tick, SimTime: simTime, Launched: director.Launched()}
		buf = telemetry.Collect(&rec, director.System(), buf)
		stats.particles = append(stats.particles, float64(rec.Particles))
		stats.lifetimes = tracker.Observe(simTime, director.System(), stats.lifetimes)

		// 每秒批量写一次
		records = append(records, rec)
		if len(records) == cap(records) || tick == ticks {
			if err := writer.Write(records); err != nil {
				return runStats{}, err
			}
			records = records[:0]
		}
	}

	stats.launched = director.Launched()
	stats.rejected = director.Rejected()
	log.Printf("[FireworksStats] run %d: %d fireworks still in flight", runIndex, tracker.Pending())
	return stats, nil
}
