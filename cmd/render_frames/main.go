// cmd/render_frames/main.go
// 无窗口渲染烟花表演，逐帧导出 PNG
//
// 使用 CPU 光栅化表面，不需要显卡和显示器，适合在 CI 中生成预览图。
//
// 用法：
//
//	go run ./cmd/render_frames [flags]
//
// Flags:
//
//	--config <path>   Show config file (default: data/show.yaml)
//	--preset <name>   Preset to launch (default: random)
//	--seed <n>        Random seed, 0 for unseeded (default 1)
//	--duration <s>    Seconds to simulate (default 6)
//	--fps <n>         Simulation rate (default 60)
//	--every <n>       Write every n-th frame (default 6)
//	--out <dir>       Output directory (default frames)
//	--finale          Start with a finale instead of auto launch
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/show"
)

var (
	configFlag   = flag.String("config", "", "Show config file (default: data/show.yaml)")
	presetFlag   = flag.String("preset", "", "Preset to launch (default: random)")
	seedFlag     = flag.Uint64("seed", 1, "Random seed, 0 for unseeded")
	durationFlag = flag.Float64("duration", 6, "Seconds to simulate")
	fpsFlag      = flag.Int("fps", 60, "Simulation rate")
	everyFlag    = flag.Int("every", 6, "Write every n-th frame")
	outFlag      = flag.String("out", "frames", "Output directory")
	widthFlag    = flag.Int("width", 0, "Canvas width (default: window width from config)")
	heightFlag   = flag.Int("height", 0, "Canvas height (default: window height from config)")
	finaleFlag   = flag.Bool("finale", false, "Start with a finale instead of auto launch")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "render_frames: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *fpsFlag <= 0 || *everyFlag <= 0 {
		return fmt.Errorf("--fps and --every must be positive")
	}

	// 在仓库根目录运行时直接读取 data/show.yaml
	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadShowConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if *widthFlag > 0 {
		width = *widthFlag
	}
	if *heightFlag > 0 {
		height = *heightFlag
	}

	rng := fireworks.DefaultRand()
	if *seedFlag != 0 {
		rng = fireworks.NewSeededRand(*seedFlag)
	}

	director, err := show.NewDirector(cfg, width, height, !*finaleFlag, rng)
	if err != nil {
		return err
	}
	if !director.SelectPresetByName(*presetFlag) {
		return fmt.Errorf("%w: %q (available: %v)", config.ErrUnknownPreset, *presetFlag, cfg.PresetNames())
	}
	if *finaleFlag {
		director.StartFinale()
	}

	surface := render.NewRasterSurface(width, height)
	renderer, err := render.NewFireworkRenderer(surface,
		render.WithGlow(cfg.Renderer.Glow),
		render.WithTrails(cfg.Renderer.Trail),
		render.WithMotionBlur(cfg.Renderer.MotionBlur, cfg.Renderer.FadeAlpha),
	)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dt := 1.0 / float64(*fpsFlag)
	frames := int(*durationFlag * float64(*fpsFlag))
	written := 0
	for frame := 1; frame <= frames; frame++ {
		director.Update(dt)
		// 运动模糊依赖逐帧累积，每帧都要渲染
		renderer.Render(director.System())

		if frame%*everyFlag != 0 {
			continue
		}
		path := filepath.Join(*outFlag, fmt.Sprintf("frame_%04d.png", frame))
		if err := writePNG(path, surface); err != nil {
			return err
		}
		written++
		log.Printf("[RenderFrames] %s: %d fireworks, %d particles",
			path, director.System().Len(), director.System().ParticleCount())
	}

	fmt.Printf("Wrote %d frames to %s (%d fireworks launched)\n", written, *outFlag, director.Launched())
	return nil
}

func writePNG(path string, surface *render.RasterSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
