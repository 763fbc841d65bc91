// Command showcase presents a single glTF model: a camera fly-in, then orbit
// controls, with the model's animations and two looping audio tracks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
)

// GLFW and the WebGPU surface must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	envPath := flag.String("env", ".env", "optional dotenv file with OXY_* overrides")
	software := flag.Bool("software", false, "force the software fallback GPU adapter")
	flag.Parse()

	if err := run(*envPath, *software); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(envPath string, software bool) error {
	cfg, err := config.Load(envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.LogDevelopment, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting showcase", "variant", string(cfg.Variant.Name), "model", cfg.ModelPath)

	win := window.NewWindow(
		window.WithTitle(cfg.WindowTitle),
		window.WithSize(cfg.WindowWidth, cfg.WindowHeight),
		window.WithSizeLimits(2*cfg.GizmoSize, 2*cfg.GizmoSize, 0, 0),
	)
	// Deferred calls run in reverse: the renderer is released before the window closes.
	defer func() { _ = win.Close() }()

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithForceSoftwareRenderer(software),
		renderer.WithLogger(log.Named("renderer")),
	)
	defer r.Release()

	eng := engine.NewEngine(cfg, r,
		engine.WithWindow(win),
		engine.WithLogger(log),
		engine.WithProfiling(cfg.Profiling),
	)

	c := eng.Context()
	win.SetPointerDownCallback(func(button common.MouseButton, x, y float64) {
		if button == common.MouseButtonLeft && c.Gizmo.PointerDown(x, y, c.Clock.Now()) {
			return
		}
		c.Controls.PointerDown(button, x, y)
	})
	win.SetPointerUpCallback(func(button common.MouseButton, _, _ float64) {
		c.Controls.PointerUp(button)
	})
	win.SetPointerMoveCallback(c.Controls.PointerMove)
	win.SetScrollCallback(func(delta float32) {
		c.Controls.Scroll(float64(delta))
	})
	win.SetKeyDownCallback(func(key common.Key) {
		if key == common.KeyM {
			c.Audio.StopAll()
		}
	})

	eng.LoadAssets()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return eng.Run(ctx)
}
