package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/audio"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-showcase/engine/intro"
	"github.com/Carmen-Shannon/oxy-showcase/engine/loader"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/profiler"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
	"github.com/faiface/beep"
)

// Render failures are retried after a doubling delay so a lost surface does not
// spin the loop.
const (
	minRenderBackoff = 16 * time.Millisecond
	maxRenderBackoff = 250 * time.Millisecond
)

// idleWait is how long the window loop sleeps when no frame is pending.
const idleWait = 4 * time.Millisecond

// engine implements the Engine interface.
type engine struct {
	ctx *Context

	window    window.Window
	loader    loader.AssetLoader
	output    audio.Output
	scheduler scheduler.Scheduler
	clock     clock.Clock
	log       *logger.Logger
	size      [2]int

	profiler         *profiler.Profiler
	profilingEnabled bool

	started       bool
	cancelEffect  func() bool
	renderBackoff time.Duration

	shutdownOnce sync.Once

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
}

// Engine drives the showcase: it owns the application Context, starts the
// asset loads and runs the per-refresh frame function on the scheduler.
type Engine interface {
	// Context returns the application context.
	//
	// Returns:
	//   - *Context: the shared state
	Context() *Context

	// LoadAssets starts the model and both audio loads. Continuations run on the loop goroutine.
	LoadAssets()

	// OnModelLoaded adds the model to the scene, fixes the camera pivot from its
	// bounding box, starts every clip, begins the intro, starts the background
	// track and schedules the effect track. Later calls are ignored.
	//
	// Parameters:
	//   - m: the decoded model
	OnModelLoaded(m *loader.Model)

	// OnResize updates the camera aspect and the render surface size.
	// Sizes with a zero dimension (minimised window) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	OnResize(width, height int)

	// Start requests the first frame. Subsequent frames request themselves.
	Start()

	// Run starts the frame loop and blocks until ctx is cancelled, Quit is
	// called or the window closes. On the way out the effect timer is
	// cancelled, audio stops and the renderer is released before the window
	// is destroyed.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: nil on a clean shutdown
	Run(ctx context.Context) error

	// Quit stops the loop. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine over cfg and r, assembling the scene, camera,
// lights, orbit controller, intro and audio player.
// Panics if r is nil.
//
// Parameters:
//   - cfg: presentation constants
//   - r: the render service
//   - options: functional options for window, scheduler, loader, audio and profiling
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(cfg config.Config, r Renderer, options ...EngineBuilderOption) Engine {
	if r == nil {
		panic("engine.NewEngine: renderer is required")
	}
	e := &engine{
		log:         logger.NewNop(),
		size:        [2]int{cfg.WindowWidth, cfg.WindowHeight},
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.size = [2]int{e.window.Width(), e.window.Height()}
	}
	if e.scheduler == nil {
		c := e.clock
		if c == nil {
			c = clock.NewMonotonic()
		}
		e.scheduler = scheduler.NewScheduler(scheduler.WithClock(c))
	}
	e.clock = e.scheduler.Clock()
	if e.loader == nil {
		e.loader = loader.NewAssetLoader(e.scheduler,
			loader.WithWorkers(cfg.LoaderWorkers),
			loader.WithLogger(e.log.Named("loader")),
		)
	}
	if e.output == nil {
		e.output = audio.NewSpeakerOutput()
	}
	e.profiler = profiler.NewProfiler(e.log.Named("profiler"), e.clock)

	s := scene.Assemble(cfg, r, e.size[0], e.size[1])
	cam := s.Camera()
	controls := camera.NewOrbitController(cam, camera.WithViewportHeight(e.size[1]))
	tweens := tween.NewGroup()
	g := gizmo.NewViewportGizmo(controls, tweens,
		gizmo.WithSize(cfg.GizmoSize),
		gizmo.WithSnapDuration(cfg.GizmoSnapDuration),
	)
	g.Resize(e.size[0], e.size[1])
	r.SetGizmo(g)

	e.ctx = &Context{
		Config:    cfg,
		Log:       e.log,
		Clock:     e.clock,
		Delta:     clock.NewDelta(e.clock),
		Scheduler: e.scheduler,
		Tweens:    tweens,
		Scene:     s,
		Camera:    cam,
		Controls:  controls,
		Gizmo:     g,
		Intro: intro.NewSequencer(cam, controls, tweens,
			intro.WithConfig(cfg),
			intro.WithOnDone(func() { e.log.Infow("intro finished, orbit control enabled") }),
		),
		Audio: audio.NewPlayer(e.output,
			audio.WithEffectGain(float64(cfg.EffectGain)),
			audio.WithLogger(e.log.Named("audio")),
		),
		Renderer: r,
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.OnResize)
	}
	return e
}

func (e *engine) Context() *Context {
	return e.ctx
}

func (e *engine) LoadAssets() {
	c := e.ctx
	e.loader.LoadModel(c.Config.ModelPath).Then(func(m *loader.Model, err error) {
		if err != nil {
			return
		}
		e.OnModelLoaded(m)
	})
	e.loader.LoadAudio(c.Config.BackgroundAudioPath).Then(func(buf *beep.Buffer, err error) {
		if err != nil {
			return
		}
		c.Audio.SetBackground(buf)
		if !c.Audio.Background().Playing() {
			c.Audio.PlayBackground()
		}
	})
	e.loader.LoadAudio(c.Config.EffectAudioPath).Then(func(buf *beep.Buffer, err error) {
		if err != nil {
			return
		}
		c.Audio.SetEffect(buf)
	})
}

func (e *engine) OnModelLoaded(m *loader.Model) {
	c := e.ctx
	if m == nil || m.Root == nil || c.Model != nil {
		return
	}
	c.Model = m
	c.Scene.Add(m.Root)

	box := c.Scene.BoundingBox(m.Root)
	center := common.ModelCenter(box, c.Config.Variant.Anchor)
	c.setCenter(center)
	c.Camera.LookAt(center)
	c.Controls.SetTarget(center)

	if len(m.Clips) > 0 {
		c.Mixer = animation.NewMixer(m.Root)
		animation.PlayAll(c.Mixer, m.Clips)
	}

	if err := c.Intro.Begin(c.Clock.Now()); err != nil {
		c.Log.Warnw("intro not started", "error", err)
	}

	if !c.Audio.Background().Playing() {
		c.Audio.PlayBackground()
	}
	e.cancelEffect = c.Scheduler.AfterFunc(c.Config.EffectDelay, func() {
		c.Audio.PlayEffect()
	})

	c.Log.Infow("model ready",
		"name", m.Name,
		"clips", len(m.Clips),
		"center", center,
		"anchor", c.Config.Variant.Anchor.String(),
	)
}

func (e *engine) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c := e.ctx
	c.Camera.SetAspect(float32(width) / float32(height))
	c.Renderer.Resize(width, height)
	c.Controls.SetViewportHeight(height)
	c.Gizmo.Resize(width, height)
}

func (e *engine) Start() {
	if e.started {
		return
	}
	e.started = true
	e.scheduler.RequestFrame(e.frame)
}

// frame is the per-refresh callback. The order is fixed so a render never
// shows state from a previous tick.
func (e *engine) frame(time.Duration) {
	c := e.ctx

	dt, now := c.Delta.Get()
	c.Tweens.Update(now)
	if c.Mixer != nil {
		c.Mixer.Update(dt)
	}
	if center, ok := c.Center(); ok {
		c.Camera.LookAt(center)
	}
	c.Controls.Update(dt)

	if err := c.Renderer.Render(c.Scene, c.Camera); err != nil {
		e.renderBackoff = min(max(e.renderBackoff*2, minRenderBackoff), maxRenderBackoff)
		c.Log.Debugw("frame skipped", "error", err, "retry", e.renderBackoff)
	} else {
		e.renderBackoff = 0
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.quitting() {
		return
	}
	if e.renderBackoff > 0 {
		e.scheduler.AfterFunc(e.renderBackoff, func() {
			if !e.quitting() {
				e.scheduler.RequestFrame(e.frame)
			}
		})
		return
	}
	e.scheduler.RequestFrame(e.frame)
}

func (e *engine) Run(ctx context.Context) error {
	e.Start()

	if e.window == nil {
		defer e.shutdown()
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-e.quitChannel:
				cancel()
			case <-runCtx.Done():
			}
		}()
		err := e.scheduler.Run(runCtx)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	}

	e.window.SetUpdateCallback(func() {
		if ctx.Err() != nil || e.quitting() {
			e.shutdown()
			return
		}
		e.scheduler.Step()
		if frames, _ := e.scheduler.Pending(); frames == 0 {
			time.Sleep(idleWait)
		}
	})
	e.window.ProcessMessages()
	e.shutdown()
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// shutdown cancels the effect timer, stops audio, releases the renderer and
// then closes the window. Only the first call has any effect.
func (e *engine) shutdown() {
	e.shutdownOnce.Do(func() {
		e.Quit()
		if e.cancelEffect != nil {
			e.cancelEffect()
		}
		e.ctx.Audio.StopAll()
		e.ctx.Renderer.Release()
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				e.log.Debugw("window close", "error", err)
			}
		}
	})
}
