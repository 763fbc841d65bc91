package engine

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/audio"
	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
	"github.com/Carmen-Shannon/oxy-showcase/engine/loader"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, frame rate and memory statistics are logged every second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow binds the engine to a window. The window's message loop drives
// the scheduler and its resize events reach OnResize.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScheduler sets the scheduler frames, timers and load continuations run on.
// Its clock becomes the engine clock.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s scheduler.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithClock sets the clock of the default scheduler. Ignored when WithScheduler is used.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithLoader replaces the asset loader.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoader(l loader.AssetLoader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithAudioOutput replaces the speaker output used by the audio player.
//
// Parameters:
//   - out: the audio output
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAudioOutput(out audio.Output) EngineBuilderOption {
	return func(e *engine) {
		e.output = out
	}
}

// WithLogger sets the engine logger. Components log through named children.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(log *logger.Logger) EngineBuilderOption {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithSize sets the initial surface size when no window is bound.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.size = [2]int{width, height}
	}
}
