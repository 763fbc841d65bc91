package intro

import (
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// SequencerBuilderOption is a functional option for configuring a Sequencer.
type SequencerBuilderOption func(*sequencer)

// WithPath sets the fly-in start and end camera positions.
//
// Parameters:
//   - start: the position the camera is placed at when the intro begins
//   - end: the position the camera rests at when the intro finishes
//
// Returns:
//   - SequencerBuilderOption: option function to apply
func WithPath(start, end mgl32.Vec3) SequencerBuilderOption {
	return func(s *sequencer) {
		s.start = start
		s.end = end
	}
}

// WithTiming sets the delay before motion and the motion duration.
//
// Parameters:
//   - delay: time between Begin and the first camera move
//   - duration: time the camera takes to reach the end position
//
// Returns:
//   - SequencerBuilderOption: option function to apply
func WithTiming(delay, duration time.Duration) SequencerBuilderOption {
	return func(s *sequencer) {
		s.delay = delay
		s.duration = duration
	}
}

// WithEasing sets the fly-in easing curve.
func WithEasing(fn ease.TweenFunc) SequencerBuilderOption {
	return func(s *sequencer) {
		if fn != nil {
			s.easing = fn
		}
	}
}

// WithLimits sets the orbit limits applied when the intro finishes.
func WithLimits(l camera.OrbitLimits) SequencerBuilderOption {
	return func(s *sequencer) {
		s.limits = l
	}
}

// WithOnDone sets a callback fired once when the intro finishes.
func WithOnDone(fn func()) SequencerBuilderOption {
	return func(s *sequencer) {
		s.onDone = fn
	}
}

// WithConfig applies the path, timing and limits of a configuration.
//
// Parameters:
//   - cfg: presentation constants
//
// Returns:
//   - SequencerBuilderOption: option function to apply
func WithConfig(cfg config.Config) SequencerBuilderOption {
	return func(s *sequencer) {
		s.start = cfg.Variant.CameraStart
		s.end = cfg.Variant.IntroEnd
		s.delay = cfg.IntroDelay
		s.duration = cfg.IntroDuration
		s.limits = LimitsFromConfig(cfg.Orbit)
	}
}
