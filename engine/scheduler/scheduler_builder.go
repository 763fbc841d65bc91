package scheduler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
)

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*scheduler)

// WithClock sets the time source for timers and frame timestamps.
//
// Parameters:
//   - c: the clock to use
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithClock(c clock.Clock) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.clock = c
	}
}

// WithFrameRate sets the refresh rate used by Run.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target refreshes per second
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithFrameRate(fps float64) SchedulerBuilderOption {
	return func(s *scheduler) {
		if fps <= 0 {
			fps = 60
		}
		s.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}
