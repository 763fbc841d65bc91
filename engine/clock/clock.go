// Package clock provides the monotonic time source sampled by the frame driver,
// the tween engine and the scheduler's timers.
package clock

import (
	"sync"
	"time"
)

// Clock reports monotonic time elapsed since the clock was created.
type Clock interface {
	// Now returns the elapsed monotonic time since construction.
	//
	// Returns:
	//   - time.Duration: elapsed time
	Now() time.Duration
}

type monotonicClock struct {
	start time.Time
}

var _ Clock = &monotonicClock{}

// NewMonotonic creates a Clock backed by the runtime's monotonic clock reading.
//
// Returns:
//   - Clock: the new clock, starting at zero
func NewMonotonic() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// Fake is a manually advanced Clock for deterministic tests.
type Fake struct {
	mu  sync.Mutex
	now time.Duration
}

var _ Clock = &Fake{}

// NewFake creates a Fake clock at zero.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += d
}

// Set moves the clock to an absolute reading. Moving backwards is ignored.
func (f *Fake) Set(now time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if now > f.now {
		f.now = now
	}
}

// Delta samples the time elapsed between successive calls to Get.
type Delta struct {
	clock Clock
	last  time.Duration
	begun bool
}

// NewDelta creates a Delta over the given clock.
//
// Parameters:
//   - c: the clock to sample
//
// Returns:
//   - *Delta: the delta sampler
func NewDelta(c Clock) *Delta {
	return &Delta{clock: c}
}

// Get returns the seconds elapsed since the previous call. The first call returns 0.
//
// Returns:
//   - float32: elapsed seconds
//   - time.Duration: the clock reading used for this sample
func (d *Delta) Get() (float32, time.Duration) {
	now := d.clock.Now()
	if !d.begun {
		d.begun = true
		d.last = now
		return 0, now
	}
	dt := float32((now - d.last).Seconds())
	d.last = now
	return dt, now
}
