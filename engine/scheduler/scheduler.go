// Package scheduler runs the showcase's cooperative, single-goroutine refresh
// loop: frame callbacks, one-shot timers and tasks posted from worker goroutines.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
)

// FrameCallback is invoked once on the refresh after it was requested.
type FrameCallback func(now time.Duration)

type timer struct {
	id       uint64
	deadline time.Duration
	fn       func()
}

type scheduler struct {
	clock         clock.Clock
	frameInterval time.Duration

	mu     sync.Mutex
	posted []func()

	frames   []FrameCallback
	timers   []*timer
	nextID   uint64
	stepping bool
}

// Scheduler is the per-refresh loop driver.
// All methods except Post must be called from the loop goroutine.
type Scheduler interface {
	// Clock returns the time source used for timers and frame timestamps.
	//
	// Returns:
	//   - clock.Clock: the scheduler's clock
	Clock() clock.Clock

	// RequestFrame registers a callback for the next refresh.
	// Callbacks requested while a refresh is running run on the following one.
	//
	// Parameters:
	//   - cb: the callback to run
	RequestFrame(cb FrameCallback)

	// Post queues a task to run on the loop goroutine at the start of the next refresh.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - task: the task to run
	Post(task func())

	// AfterFunc runs fn on the loop goroutine once the clock passes now + d.
	//
	// Parameters:
	//   - d: the delay
	//   - fn: the function to run
	//
	// Returns:
	//   - func() bool: cancels the timer, reporting whether it was still pending
	AfterFunc(d time.Duration, fn func()) func() bool

	// Pending reports the number of outstanding frame callbacks and timers.
	//
	// Returns:
	//   - frames: frame callbacks waiting for the next refresh
	//   - timers: timers not yet fired
	Pending() (frames, timers int)

	// Step runs one refresh: posted tasks, then due timers, then frame callbacks.
	Step()

	// Run calls Step at the configured frame interval until ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancellation for the loop
	//
	// Returns:
	//   - error: the context's error once cancelled
	Run(ctx context.Context) error
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a Scheduler with the provided options.
// Defaults to a monotonic clock and a 60Hz frame interval for Run.
//
// Parameters:
//   - options: functional options for scheduler configuration
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		frameInterval: time.Second / 60,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.NewMonotonic()
	}
	return s
}

func (s *scheduler) Clock() clock.Clock {
	return s.clock
}

func (s *scheduler) RequestFrame(cb FrameCallback) {
	if cb == nil {
		return
	}
	s.frames = append(s.frames, cb)
}

func (s *scheduler) Post(task func()) {
	if task == nil {
		return
	}
	s.mu.Lock()
	s.posted = append(s.posted, task)
	s.mu.Unlock()
}

func (s *scheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.nextID++
	t := &timer{id: s.nextID, deadline: s.clock.Now() + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() bool {
		for i, pending := range s.timers {
			if pending == t {
				s.timers = append(s.timers[:i], s.timers[i+1:]...)
				return true
			}
		}
		return false
	}
}

func (s *scheduler) Pending() (int, int) {
	return len(s.frames), len(s.timers)
}

func (s *scheduler) Step() {
	if s.stepping {
		return
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, task := range posted {
		task()
	}

	now := s.clock.Now()
	s.runTimers(now)

	frames := s.frames
	s.frames = nil
	for _, cb := range frames {
		cb(now)
	}
}

// runTimers fires every timer due at now in deadline order. Timers scheduled by a
// firing timer are left for the next refresh.
func (s *scheduler) runTimers(now time.Duration) {
	var due []*timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.deadline <= now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline == due[j].deadline {
			return due[i].id < due[j].id
		}
		return due[i].deadline < due[j].deadline
	})
	for _, t := range due {
		if t.fn != nil {
			t.fn()
		}
	}
}

func (s *scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}
