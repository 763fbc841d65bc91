// Package tween interpolates camera positions over time with explicit
// Idle, Animating and Done states.
package tween

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// State is the lifecycle phase of a tween.
type State int

const (
	// StateIdle means the tween has been created but not started.
	StateIdle State = iota

	// StateAnimating means the tween has started; it may still be inside its delay.
	StateAnimating

	// StateDone is terminal: the end value has been written and the completion fired.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAnimating:
		return "animating"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// Vec3Tween eases a 3-component vector from a start to an end value.
type Vec3Tween struct {
	from     mgl32.Vec3
	to       mgl32.Vec3
	duration time.Duration
	delay    time.Duration
	easing   ease.TweenFunc

	onUpdate   func(mgl32.Vec3)
	onComplete func()

	state     State
	startedAt time.Duration
	progress  *gween.Tween
	current   mgl32.Vec3
}

// NewVec3Tween creates an idle tween. Easing defaults to quartic in/out.
//
// Parameters:
//   - from: the start value
//   - to: the end value
//   - duration: the interpolation time, excluding delay
//   - options: functional options (delay, easing, callbacks)
//
// Returns:
//   - *Vec3Tween: the idle tween
func NewVec3Tween(from, to mgl32.Vec3, duration time.Duration, options ...Vec3TweenBuilderOption) *Vec3Tween {
	t := &Vec3Tween{
		from:     from,
		to:       to,
		duration: max(duration, 0),
		easing:   ease.InOutQuart,
		current:  from,
	}
	for _, opt := range options {
		opt(t)
	}
	t.progress = gween.New(0, 1, float32(t.duration.Seconds()), t.easing)
	return t
}

// State returns the current lifecycle phase.
func (t *Vec3Tween) State() State {
	return t.state
}

// Value returns the most recently written value.
func (t *Vec3Tween) Value() mgl32.Vec3 {
	return t.current
}

// Start moves an idle tween to Animating, timing from now.
// Calls on a started or finished tween are ignored.
//
// Parameters:
//   - now: the clock reading at start
func (t *Vec3Tween) Start(now time.Duration) {
	if t.state != StateIdle {
		return
	}
	t.state = StateAnimating
	t.startedAt = now
}

// Update advances the tween to now. While the delay has not elapsed nothing is
// written. Once delay + duration has elapsed the end value is written exactly,
// the completion callback fires and the tween becomes Done.
//
// Parameters:
//   - now: the current clock reading
//
// Returns:
//   - bool: true while the tween is still active
func (t *Vec3Tween) Update(now time.Duration) bool {
	if t.state != StateAnimating {
		return t.state == StateIdle
	}

	elapsed := now - t.startedAt - t.delay
	if elapsed < 0 {
		return true
	}

	if elapsed >= t.duration {
		t.finish()
		return false
	}

	k, _ := t.progress.Set(float32(elapsed.Seconds()))
	t.current = t.from.Add(t.to.Sub(t.from).Mul(k))
	if t.onUpdate != nil {
		t.onUpdate(t.current)
	}
	return true
}

func (t *Vec3Tween) finish() {
	t.current = t.to
	t.state = StateDone
	if t.onUpdate != nil {
		t.onUpdate(t.current)
	}
	if t.onComplete != nil {
		t.onComplete()
	}
}

// Group is the registry of active tweens advanced once per frame.
type Group struct {
	tweens []*Vec3Tween
}

// NewGroup creates an empty Group.
func NewGroup() *Group {
	return &Group{}
}

// Add registers a tween. Finished tweens are never added.
func (g *Group) Add(t *Vec3Tween) {
	if t == nil || t.state == StateDone {
		return
	}
	g.tweens = append(g.tweens, t)
}

// Len returns the number of registered tweens.
func (g *Group) Len() int {
	return len(g.tweens)
}

// Update advances every registered tween and drops those that finished.
// Tweens added from a completion callback are kept for the next update.
//
// Parameters:
//   - now: the current clock reading
func (g *Group) Update(now time.Duration) {
	active := g.tweens
	g.tweens = nil
	kept := make([]*Vec3Tween, 0, len(active))
	for _, t := range active {
		if t.Update(now) {
			kept = append(kept, t)
		}
	}
	g.tweens = append(kept, g.tweens...)
}
