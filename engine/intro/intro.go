// Package intro drives the one-shot camera fly-in that precedes user orbit control.
package intro

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// ErrAlreadyStarted is returned when Begin is called more than once.
var ErrAlreadyStarted = errors.New("intro already started")

// State is the intro lifecycle phase.
type State = tween.State

const (
	StateIdle      = tween.StateIdle
	StateAnimating = tween.StateAnimating
	StateDone      = tween.StateDone
)

type sequencer struct {
	camera   camera.Camera
	controls camera.OrbitController
	group    *tween.Group

	start    mgl32.Vec3
	end      mgl32.Vec3
	delay    time.Duration
	duration time.Duration
	easing   ease.TweenFunc
	limits   camera.OrbitLimits

	state  State
	onDone func()
}

// Sequencer runs the intro fly-in: orbit input is disabled while the camera
// tweens from its start to its end position, then orbit control is handed over
// with the final limits and auto-rotation. The intro runs once and cannot be
// restarted or cancelled.
type Sequencer interface {
	// State returns the current phase.
	//
	// Returns:
	//   - State: idle, animating or done
	State() State

	// Begin disables orbit input, moves the camera to the start position and
	// registers the fly-in tween with the tween group.
	//
	// Parameters:
	//   - now: the current clock reading
	//
	// Returns:
	//   - error: ErrAlreadyStarted if the intro is not idle
	Begin(now time.Duration) error
}

var _ Sequencer = &sequencer{}

// NewSequencer creates an idle intro.
// Panics if any collaborator is nil.
//
// Parameters:
//   - cam: the camera to move
//   - controls: the orbit controller to hand over to
//   - group: the tween group advanced each frame
//   - options: functional options for positions, timing and limits
//
// Returns:
//   - Sequencer: the idle intro
func NewSequencer(cam camera.Camera, controls camera.OrbitController, group *tween.Group, options ...SequencerBuilderOption) Sequencer {
	if cam == nil || controls == nil || group == nil {
		panic("intro.NewSequencer: camera, controls and tween group are required")
	}
	s := &sequencer{
		camera:   cam,
		controls: controls,
		group:    group,
		start:    cam.Position(),
		end:      cam.Position(),
		easing:   ease.InOutQuart,
		limits:   controls.Limits(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sequencer) State() State {
	return s.state
}

func (s *sequencer) Begin(now time.Duration) error {
	if s.state != StateIdle {
		return ErrAlreadyStarted
	}

	s.controls.SetEnabled(false)
	s.camera.SetPosition(s.start)

	t := tween.NewVec3Tween(s.start, s.end, s.duration,
		tween.WithDelay(s.delay),
		tween.WithEasing(s.easing),
		tween.WithOnUpdate(s.camera.SetPosition),
		tween.WithOnComplete(s.complete),
	)
	t.Start(now)
	s.group.Add(t)
	s.state = StateAnimating
	return nil
}

func (s *sequencer) complete() {
	if s.state == StateDone {
		return
	}
	s.controls.SetEnabled(true)
	s.controls.ApplyLimits(s.limits)
	s.state = StateDone
	if s.onDone != nil {
		s.onDone()
	}
}

// LimitsFromConfig converts the configured orbit settings into controller limits
// with damping, rotation, zoom and auto-rotation enabled.
//
// Parameters:
//   - o: the configured orbit settings
//
// Returns:
//   - camera.OrbitLimits: the limits applied when the intro finishes
func LimitsFromConfig(o config.OrbitConfig) camera.OrbitLimits {
	l := camera.DefaultOrbitLimits()
	l.EnableDamping = true
	l.DampingFactor = o.DampingFactor
	l.MinDistance = o.MinDistance
	l.MaxDistance = o.MaxDistance
	l.MaxPolarAngle = o.MaxPolarAngle
	l.EnableRotate = true
	l.EnableZoom = true
	l.AutoRotate = true
	l.AutoRotateSpeed = o.AutoRotateSpeed
	return l
}
