package engine

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/audio"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-showcase/engine/intro"
	"github.com/Carmen-Shannon/oxy-showcase/engine/loader"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is the render service the frame driver calls once per frame.
type Renderer interface {
	// Resize sets the surface size in pixels.
	Resize(width, height int)

	// Render draws one frame of s through cam.
	Render(s scene.Scene, cam camera.Camera) error

	// SetGizmo sets the viewport gizmo drawn over each frame.
	SetGizmo(g gizmo.ViewportGizmo)

	// Release frees GPU resources. It must run before the window is destroyed.
	Release()
}

// Context is the application state shared by the load continuations, the
// resize handler and the frame driver. Everything is touched from the loop
// goroutine only. Mixer and Model stay nil until a model loads.
type Context struct {
	Config    config.Config
	Log       *logger.Logger
	Clock     clock.Clock
	Delta     *clock.Delta
	Scheduler scheduler.Scheduler
	Tweens    *tween.Group

	Scene    scene.Scene
	Camera   camera.Camera
	Controls camera.OrbitController
	Gizmo    gizmo.ViewportGizmo
	Intro    intro.Sequencer
	Audio    audio.Player
	Renderer Renderer

	Mixer animation.Mixer
	Model *loader.Model

	center    mgl32.Vec3
	centerSet bool
}

// Center returns the model pivot the camera re-aims at every frame.
//
// Returns:
//   - mgl32.Vec3: the pivot
//   - bool: false until a model has loaded
func (c *Context) Center() (mgl32.Vec3, bool) {
	return c.center, c.centerSet
}

// setCenter records the pivot. Only the first call has any effect.
func (c *Context) setCenter(v mgl32.Vec3) bool {
	if c.centerSet {
		return false
	}
	c.center, c.centerSet = v, true
	return true
}
