// Package gizmo implements the axis widget drawn in a corner of the view.
// It shows the world axes as seen from the camera and, when an axis end is
// clicked, swings the camera around the orbit target to look down that axis.
package gizmo

import (
	"time"

	"cogentcore.org/core/colors"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis identifies one of the six axis ends.
type Axis int

const (
	AxisPosX Axis = iota
	AxisPosY
	AxisPosZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

var axisDirections = [6]mgl32.Vec3{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
}

var axisColors = [3][4]float32{
	rgba("#ff3653"),
	rgba("#8adb00"),
	rgba("#2c8fff"),
}

func rgba(hex string) [4]float32 {
	c := colors.MustFromHex(hex)
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// Direction returns the world-space unit vector of the axis end.
func (a Axis) Direction() mgl32.Vec3 {
	return axisDirections[a]
}

// Color returns the axis color; negative ends are drawn at half brightness.
func (a Axis) Color() [4]float32 {
	c := axisColors[a%3]
	if a >= AxisNegX {
		return [4]float32{c[0] * 0.5, c[1] * 0.5, c[2] * 0.5, 1}
	}
	return c
}

// String returns the axis label, such as "+X".
func (a Axis) String() string {
	return [6]string{"+X", "+Y", "+Z", "-X", "-Y", "-Z"}[a]
}

const (
	// axisRadius is the projected length of a unit axis in gizmo clip space.
	axisRadius = 0.7

	// markerHalf is the half extent of the square drawn at each axis end.
	markerHalf = 0.1

	// hitHalf is the half extent of the clickable square around each axis end.
	hitHalf = 0.18

	// poleNudge keeps a snap onto ±Y off the exact pole so the look-at stays defined.
	poleNudge = 1e-3
)

// viewportGizmo is the implementation of the ViewportGizmo interface.
type viewportGizmo struct {
	controls camera.OrbitController
	tweens   *tween.Group

	size         int
	margin       int
	snapDuration time.Duration

	width, height int
	snap          *tween.Vec3Tween
}

// ViewportGizmo is the axis widget placed in the top-right corner of the
// window. It reads the camera orientation every frame and drives the camera
// through the shared tween group when an axis end is clicked.
type ViewportGizmo interface {
	// Size returns the side length of the square gizmo viewport in pixels.
	Size() int

	// Resize records the window size the gizmo is placed in.
	//
	// Parameters:
	//   - width: the window width in pixels
	//   - height: the window height in pixels
	Resize(width, height int)

	// Viewport returns the gizmo's square in window pixels, origin top-left.
	//
	// Returns:
	//   - int: left edge
	//   - int: top edge
	//   - int: side length (0 while the window is smaller than the gizmo)
	Viewport() (x, y, size int)

	// AxisAt returns the frontmost axis end under a window position.
	//
	// Parameters:
	//   - x: cursor x in window pixels
	//   - y: cursor y in window pixels
	//
	// Returns:
	//   - Axis: the axis end hit
	//   - bool: false if no axis end is under the cursor
	AxisAt(x, y float64) (Axis, bool)

	// PointerDown handles a click. A click inside the gizmo is consumed; a click
	// on an axis end starts a snap unless the orbit controller is disabled (as
	// during the intro) or a snap is already running.
	//
	// Parameters:
	//   - x: cursor x in window pixels
	//   - y: cursor y in window pixels
	//   - now: the current clock reading, used to start the snap tween
	//
	// Returns:
	//   - bool: true if the click landed inside the gizmo
	PointerDown(x, y float64, now time.Duration) bool

	// Animating reports whether a snap is in progress.
	Animating() bool

	// Vertices builds the line list for the current camera orientation.
	//
	// Returns:
	//   - []GPUGizmoVertex: line segment endpoints in gizmo clip space
	Vertices() []GPUGizmoVertex
}

var _ ViewportGizmo = &viewportGizmo{}

// NewViewportGizmo creates a gizmo attached to controls. Snaps run on tweens.
// Panics if controls or tweens is nil.
//
// Parameters:
//   - controls: the orbit controller whose camera and target the gizmo follows
//   - tweens: the frame's tween group
//   - options: functional options for size, margin and snap duration
//
// Returns:
//   - ViewportGizmo: the new gizmo
func NewViewportGizmo(controls camera.OrbitController, tweens *tween.Group, options ...ViewportGizmoBuilderOption) ViewportGizmo {
	if controls == nil || tweens == nil {
		panic("gizmo.NewViewportGizmo: controls and tweens are required")
	}
	g := &viewportGizmo{
		controls:     controls,
		tweens:       tweens,
		size:         100,
		margin:       10,
		snapDuration: 500 * time.Millisecond,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *viewportGizmo) Size() int {
	return g.size
}

func (g *viewportGizmo) Resize(width, height int) {
	g.width, g.height = width, height
}

func (g *viewportGizmo) Viewport() (int, int, int) {
	if g.width < g.size || g.height < g.size {
		return 0, 0, 0
	}
	x := max(g.width-g.size-g.margin, 0)
	y := min(g.margin, g.height-g.size)
	return x, y, g.size
}

// project maps each axis end into gizmo clip space; z grows toward the viewer.
func (g *viewportGizmo) project() [6]mgl32.Vec3 {
	rot := g.controls.Camera().ViewMatrix().Mat3()
	var out [6]mgl32.Vec3
	for i, dir := range axisDirections {
		p := rot.Mul3x1(dir)
		out[i] = mgl32.Vec3{p[0] * axisRadius, p[1] * axisRadius, p[2]}
	}
	return out
}

func (g *viewportGizmo) AxisAt(x, y float64) (Axis, bool) {
	vx, vy, size := g.Viewport()
	if size == 0 {
		return 0, false
	}
	nx := float32((x-float64(vx))/float64(size))*2 - 1
	ny := 1 - float32((y-float64(vy))/float64(size))*2

	best, found := Axis(0), false
	var bestZ float32
	for i, p := range g.project() {
		if abs32(nx-p[0]) > hitHalf || abs32(ny-p[1]) > hitHalf {
			continue
		}
		if !found || p[2] > bestZ {
			best, bestZ, found = Axis(i), p[2], true
		}
	}
	return best, found
}

func (g *viewportGizmo) contains(x, y float64) bool {
	vx, vy, size := g.Viewport()
	return size > 0 &&
		x >= float64(vx) && x < float64(vx+size) &&
		y >= float64(vy) && y < float64(vy+size)
}

func (g *viewportGizmo) PointerDown(x, y float64, now time.Duration) bool {
	if !g.contains(x, y) {
		return false
	}
	axis, ok := g.AxisAt(x, y)
	if !ok || g.Animating() || !g.controls.Enabled() {
		return true
	}
	g.startSnap(axis, now)
	return true
}

func (g *viewportGizmo) Animating() bool {
	return g.snap != nil && g.snap.State() != tween.StateDone
}

// startSnap swings the camera along the great circle from its current
// direction to the axis, keeping the orbit radius. Orbit input is disabled
// until the swing completes.
func (g *viewportGizmo) startSnap(axis Axis, now time.Duration) {
	cam := g.controls.Camera()
	target := g.controls.Target()
	offset := cam.Position().Sub(target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	from := offset.Normalize()
	to := axis.Direction()
	if axis == AxisPosY || axis == AxisNegY {
		horizontal := mgl32.Vec3{from[0], 0, from[2]}
		if horizontal.Len() == 0 {
			horizontal = mgl32.Vec3{0, 0, 1}
		}
		to = to.Add(horizontal.Normalize().Mul(poleNudge)).Normalize()
	}
	turn := mgl32.QuatBetweenVectors(from, to)

	g.controls.SetEnabled(false)
	g.snap = tween.NewVec3Tween(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, g.snapDuration,
		tween.WithOnUpdate(func(v mgl32.Vec3) {
			dir := mgl32.QuatSlerp(mgl32.QuatIdent(), turn, v[0]).Rotate(from)
			cam.SetPosition(target.Add(dir.Mul(radius)))
		}),
		tween.WithOnComplete(func() {
			g.controls.SetEnabled(true)
		}),
	)
	g.snap.Start(now)
	g.tweens.Add(g.snap)
}

func (g *viewportGizmo) Vertices() []GPUGizmoVertex {
	ends := g.project()
	out := make([]GPUGizmoVertex, 0, 6*2+6*8)
	for i, p := range ends {
		c := Axis(i).Color()
		if Axis(i) < AxisNegX {
			out = append(out,
				GPUGizmoVertex{Position: [2]float32{0, 0}, Color: c},
				GPUGizmoVertex{Position: [2]float32{p[0], p[1]}, Color: c},
			)
		}
		out = appendMarker(out, p[0], p[1], c)
	}
	return out
}

// appendMarker outlines a square around (x, y) as four segments.
func appendMarker(out []GPUGizmoVertex, x, y float32, c [4]float32) []GPUGizmoVertex {
	corners := [4][2]float32{
		{x - markerHalf, y - markerHalf},
		{x + markerHalf, y - markerHalf},
		{x + markerHalf, y + markerHalf},
		{x - markerHalf, y + markerHalf},
	}
	for i := range corners {
		out = append(out,
			GPUGizmoVertex{Position: corners[i], Color: c},
			GPUGizmoVertex{Position: corners[(i+1)%4], Color: c},
		)
	}
	return out
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
