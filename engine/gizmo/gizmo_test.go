package gizmo

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frontView puts the camera on +Z looking at the origin, so +X points right
// and +Y points up in the gizmo.
func frontView(t *testing.T) (ViewportGizmo, camera.OrbitController, *tween.Group) {
	t.Helper()
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 100}))
	cam.LookAt(mgl32.Vec3{})
	controls := camera.NewOrbitController(cam)
	tweens := tween.NewGroup()
	g := NewViewportGizmo(controls, tweens, WithSnapDuration(500*time.Millisecond))
	g.Resize(800, 600)
	return g, controls, tweens
}

// pixel converts a gizmo clip-space point to window pixels for an 800x600 window.
func pixel(x, y float32) (float64, float64) {
	return 690 + float64(x+1)/2*100, 10 + float64(1-y)/2*100
}

func TestViewportSitsTopRight(t *testing.T) {
	g, _, _ := frontView(t)
	x, y, size := g.Viewport()
	assert.Equal(t, 690, x)
	assert.Equal(t, 10, y)
	assert.Equal(t, 100, size)

	g.Resize(80, 600)
	_, _, size = g.Viewport()
	assert.Zero(t, size, "hidden while the window is narrower than the gizmo")
}

func TestAxisAtPicksFrontmostEnd(t *testing.T) {
	g, _, _ := frontView(t)

	axis, ok := g.AxisAt(pixel(0.7, 0))
	require.True(t, ok)
	assert.Equal(t, AxisPosX, axis)

	axis, ok = g.AxisAt(pixel(0, 0.7))
	require.True(t, ok)
	assert.Equal(t, AxisPosY, axis)

	axis, ok = g.AxisAt(pixel(0, 0))
	require.True(t, ok)
	assert.Equal(t, AxisPosZ, axis, "+Z faces the camera and hides -Z")

	_, ok = g.AxisAt(pixel(0.4, 0.4))
	assert.False(t, ok)
}

func TestPointerDownOutsideIsNotConsumed(t *testing.T) {
	g, controls, tweens := frontView(t)
	assert.False(t, g.PointerDown(100, 300, 0))
	assert.True(t, controls.Enabled())
	assert.Zero(t, tweens.Len())
}

func TestClickOnAxisSwingsCamera(t *testing.T) {
	g, controls, tweens := frontView(t)
	cam := controls.Camera()

	x, y := pixel(0.7, 0)
	require.True(t, g.PointerDown(x, y, 0))
	assert.True(t, g.Animating())
	assert.False(t, controls.Enabled(), "orbit input waits for the swing")

	tweens.Update(250 * time.Millisecond)
	mid := cam.Position()
	assert.InDelta(t, 100, mid.Len(), 1e-2, "radius is kept")
	assert.Greater(t, mid[0], float32(0))
	assert.Greater(t, mid[2], float32(0))

	tweens.Update(600 * time.Millisecond)
	end := cam.Position()
	assert.InDelta(t, 100, end[0], 1e-2)
	assert.InDelta(t, 0, end[2], 1e-2)
	assert.False(t, g.Animating())
	assert.True(t, controls.Enabled())
}

func TestClickIgnoredWhileControlsDisabled(t *testing.T) {
	g, controls, tweens := frontView(t)
	controls.SetEnabled(false)

	x, y := pixel(0.7, 0)
	assert.True(t, g.PointerDown(x, y, 0), "click is still consumed")
	assert.False(t, g.Animating())
	assert.Zero(t, tweens.Len())
}

func TestSnapToTopStaysOffThePole(t *testing.T) {
	g, controls, tweens := frontView(t)

	x, y := pixel(0, 0.7)
	require.True(t, g.PointerDown(x, y, 0))
	tweens.Update(time.Second)

	pos := controls.Camera().Position()
	assert.InDelta(t, 100, pos[1], 1e-2)
	assert.Greater(t, pos[2], float32(0), "nudged toward the previous azimuth")
}

func TestVerticesFollowCameraOrientation(t *testing.T) {
	g, _, _ := frontView(t)
	verts := g.Vertices()
	require.Len(t, verts, 3*2+6*8)

	assert.Equal(t, [2]float32{0, 0}, verts[0].Position)
	assert.InDelta(t, 0.7, verts[1].Position[0], 1e-5)
	assert.InDelta(t, 0, verts[1].Position[1], 1e-5)
	assert.Equal(t, AxisPosX.Color(), verts[1].Color)

	assert.Len(t, MarshalVertices(verts), len(verts)*GPUGizmoVertexSize)
}

func TestAxisColorsDimNegativeEnds(t *testing.T) {
	pos := AxisPosY.Color()
	neg := AxisNegY.Color()
	assert.InDelta(t, float32(0xdb)/255, pos[1], 1e-6)
	assert.InDelta(t, pos[1]*0.5, neg[1], 1e-6)
	assert.Equal(t, [4]float32{1, float32(0x36) / 255, float32(0x53) / 255, 1}, AxisPosX.Color())
	assert.Equal(t, "-Y", AxisNegY.String())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, AxisNegZ.Direction())
}
