package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShowcaseCamera() Camera {
	return NewCamera(
		WithPosition(mgl32.Vec3{34, 16, -20}),
		WithFov(common.DegToRad(35)),
		WithNear(1),
		WithFar(10000),
		WithAspect(16.0/9.0),
	)
}

func TestLookAtIsIdempotent(t *testing.T) {
	cam := newShowcaseCamera()
	target := mgl32.Vec3{0, -2.5, 1}

	cam.LookAt(target)
	firstRot := cam.Orientation()
	firstView := cam.ViewMatrix()

	cam.LookAt(target)
	assert.Equal(t, firstRot, cam.Orientation())
	assert.Equal(t, firstView, cam.ViewMatrix())
}

func TestLookAtFacesTarget(t *testing.T) {
	cam := newShowcaseCamera()
	target := mgl32.Vec3{0, 0, 0}
	cam.LookAt(target)

	forward := cam.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
	want := target.Sub(cam.Position()).Normalize()
	assert.InDelta(t, 1.0, forward.Dot(want), 1e-5)

	// The target projects onto the view axis.
	viewSpace := mgl32.TransformCoordinate(target, cam.ViewMatrix())
	assert.InDelta(t, 0, viewSpace[0], 1e-3)
	assert.InDelta(t, 0, viewSpace[1], 1e-3)
	assert.Less(t, viewSpace[2], float32(0))
}

func TestLookAtStraightDownKeepsValidBasis(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 10, 0}))
	cam.LookAt(mgl32.Vec3{})

	q := cam.Orientation()
	assert.InDelta(t, 1.0, q.Len(), 1e-5)
	forward := q.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1.0, forward[1], 1e-3)
}

func TestLookAtOwnPositionIsIgnored(t *testing.T) {
	cam := newShowcaseCamera()
	cam.LookAt(mgl32.Vec3{})
	before := cam.Orientation()

	cam.LookAt(cam.Position())
	assert.Equal(t, before, cam.Orientation())
}

func TestSetAspectRejectsDegenerateValues(t *testing.T) {
	cam := newShowcaseCamera()
	cam.SetAspect(800.0 / 600.0)
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)

	cam.SetAspect(0)
	cam.SetAspect(float32(math.Inf(1)))
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)

	proj := cam.ProjectionMatrix()
	assert.InDelta(t, proj[5]/(800.0/600.0), proj[0], 1e-5)
}

func TestUniformMarshalLayout(t *testing.T) {
	cam := newShowcaseCamera()
	cam.LookAt(mgl32.Vec3{})
	u := cam.Uniform()

	buf := u.Marshal()
	require.Len(t, buf, GPUCameraUniformSize)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, [3]float32{34, 16, -20}, u.CameraPosition)
	assert.Equal(t, [16]float32(cam.ViewProjectionMatrix()), u.ViewProj)
}
