package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	polarEpsilon = 1e-6
	moveEpsilon  = 1e-6
)

// orbitControllerImpl is the implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	target mgl32.Vec3

	enabled bool
	limits  OrbitLimits

	rotateSpeed    float32
	zoomSpeed      float32
	viewportHeight float32

	// Pending motion, decayed by damping or cleared after each Update.
	deltaTheta float32
	deltaPhi   float32
	scale      float32

	dragging bool
	lastX    float64
	lastY    float64

	radius float32
	theta  float32
	phi    float32

	lastPosition mgl32.Vec3
	lastRotation mgl32.Quat
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an enabled controller with DefaultOrbitLimits.
//
// Parameters:
//   - cam: the camera to control (required)
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitController {
	if cam == nil {
		panic("camera.NewOrbitController: camera is required")
	}
	oc := &orbitControllerImpl{
		mu:             &sync.Mutex{},
		camera:         cam,
		enabled:        true,
		limits:         DefaultOrbitLimits(),
		rotateSpeed:    1.0,
		zoomSpeed:      1.0,
		viewportHeight: 1,
		scale:          1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.lastPosition = cam.Position()
	oc.lastRotation = cam.Orientation()
	return oc
}

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.dragging = false
	}
}

func (oc *orbitControllerImpl) Limits() OrbitLimits {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.limits
}

func (oc *orbitControllerImpl) ApplyLimits(limits OrbitLimits) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.limits = limits
}

func (oc *orbitControllerImpl) SetViewportHeight(height int) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if height > 0 {
		oc.viewportHeight = float32(height)
	}
}

func (oc *orbitControllerImpl) PointerDown(button common.MouseButton, x, y float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || !oc.limits.EnableRotate || button != common.MouseButtonLeft {
		return
	}
	oc.dragging = true
	oc.lastX, oc.lastY = x, y
}

func (oc *orbitControllerImpl) PointerMove(x, y float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || !oc.dragging {
		return
	}
	dx := float32(x - oc.lastX)
	dy := float32(y - oc.lastY)
	oc.lastX, oc.lastY = x, y

	oc.rotateLeft(2 * math.Pi * dx / oc.viewportHeight * oc.rotateSpeed)
	oc.rotateUp(2 * math.Pi * dy / oc.viewportHeight * oc.rotateSpeed)
}

func (oc *orbitControllerImpl) PointerUp(button common.MouseButton) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if button == common.MouseButtonLeft {
		oc.dragging = false
	}
}

func (oc *orbitControllerImpl) Scroll(dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || !oc.limits.EnableZoom || dy == 0 {
		return
	}
	step := float32(math.Pow(0.95, float64(oc.zoomSpeed)))
	if dy > 0 {
		oc.scale *= step
	} else {
		oc.scale /= step
	}
}

func (oc *orbitControllerImpl) Spherical() (float32, float32, float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius, oc.theta, oc.phi
}

func (oc *orbitControllerImpl) Update(dt float32) bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	offset := oc.camera.Position().Sub(oc.target)
	oc.radius = offset.Len()
	if oc.radius == 0 {
		oc.theta, oc.phi = 0, 0
	} else {
		oc.theta = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
		oc.phi = float32(math.Acos(float64(common.Clamp(offset[1]/oc.radius, -1, 1))))
	}

	if oc.limits.AutoRotate && !oc.dragging {
		oc.rotateLeft(2 * math.Pi / 60 * oc.limits.AutoRotateSpeed * dt)
	}

	if oc.limits.EnableDamping {
		oc.theta += oc.deltaTheta * oc.limits.DampingFactor
		oc.phi += oc.deltaPhi * oc.limits.DampingFactor
	} else {
		oc.theta += oc.deltaTheta
		oc.phi += oc.deltaPhi
	}

	oc.phi = common.Clamp(oc.phi, oc.limits.MinPolarAngle, oc.limits.MaxPolarAngle)
	oc.phi = common.Clamp(oc.phi, polarEpsilon, math.Pi-polarEpsilon)

	oc.radius = common.Clamp(oc.radius*oc.scale, oc.limits.MinDistance, oc.limits.MaxDistance)

	sinPhi := float32(math.Sin(float64(oc.phi)))
	position := oc.target.Add(mgl32.Vec3{
		oc.radius * sinPhi * float32(math.Sin(float64(oc.theta))),
		oc.radius * float32(math.Cos(float64(oc.phi))),
		oc.radius * sinPhi * float32(math.Cos(float64(oc.theta))),
	})
	oc.camera.SetPosition(position)
	oc.camera.LookAt(oc.target)

	if oc.limits.EnableDamping {
		oc.deltaTheta *= 1 - oc.limits.DampingFactor
		oc.deltaPhi *= 1 - oc.limits.DampingFactor
	} else {
		oc.deltaTheta, oc.deltaPhi = 0, 0
	}
	oc.scale = 1

	rotation := oc.camera.Orientation()
	moved := position.Sub(oc.lastPosition).LenSqr() > moveEpsilon ||
		8*(1-oc.lastRotation.Dot(rotation)) > moveEpsilon
	if moved {
		oc.lastPosition = position
		oc.lastRotation = rotation
	}
	return moved
}

// rotateLeft and rotateUp accumulate pending spherical motion.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) rotateLeft(angle float32) {
	oc.deltaTheta -= angle
}

func (oc *orbitControllerImpl) rotateUp(angle float32) {
	oc.deltaPhi -= angle
}
