package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitLimits is the set of orbit constraints and behaviours applied as one unit.
type OrbitLimits struct {
	EnableDamping bool
	DampingFactor float32

	MinDistance float32
	MaxDistance float32

	MinPolarAngle float32 // radians from +Y
	MaxPolarAngle float32 // radians from +Y

	EnableRotate bool
	EnableZoom   bool

	AutoRotate      bool
	AutoRotateSpeed float32 // 1.0 = one full turn per minute
}

// DefaultOrbitLimits returns unbounded limits with damping and auto-rotate off.
// Under these limits an externally driven camera position passes through Update
// unchanged (apart from the polar angle safety margin at the poles).
//
// Returns:
//   - OrbitLimits: the default limits
func DefaultOrbitLimits() OrbitLimits {
	return OrbitLimits{
		EnableDamping:   false,
		DampingFactor:   0.05,
		MinDistance:     0,
		MaxDistance:     float32(math.Inf(1)),
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		EnableRotate:    true,
		EnableZoom:      true,
		AutoRotate:      false,
		AutoRotateSpeed: 2.0,
	}
}

// OrbitController orbits a Camera around a target point using spherical
// coordinates (radius, theta around +Y, phi from +Y). Input handlers only
// accumulate motion; Update applies it, and Update must run every frame even
// while input is disabled so an externally animated camera stays aimed at the
// target.
type OrbitController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Target() mgl32.Vec3

	// SetTarget sets the orbit pivot. The camera position is left untouched until the next Update.
	//
	// Parameters:
	//   - target: world-space pivot
	SetTarget(target mgl32.Vec3)

	// Enabled reports whether pointer and scroll input is accepted.
	//
	// Returns:
	//   - bool: true if input is accepted
	Enabled() bool

	// SetEnabled toggles input handling. Disabling also cancels any drag in progress.
	//
	// Parameters:
	//   - enabled: whether to accept input
	SetEnabled(enabled bool)

	// Limits returns the active orbit constraints.
	//
	// Returns:
	//   - OrbitLimits: the active constraints
	Limits() OrbitLimits

	// ApplyLimits replaces the orbit constraints.
	//
	// Parameters:
	//   - limits: the new constraints
	ApplyLimits(limits OrbitLimits)

	// SetViewportHeight sets the pixel height used to scale drag distances into angles.
	//
	// Parameters:
	//   - height: viewport height in pixels
	SetViewportHeight(height int)

	// PointerDown starts a rotate drag for the left button.
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: pointer position in pixels
	PointerDown(button common.MouseButton, x, y float64)

	// PointerMove accumulates rotation while a drag is in progress.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float64)

	// PointerUp ends a drag.
	//
	// Parameters:
	//   - button: the released button
	PointerUp(button common.MouseButton)

	// Scroll accumulates a zoom step. Positive dy zooms in.
	//
	// Parameters:
	//   - dy: vertical scroll offset
	Scroll(dy float64)

	// Spherical returns the coordinates computed by the most recent Update.
	//
	// Returns:
	//   - radius: distance from target
	//   - theta: azimuth around +Y in radians
	//   - phi: polar angle from +Y in radians
	Spherical() (radius, theta, phi float32)

	// Update applies accumulated input, auto-rotation, damping and limits, writes the
	// camera position and re-aims the camera at the target.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - bool: true if the camera moved noticeably
	Update(dt float32) bool
}
