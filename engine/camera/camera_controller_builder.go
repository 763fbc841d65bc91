package camera

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithLimits sets the initial orbit constraints.
//
// Parameters:
//   - limits: the constraints to apply
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithLimits(limits OrbitLimits) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.limits = limits
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
//
// Parameters:
//   - speed: multiplier for drag rotation
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the scroll zoom multiplier.
//
// Parameters:
//   - speed: multiplier for scroll zoom
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithEnabled sets whether input is accepted initially.
//
// Parameters:
//   - enabled: whether to accept input
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithEnabled(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enabled = enabled
	}
}

// WithViewportHeight sets the pixel height used to scale drag distances.
//
// Parameters:
//   - height: viewport height in pixels
//
// Returns:
//   - OrbitControllerOption: option function to apply
func WithViewportHeight(height int) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if height > 0 {
			oc.viewportHeight = float32(height)
		}
	}
}
