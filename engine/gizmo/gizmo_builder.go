package gizmo

import "time"

// ViewportGizmoBuilderOption is a functional option used to configure a ViewportGizmo during construction.
type ViewportGizmoBuilderOption func(*viewportGizmo)

// WithSize sets the side length of the gizmo viewport in pixels. Defaults to 100.
//
// Parameters:
//   - size: the side length; non-positive values are ignored
//
// Returns:
//   - ViewportGizmoBuilderOption: a function that sets the size
func WithSize(size int) ViewportGizmoBuilderOption {
	return func(g *viewportGizmo) {
		if size > 0 {
			g.size = size
		}
	}
}

// WithMargin sets the gap between the gizmo and the window's top and right edges. Defaults to 10.
func WithMargin(margin int) ViewportGizmoBuilderOption {
	return func(g *viewportGizmo) {
		g.margin = max(margin, 0)
	}
}

// WithSnapDuration sets how long an axis snap takes. Defaults to 500ms.
//
// Parameters:
//   - d: the swing duration
//
// Returns:
//   - ViewportGizmoBuilderOption: a function that sets the snap duration
func WithSnapDuration(d time.Duration) ViewportGizmoBuilderOption {
	return func(g *viewportGizmo) {
		g.snapDuration = d
	}
}
