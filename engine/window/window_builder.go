package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested client area size. Non-positive dimensions keep the default.
// The framebuffer size reported after creation may differ on high-DPI displays.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing. A non-positive value leaves that
// bound open. A maximum smaller than its minimum is raised to the minimum.
//
// Parameters:
//   - minWidth: minimum width in pixels
//   - minHeight: minimum height in pixels
//   - maxWidth: maximum width in pixels
//   - maxHeight: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = max(minWidth, unbounded)
		w.minHeight = max(minHeight, unbounded)
		w.maxWidth = max(maxWidth, unbounded)
		w.maxHeight = max(maxHeight, unbounded)
		if w.maxWidth != unbounded && w.maxWidth < w.minWidth {
			w.maxWidth = w.minWidth
		}
		if w.maxHeight != unbounded && w.maxHeight < w.minHeight {
			w.maxHeight = w.minHeight
		}
	}
}
