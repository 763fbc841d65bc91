package common

// Input codes shared by the window and the orbit controller.
// These values match GLFW codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc = 256 // Escape key (GLFW)
)

// MouseButton identifies a pointer button. Values match glfw.MouseButton.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// Key is a keyboard key code. Values match glfw.Key.
type Key uint32

const (
	KeyM Key = 77
)
