package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
)

// scene implements the Scene interface.
type scene struct {
	mu *sync.Mutex

	background common.Color
	camera     camera.Camera
	lights     []light.Light
	root       *Node
	model      *Node
}

// Scene is the retained container rendered each frame: a node tree, a fixed
// set of lights, a background color and the camera it is viewed through.
type Scene interface {
	// Background returns the clear color.
	//
	// Returns:
	//   - common.Color: the background color
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the background color
	SetBackground(c common.Color)

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Lights returns the scene's lights in insertion order.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// AddLight appends a light.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Root returns the scene graph root.
	//
	// Returns:
	//   - *Node: the root node
	Root() *Node

	// Add attaches a node under the root. The first node added becomes the scene's model.
	//
	// Parameters:
	//   - n: the node to attach
	Add(n *Node)

	// Model returns the first node added, or nil before a model is loaded.
	//
	// Returns:
	//   - *Node: the model root or nil
	Model() *Node

	// BoundingBox returns the world-space box enclosing every mesh under n.
	//
	// Parameters:
	//   - n: the subtree root
	//
	// Returns:
	//   - common.Box3: the box (empty if n is nil or has no meshes)
	BoundingBox(n *Node) common.Box3
}

var _ Scene = &scene{}

// NewScene creates a Scene viewed through cam.
// Panics if cam is nil.
//
// Parameters:
//   - cam: the scene camera
//   - options: functional options for scene configuration
//
// Returns:
//   - Scene: the new scene
func NewScene(cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene.NewScene: camera is required")
	}
	s := &scene{
		mu:     &sync.Mutex{},
		camera: cam,
		root:   NewNode("root"),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Background() common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Add(n *Node) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Add(n)
	if s.model == nil {
		s.model = n
	}
}

func (s *scene) Model() *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *scene) BoundingBox(n *Node) common.Box3 {
	if n == nil {
		return common.EmptyBox()
	}
	return n.WorldBounds()
}
