package scene

import (
	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a named element of the scene graph with a local transform, optional
// mesh, skin and bounds, and child nodes. Nodes are owned by the loop goroutine.
type Node struct {
	name string

	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3

	bounds  common.Box3
	hasMesh bool

	mesh *model.Mesh
	skin *Skin

	parent   *Node
	children []*Node
}

// NewNode creates a node with an identity transform and the provided options applied.
//
// Parameters:
//   - name: the node name (may be empty)
//   - options: functional options for transform, bounds and children
//
// Returns:
//   - *Node: the new node
func NewNode(name string, options ...NodeBuilderOption) *Node {
	n := &Node{
		name:     name,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		bounds:   common.EmptyBox(),
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Translation() mgl32.Vec3 {
	return n.translation
}

func (n *Node) SetTranslation(t mgl32.Vec3) {
	n.translation = t
}

func (n *Node) Rotation() mgl32.Quat {
	return n.rotation
}

func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q
}

func (n *Node) Scale() mgl32.Vec3 {
	return n.scale
}

func (n *Node) SetScale(s mgl32.Vec3) {
	n.scale = s
}

// LocalBounds returns the node's own mesh bounds in local space.
//
// Returns:
//   - common.Box3: the bounds (empty if the node has no mesh)
//   - bool: true if the node carries a mesh
func (n *Node) LocalBounds() (common.Box3, bool) {
	return n.bounds, n.hasMesh
}

// SetLocalBounds attaches mesh bounds in local space.
func (n *Node) SetLocalBounds(b common.Box3) {
	n.bounds = b
	n.hasMesh = !b.IsEmpty()
}

// Mesh returns the node's decoded geometry, or nil.
func (n *Node) Mesh() *model.Mesh {
	return n.mesh
}

// SetMesh attaches decoded geometry. Bounds are set separately because a mesh
// whose primitives could not be decoded can still report bounds.
func (n *Node) SetMesh(m *model.Mesh) {
	n.mesh = m
}

// Skin returns the skin deforming the node's mesh, or nil.
func (n *Node) Skin() *Skin {
	return n.skin
}

func (n *Node) SetSkin(s *Skin) {
	n.skin = s
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent.
// Adding a node to itself or to one of its descendants is ignored.
//
// Parameters:
//   - child: the node to attach
func (n *Node) Add(child *Node) {
	if child == nil {
		return
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return
		}
	}
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// LocalMatrix composes translation, rotation and scale.
//
// Returns:
//   - mgl32.Mat4: the local transform
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return common.ComposeTRS(n.translation, n.rotation, n.scale)
}

// WorldMatrix composes the local matrices from the root down to n.
//
// Returns:
//   - mgl32.Mat4: the world transform
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse visits n and every descendant depth-first, parents before children.
//
// Parameters:
//   - fn: the visitor
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindDescendant is Find restricted to n's descendants, so a child sharing
// n's name still resolves to the child.
func (n *Node) FindDescendant(name string) *Node {
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// WorldBounds returns the world-space box enclosing every mesh in the subtree,
// re-fitting each mesh's local box under its world matrix.
//
// Returns:
//   - common.Box3: the enclosing box (empty if the subtree has no meshes)
func (n *Node) WorldBounds() common.Box3 {
	out := common.EmptyBox()
	n.Traverse(func(node *Node) {
		if b, ok := node.LocalBounds(); ok {
			out = out.Union(b.ApplyMatrix4(node.WorldMatrix()))
		}
	})
	return out
}
