package scene

import (
	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(*Node)

// WithTranslation sets the node's local translation.
func WithTranslation(t mgl32.Vec3) NodeBuilderOption {
	return func(n *Node) {
		n.translation = t
	}
}

// WithRotation sets the node's local rotation.
func WithRotation(q mgl32.Quat) NodeBuilderOption {
	return func(n *Node) {
		n.rotation = q
	}
}

// WithScale sets the node's local scale.
func WithScale(s mgl32.Vec3) NodeBuilderOption {
	return func(n *Node) {
		n.scale = s
	}
}

// WithMatrix decomposes an affine matrix into translation, rotation and scale.
// Shear is not representable and is discarded.
//
// Parameters:
//   - m: the local transform
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMatrix(m mgl32.Mat4) NodeBuilderOption {
	return func(n *Node) {
		n.translation = m.Col(3).Vec3()
		sx := m.Col(0).Vec3().Len()
		sy := m.Col(1).Vec3().Len()
		sz := m.Col(2).Vec3().Len()
		if m.Det() < 0 {
			sx = -sx
		}
		n.scale = mgl32.Vec3{sx, sy, sz}
		if sx == 0 || sy == 0 || sz == 0 {
			n.rotation = mgl32.QuatIdent()
			return
		}
		rot := mgl32.Mat3FromCols(
			m.Col(0).Vec3().Mul(1/sx),
			m.Col(1).Vec3().Mul(1/sy),
			m.Col(2).Vec3().Mul(1/sz),
		)
		n.rotation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	}
}

// WithBounds attaches local-space mesh bounds.
func WithBounds(b common.Box3) NodeBuilderOption {
	return func(n *Node) {
		n.SetLocalBounds(b)
	}
}

// WithMesh attaches decoded geometry.
func WithMesh(m *model.Mesh) NodeBuilderOption {
	return func(n *Node) {
		n.mesh = m
	}
}

// WithChildren attaches child nodes.
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		for _, c := range children {
			n.Add(c)
		}
	}
}
