package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Skin binds a mesh to a set of joint nodes. Its palette maps bind-pose
// vertices into the mesh node's space under the joints' current pose.
type Skin struct {
	name        string
	joints      []*Node
	inverseBind []mgl32.Mat4
	palette     []mgl32.Mat4
}

// NewSkin creates a skin over joints. Missing inverse bind matrices default to
// identity; extra ones are ignored.
//
// Parameters:
//   - name: the skin name
//   - joints: the joint nodes, in the order vertex joint indices refer to them
//   - inverseBind: per-joint inverse bind matrices
//
// Returns:
//   - *Skin: the new skin with an identity palette
func NewSkin(name string, joints []*Node, inverseBind []mgl32.Mat4) *Skin {
	s := &Skin{
		name:        name,
		joints:      joints,
		inverseBind: make([]mgl32.Mat4, len(joints)),
		palette:     make([]mgl32.Mat4, len(joints)),
	}
	for i := range joints {
		s.inverseBind[i] = mgl32.Ident4()
		if i < len(inverseBind) {
			s.inverseBind[i] = inverseBind[i]
		}
		s.palette[i] = mgl32.Ident4()
	}
	return s
}

func (s *Skin) Name() string {
	return s.name
}

func (s *Skin) Joints() []*Node {
	return s.joints
}

func (s *Skin) InverseBind() []mgl32.Mat4 {
	return s.inverseBind
}

// Update recomputes the palette from the joints' world matrices:
// inverse(meshWorld) * jointWorld * inverseBind.
//
// Parameters:
//   - meshWorld: world matrix of the node carrying the skinned mesh
func (s *Skin) Update(meshWorld mgl32.Mat4) {
	toMesh := meshWorld.Inv()
	for i, j := range s.joints {
		if j == nil {
			s.palette[i] = mgl32.Ident4()
			continue
		}
		s.palette[i] = toMesh.Mul4(j.WorldMatrix()).Mul4(s.inverseBind[i])
	}
}

// Palette returns the joint matrices computed by the last Update.
func (s *Skin) Palette() []mgl32.Mat4 {
	return s.palette
}
