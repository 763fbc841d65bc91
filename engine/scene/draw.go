package scene

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one mesh-carrying node as the renderer sees it for a frame.
type DrawItem struct {
	Node   *Node
	Mesh   *model.Mesh
	World  mgl32.Mat4
	Joints []mgl32.Mat4
}

// DrawList collects every node under n that carries decoded primitives, parents
// before children. Joints is the node's skin palette, or nil for static meshes.
//
// Parameters:
//   - n: the subtree root (nil yields an empty list)
//
// Returns:
//   - []DrawItem: the items to draw this frame
func DrawList(n *Node) []DrawItem {
	if n == nil {
		return nil
	}
	var out []DrawItem
	n.Traverse(func(node *Node) {
		if node.mesh == nil || len(node.mesh.Primitives) == 0 {
			return
		}
		item := DrawItem{Node: node, Mesh: node.mesh, World: node.WorldMatrix()}
		if node.skin != nil && node.mesh.IsSkinned() {
			item.Joints = node.skin.Palette()
		}
		out = append(out, item)
	})
	return out
}
