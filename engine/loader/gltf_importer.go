package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the node hierarchy with the material, mesh, skeleton and
// animation extractors to produce a Model.
type gltfImporter interface {
	// Import converts a parsed document into a Model.
	//
	// Parameters:
	//   - name: the model name, used for the root node
	//   - doc: the parsed glTF document
	//
	// Returns:
	//   - *Model: the node tree and clips
	//   - error: error if the document has no nodes or a mesh, skin or
	//     animation is malformed
	Import(name string, doc *gltf.Document) (*Model, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (i *gltfImporterImpl) Import(name string, doc *gltf.Document) (*Model, error) {
	if len(doc.Nodes) == 0 {
		return nil, errNoNodes
	}

	names := uniqueNodeNames(doc)
	materials := newGLTFMaterialExtractor(doc).ExtractAllMaterials()
	meshes := newGLTFMeshExtractor(doc, materials)
	result := &Model{Name: name}

	// glTF meshes may be instanced by several nodes; decode each once.
	decoded := make(map[int]*model.Mesh)
	nodes := make([]*scene.Node, len(doc.Nodes))
	for idx, n := range doc.Nodes {
		opts := transformOptions(n)
		if n.Mesh != nil {
			if box, ok := meshes.MeshBounds(*n.Mesh); ok {
				opts = append(opts, scene.WithBounds(box))
			}
			mesh, ok := decoded[*n.Mesh]
			if !ok {
				var err error
				mesh, err = meshes.ExtractMesh(*n.Mesh)
				if err != nil {
					return nil, fmt.Errorf("failed to extract mesh: %w", err)
				}
				decoded[*n.Mesh] = mesh
				result.SkippedPrimitives += mesh.Skipped
			}
			opts = append(opts, scene.WithMesh(mesh))
		}
		nodes[idx] = scene.NewNode(names[idx], opts...)
	}

	hasParent := make([]bool, len(doc.Nodes))
	for idx, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(nodes) || c == idx || hasParent[c] {
				continue
			}
			hasParent[c] = true
			nodes[idx].Add(nodes[c])
		}
	}

	root := scene.NewNode(name)
	for _, idx := range rootNodes(doc, hasParent) {
		if nodes[idx].Parent() == nil {
			root.Add(nodes[idx])
		}
	}

	skins := newGLTFSkeletonExtractor(doc, nodes)
	for idx, n := range doc.Nodes {
		if n.Skin == nil || nodes[idx].Mesh() == nil {
			continue
		}
		skin, err := skins.ExtractSkin(*n.Skin)
		if errors.Is(err, errTooManyJoints) {
			result.SkippedSkins++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to extract skin: %w", err)
		}
		nodes[idx].SetSkin(skin)
		skin.Update(nodes[idx].WorldMatrix())
	}

	clips, err := newGLTFAnimationExtractor(doc, names).ExtractAllAnimations()
	if err != nil {
		return nil, fmt.Errorf("failed to extract animations: %w", err)
	}
	result.Root = root
	result.Clips = clips
	return result, nil
}

// uniqueNodeNames gives every node a distinct name so animation channels can
// resolve their targets by name. Unnamed nodes become node_<index>.
func uniqueNodeNames(doc *gltf.Document) []string {
	names := make([]string, len(doc.Nodes))
	seen := make(map[string]bool, len(doc.Nodes))
	for idx, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", idx)
		}
		if seen[name] {
			name = fmt.Sprintf("%s_%d", name, idx)
		}
		seen[name] = true
		names[idx] = name
	}
	return names
}

// rootNodes returns the node indices of the default scene, or every parentless
// node when the document declares no scenes.
func rootNodes(doc *gltf.Document, hasParent []bool) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			sceneIdx = *doc.Scene
		}
		var out []int
		for _, idx := range doc.Scenes[sceneIdx].Nodes {
			if idx >= 0 && idx < len(hasParent) {
				out = append(out, idx)
			}
		}
		return out
	}
	var out []int
	for idx, parented := range hasParent {
		if !parented {
			out = append(out, idx)
		}
	}
	return out
}

// transformOptions maps a glTF node's local transform onto node options.
// A non-identity matrix wins over TRS. Zero-valued rotation and scale are the
// unset defaults and map to identity.
func transformOptions(n *gltf.Node) []scene.NodeBuilderOption {
	if n.Matrix != [16]float64{} && n.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return []scene.NodeBuilderOption{scene.WithMatrix(m)}
	}

	var opts []scene.NodeBuilderOption
	if n.Translation != [3]float64{} {
		opts = append(opts, scene.WithTranslation(mgl32.Vec3{
			float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]),
		}))
	}
	if n.Rotation != [4]float64{} {
		q := mgl32.Quat{
			W: float32(n.Rotation[3]),
			V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
		}
		opts = append(opts, scene.WithRotation(q.Normalize()))
	}
	if n.Scale != [3]float64{} {
		opts = append(opts, scene.WithScale(mgl32.Vec3{
			float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]),
		}))
	}
	return opts
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
