package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc       *gltf.Document
	materials []material.Material
}

// gltfMeshExtractor decodes glTF mesh geometry and derives local-space bounds.
// Primitives whose vertex data is not stored in a plain buffer view (such as
// Draco-compressed ones) or that are not triangle lists are skipped and
// counted; they still report bounds as long as their POSITION accessor
// carries min/max.
type gltfMeshExtractor interface {
	// ExtractMesh decodes every drawable primitive of a mesh.
	//
	// Parameters:
	//   - meshIndex: index into the document's meshes
	//
	// Returns:
	//   - *model.Mesh: the decoded primitives and the number skipped
	//   - error: error if the index is out of range or an accessor is malformed
	ExtractMesh(meshIndex int) (*model.Mesh, error)

	// MeshBounds returns the box enclosing every primitive of a mesh.
	//
	// Parameters:
	//   - meshIndex: index into the document's meshes
	//
	// Returns:
	//   - common.Box3: the local-space bounds
	//   - bool: false if the mesh has no usable POSITION data
	MeshBounds(meshIndex int) (common.Box3, bool)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor.
//
// Parameters:
//   - doc: the parsed document
//   - materials: converted materials indexed like the document's
//
// Returns:
//   - gltfMeshExtractor: the extractor
func newGLTFMeshExtractor(doc *gltf.Document, materials []material.Material) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{doc: doc, materials: materials}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) (*model.Mesh, error) {
	if meshIndex < 0 || meshIndex >= len(e.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	src := e.doc.Meshes[meshIndex]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}

	mesh := &model.Mesh{Name: name}
	for primIdx, prim := range src.Primitives {
		p, err := e.extractPrimitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", name, primIdx, err)
		}
		if p == nil {
			mesh.Skipped++
			continue
		}
		mesh.Primitives = append(mesh.Primitives, p)
	}
	return mesh, nil
}

// extractPrimitive returns nil without error for primitives that cannot be drawn.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltf.Primitive) (*model.Primitive, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	posAcr, err := accessorAt(e.doc, posIdx)
	if err != nil {
		return nil, err
	}
	if posAcr.BufferView == nil {
		return nil, nil
	}
	positions, err := readVec3s(e.doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	indices, err := e.readIndices(prim, len(positions))
	if err != nil {
		return nil, err
	}
	if len(indices) < 3 {
		return nil, nil
	}

	normals, err := e.readNormals(prim, len(positions))
	if err != nil {
		return nil, err
	}
	if normals == nil {
		normals = model.ComputeNormals(positions, indices)
	}

	vertices := make([]model.GPUSkinnedVertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = p
		vertices[i].Normal = normals[i]
	}

	skinned, err := e.readSkinWeights(prim, vertices)
	if err != nil {
		return nil, err
	}

	out := &model.Primitive{Vertices: vertices, Indices: indices, Skinned: skinned}
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(e.materials) {
		out.Material = e.materials[*prim.Material]
	}
	return out, nil
}

// readIndices reads the index accessor, or generates a sequential list for
// non-indexed primitives. Trailing indices that do not form a triangle are dropped.
func (e *gltfMeshExtractorImpl) readIndices(prim *gltf.Primitive, vertexCount int) ([]uint32, error) {
	var indices []uint32
	if prim.Indices == nil {
		indices = model.SequentialIndices(vertexCount)
	} else {
		acr, err := accessorAt(e.doc, *prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	}
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return nil, fmt.Errorf("%w: %d of %d vertices", errIndexOutOfRange, idx, vertexCount)
		}
	}
	return indices[:len(indices)-len(indices)%3], nil
}

// readNormals returns nil when the primitive has no usable NORMAL attribute.
func (e *gltfMeshExtractorImpl) readNormals(prim *gltf.Primitive, vertexCount int) ([]mgl32.Vec3, error) {
	idx, ok := prim.Attributes[gltf.NORMAL]
	if !ok {
		return nil, nil
	}
	normals, err := readVec3s(e.doc, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to read normals: %w", err)
	}
	if len(normals) != vertexCount {
		return nil, nil
	}
	return normals, nil
}

// readSkinWeights fills joint indices and weights from JOINTS_0 and WEIGHTS_0.
// Both must be present for the primitive to be skinned.
func (e *gltfMeshExtractorImpl) readSkinWeights(prim *gltf.Primitive, vertices []model.GPUSkinnedVertex) (bool, error) {
	jointIdx, hasJoints := prim.Attributes[gltf.JOINTS_0]
	weightIdx, hasWeights := prim.Attributes[gltf.WEIGHTS_0]
	if !hasJoints || !hasWeights {
		return false, nil
	}

	jointAcr, err := accessorAt(e.doc, jointIdx)
	if err != nil {
		return false, err
	}
	joints, err := modeler.ReadJoints(e.doc, jointAcr, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read joints: %w", err)
	}
	weightAcr, err := accessorAt(e.doc, weightIdx)
	if err != nil {
		return false, err
	}
	weights, err := modeler.ReadWeights(e.doc, weightAcr, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read weights: %w", err)
	}

	for i := range vertices {
		if i >= len(joints) || i >= len(weights) {
			break
		}
		for c := range 4 {
			if int(joints[i][c]) >= model.MaxJoints {
				return false, fmt.Errorf("%w: joint %d exceeds limit %d", errIndexOutOfRange, joints[i][c], model.MaxJoints)
			}
			vertices[i].Joints[c] = uint32(joints[i][c])
		}
		vertices[i].Weights = weights[i]
	}
	return true, nil
}

func (e *gltfMeshExtractorImpl) MeshBounds(meshIndex int) (common.Box3, bool) {
	if meshIndex < 0 || meshIndex >= len(e.doc.Meshes) {
		return common.EmptyBox(), false
	}
	box := common.EmptyBox()
	for _, prim := range e.doc.Meshes[meshIndex].Primitives {
		idx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		box = box.Union(e.positionBounds(idx))
	}
	return box, !box.IsEmpty()
}

// positionBounds prefers the accessor's declared min/max and falls back to
// scanning the vertex data.
func (e *gltfMeshExtractorImpl) positionBounds(index int) common.Box3 {
	acr, err := accessorAt(e.doc, index)
	if err != nil {
		return common.EmptyBox()
	}
	if len(acr.Min) >= 3 && len(acr.Max) >= 3 {
		return common.NewBox3(
			mgl32.Vec3{float32(acr.Min[0]), float32(acr.Min[1]), float32(acr.Min[2])},
			mgl32.Vec3{float32(acr.Max[0]), float32(acr.Max[1]), float32(acr.Max[2])},
		)
	}
	if acr.BufferView == nil {
		return common.EmptyBox()
	}
	positions, err := readVec3s(e.doc, index)
	if err != nil {
		return common.EmptyBox()
	}
	box := common.EmptyBox()
	for _, p := range positions {
		box = box.ExpandByPoint(p)
	}
	return box
}
