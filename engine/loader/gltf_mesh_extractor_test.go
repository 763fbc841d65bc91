package loader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadDocument holds one indexed quad with a red material, one
// Draco-style primitive without a buffer view and one line primitive.
func quadDocument() *gltf.Document {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         3,
		Min:           []float64{-5, -5, -5},
		Max:           []float64{5, 5, 5},
	})
	compressed := len(doc.Accessors) - 1
	red := [4]float64{1, 0, 0, 1}
	doc.Materials = []*gltf.Material{{
		Name:                 "Paint",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &red},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "Quad",
		Primitives: []*gltf.Primitive{
			{Attributes: map[string]int{gltf.POSITION: pos}, Indices: intPtr(idx), Material: intPtr(0)},
			{Attributes: map[string]int{gltf.POSITION: compressed}},
			{Attributes: map[string]int{gltf.POSITION: pos}, Mode: gltf.PrimitiveLines},
		},
	}}
	doc.Nodes = []*gltf.Node{{Name: "Panel", Mesh: intPtr(0)}}
	return doc
}

func TestExtractMeshDecodesTriangles(t *testing.T) {
	doc := quadDocument()
	materials := newGLTFMaterialExtractor(doc).ExtractAllMaterials()
	mesh, err := newGLTFMeshExtractor(doc, materials).ExtractMesh(0)
	require.NoError(t, err)

	assert.Equal(t, "Quad", mesh.Name)
	assert.Equal(t, 2, mesh.Skipped, "compressed and line primitives are skipped")
	require.Len(t, mesh.Primitives, 1)

	prim := mesh.Primitives[0]
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, prim.Indices)
	require.Len(t, prim.Vertices, 4)
	assert.Equal(t, [3]float32{1, 1, 0}, prim.Vertices[2].Position)
	assert.InDelta(t, 1, prim.Vertices[0].Normal[2], 1e-6, "normals are generated when absent")
	assert.False(t, prim.Skinned)
	assert.Equal(t, "Paint", prim.MaterialOrDefault().Name())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, prim.MaterialOrDefault().BaseColor())
}

func TestExtractMeshRejectsOutOfRangeIndices(t *testing.T) {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 7})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{
		{Attributes: map[string]int{gltf.POSITION: pos}, Indices: intPtr(idx)},
	}}}

	_, err := newGLTFMeshExtractor(doc, nil).ExtractMesh(0)
	assert.ErrorIs(t, err, errIndexOutOfRange)
}

func TestExtractMeshNonIndexedUsesSequentialIndices(t *testing.T) {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {9, 9, 9}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos}}}}}

	mesh, err := newGLTFMeshExtractor(doc, nil).ExtractMesh(0)
	require.NoError(t, err)
	require.Len(t, mesh.Primitives, 1)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Primitives[0].Indices)
	assert.Same(t, material.Default(), mesh.Primitives[0].MaterialOrDefault())
}

func TestImportAttachesMeshesAndCountsSkips(t *testing.T) {
	m, err := newGLTFImporter().Import("panel", quadDocument())
	require.NoError(t, err)

	panel := m.Root.Find("Panel")
	require.NotNil(t, panel)
	require.NotNil(t, panel.Mesh())
	assert.Len(t, panel.Mesh().Primitives, 1)
	assert.Equal(t, 2, m.SkippedPrimitives)
}

// armDocument is a two-joint arm: a skinned mesh node and a chain of
// shoulder and elbow joints, with an animation lifting the elbow.
func armDocument(jointCount int) *gltf.Document {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	joints := modeler.WriteJoints(doc, [][4]uint8{{0, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}})
	weights := modeler.WriteWeights(doc, [][4]float32{{1, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}})
	doc.Meshes = []*gltf.Mesh{{Name: "ArmMesh", Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: pos, gltf.JOINTS_0: joints, gltf.WEIGHTS_0: weights},
	}}}}

	inverse := [][4][4]float32{
		{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}},
		{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {-1, 0, 0, 1}},
	}
	ibm := modeler.WriteAccessor(doc, gltf.TargetNone, inverse)

	skinJoints := []int{1, 2}
	for len(skinJoints) < jointCount {
		skinJoints = append(skinJoints, 2)
	}
	doc.Skins = []*gltf.Skin{{Name: "Rig", Joints: skinJoints, InverseBindMatrices: intPtr(ibm)}}
	doc.Nodes = []*gltf.Node{
		{Name: "Arm", Mesh: intPtr(0), Skin: intPtr(0)},
		{Name: "Shoulder", Children: []int{2}},
		{Name: "Elbow", Translation: [3]float64{1, 0, 0}},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0, 1}}}

	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	lifts := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{1, 0, 0}, {1, 2, 0}})
	doc.Animations = []*gltf.Animation{{
		Name:     "Lift",
		Samplers: []*gltf.AnimationSampler{{Input: times, Output: lifts}},
		Channels: []*gltf.Channel{{Sampler: 0, Target: gltf.ChannelTarget{Node: intPtr(2), Path: gltf.TRSTranslation}}},
	}}
	return doc
}

func TestImportBindsSkinInBindPose(t *testing.T) {
	m, err := newGLTFImporter().Import("arm", armDocument(2))
	require.NoError(t, err)

	arm := m.Root.Find("Arm")
	require.NotNil(t, arm)
	require.NotNil(t, arm.Skin())
	assert.Equal(t, "Rig", arm.Skin().Name())
	assert.Same(t, m.Root.Find("Elbow"), arm.Skin().Joints()[1])
	assert.True(t, arm.Mesh().IsSkinned())
	assert.Equal(t, [4]uint32{1, 0, 0, 0}, arm.Mesh().Primitives[0].Vertices[1].Joints)

	for i, p := range arm.Skin().Palette() {
		assert.True(t, p.ApproxEqualThreshold(mgl32.Ident4(), 1e-5), "joint %d starts at identity", i)
	}
}

func TestImportedSkinFollowsAnimation(t *testing.T) {
	m, err := newGLTFImporter().Import("arm", armDocument(2))
	require.NoError(t, err)

	mixer := animation.NewMixer(m.Root)
	animation.PlayAll(mixer, m.Clips)
	mixer.Update(0.5)

	elbow := m.Root.Find("Arm").Skin().Palette()[1]
	assert.InDelta(t, 1, elbow.Col(3)[1], 1e-5, "elbow joint lifted halfway")
}

func TestImportLeavesOversizedSkinUnbound(t *testing.T) {
	doc := armDocument(129)
	doc.Skins[0].InverseBindMatrices = nil

	m, err := newGLTFImporter().Import("arm", doc)
	require.NoError(t, err)
	assert.Nil(t, m.Root.Find("Arm").Skin())
	assert.Equal(t, 1, m.SkippedSkins)
}
