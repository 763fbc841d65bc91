package loader

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// trainDocument builds a two-node model: a body with a mesh and an unnamed
// wheel child, plus one animation moving the wheel.
func trainDocument() *gltf.Document {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{-1, 0, -2}, {1, 3, 2}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "BodyMesh",
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos}}},
	}}
	doc.Nodes = []*gltf.Node{
		{
			Name:        "Body",
			Mesh:        intPtr(0),
			Children:    []int{1},
			Translation: [3]float64{0, 0, 5},
		},
		{
			Translation: [3]float64{0, -1, 0},
			Scale:       [3]float64{2, 2, 2},
		},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc.Scene = intPtr(0)

	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 2})
	moves := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, -1, 0}, {0, -1, 4}})
	turns := modeler.WriteAccessor(doc, gltf.TargetNone, [][4]float32{{0, 0, 0, 1}, {0, 1, 0, 0}})
	doc.Animations = []*gltf.Animation{{
		Name: "Roll",
		Samplers: []*gltf.AnimationSampler{
			{Input: times, Output: moves, Interpolation: gltf.InterpolationLinear},
			{Input: times, Output: turns, Interpolation: gltf.InterpolationStep},
		},
		Channels: []*gltf.Channel{
			{Sampler: 0, Target: gltf.ChannelTarget{Node: intPtr(1), Path: gltf.TRSTranslation}},
			{Sampler: 1, Target: gltf.ChannelTarget{Node: intPtr(1), Path: gltf.TRSRotation}},
			{Sampler: 0, Target: gltf.ChannelTarget{Node: intPtr(0), Path: gltf.TRSWeights}},
		},
	}}
	return doc
}

func TestImportBuildsHierarchyAndBounds(t *testing.T) {
	m, err := newGLTFImporter().Import("train", trainDocument())
	require.NoError(t, err)

	assert.Equal(t, "train", m.Name)
	assert.Equal(t, "train", m.Root.Name())
	require.Len(t, m.Root.Children(), 1)

	body := m.Root.Find("Body")
	require.NotNil(t, body)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, body.Translation())
	box, ok := body.LocalBounds()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-1, 0, -2}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 2}, box.Max)

	wheel := m.Root.Find("node_1")
	require.NotNil(t, wheel)
	assert.Same(t, body, wheel.Parent())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, wheel.Scale())
	assert.Equal(t, mgl32.QuatIdent(), wheel.Rotation())

	world := m.Root.WorldBounds()
	assert.InDelta(t, 5, world.Center()[2], 1e-5)
}

func TestImportExtractsClipsByNodeName(t *testing.T) {
	m, err := newGLTFImporter().Import("train", trainDocument())
	require.NoError(t, err)
	require.Len(t, m.Clips, 1)

	clip := m.Clips[0]
	assert.Equal(t, "Roll", clip.Name)
	assert.InDelta(t, 2, clip.Duration, 1e-6)
	require.Len(t, clip.Channels, 2, "weights channel is skipped")

	moves := clip.Channels[0]
	assert.Equal(t, "node_1", moves.Target)
	assert.Equal(t, animation.InterpolationLinear, moves.Interpolation)
	require.Len(t, moves.PositionKeys, 2)
	assert.Equal(t, mgl32.Vec3{0, -1, 4}, moves.PositionKeys[1].Value)
	assert.Empty(t, moves.RotationKeys)

	turns := clip.Channels[1]
	assert.Equal(t, "node_1", turns.Target)
	assert.Equal(t, animation.InterpolationStep, turns.Interpolation)
	require.Len(t, turns.RotationKeys, 2)
	assert.InDelta(t, 1, turns.RotationKeys[1].Value.V[1], 1e-6)
	assert.Empty(t, turns.ScaleKeys)
}

func TestImportClipsDriveTheMixer(t *testing.T) {
	m, err := newGLTFImporter().Import("train", trainDocument())
	require.NoError(t, err)

	mixer := animation.NewMixer(m.Root)
	animation.PlayAll(mixer, m.Clips)
	mixer.Update(1)

	wheel := m.Root.Find("node_1")
	assert.InDelta(t, 2, wheel.Translation()[2], 1e-5)
}

func TestImportCubicSplineKeepsKeyValues(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{{Name: "Arm"}}}
	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	values := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{
		{9, 9, 9}, {1, 1, 1}, {9, 9, 9},
		{9, 9, 9}, {2, 2, 2}, {9, 9, 9},
	})
	doc.Animations = []*gltf.Animation{{
		Samplers: []*gltf.AnimationSampler{{Input: times, Output: values, Interpolation: gltf.InterpolationCubicSpline}},
		Channels: []*gltf.Channel{{Sampler: 0, Target: gltf.ChannelTarget{Node: intPtr(0), Path: gltf.TRSScale}}},
	}}

	m, err := newGLTFImporter().Import("arm", doc)
	require.NoError(t, err)
	require.Len(t, m.Clips, 1)
	assert.Equal(t, "animation_0", m.Clips[0].Name)
	keys := m.Clips[0].Channels[0].ScaleKeys
	require.Len(t, keys, 2)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, keys[0].Value)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, keys[1].Value)
}

func TestImportWithoutScenesUsesParentlessNodes(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{
		{Name: "Left"},
		{Name: "Left"},
		{Name: "Hub", Children: []int{0}},
	}}

	m, err := newGLTFImporter().Import("loose", doc)
	require.NoError(t, err)

	var top []string
	for _, c := range m.Root.Children() {
		top = append(top, c.Name())
	}
	assert.ElementsMatch(t, []string{"Left_1", "Hub"}, top)
	assert.NotNil(t, m.Root.Find("Hub").Find("Left"))
}

func TestImportMatrixNode(t *testing.T) {
	m4 := mgl32.Translate3D(3, 4, 5).Mul4(mgl32.Scale3D(2, 2, 2))
	var matrix [16]float64
	for i, v := range m4 {
		matrix[i] = float64(v)
	}
	doc := &gltf.Document{Nodes: []*gltf.Node{{Name: "Box", Matrix: matrix}}}

	m, err := newGLTFImporter().Import("box", doc)
	require.NoError(t, err)
	node := m.Root.Find("Box")
	assert.Equal(t, mgl32.Vec3{3, 4, 5}, node.Translation())
	assert.InDelta(t, 2, node.Scale()[0], 1e-6)
}

func TestImportEmptyDocument(t *testing.T) {
	_, err := newGLTFImporter().Import("empty", &gltf.Document{})
	assert.ErrorIs(t, err, errNoNodes)
}

func TestDecodeModelFromGLBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.glb")
	require.NoError(t, gltf.SaveBinary(trainDocument(), path))

	m, err := DecodeModel(path)
	require.NoError(t, err)
	assert.Equal(t, "train", m.Name)
	assert.NotNil(t, m.Root.Find("Body"))
	require.Len(t, m.Clips, 1)
}

func TestDecodeModelErrors(t *testing.T) {
	_, err := DecodeModel("model.obj")
	assert.ErrorIs(t, err, ErrUnsupportedModelFormat)

	_, err = DecodeModel(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestImportNodeNamedLikeTheFileIsAnimatedNotTheRoot(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{{Name: "danon", Translation: [3]float64{0, 1, 0}}}}
	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	moves := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 1, 0}, {4, 1, 0}})
	doc.Animations = []*gltf.Animation{{
		Name:     "Walk",
		Samplers: []*gltf.AnimationSampler{{Input: times, Output: moves}},
		Channels: []*gltf.Channel{{Sampler: 0, Target: gltf.ChannelTarget{Node: intPtr(0), Path: gltf.TRSTranslation}}},
	}}

	m, err := newGLTFImporter().Import("danon", doc)
	require.NoError(t, err)
	require.Len(t, m.Root.Children(), 1)
	child := m.Root.Children()[0]
	assert.Equal(t, "danon", child.Name())

	mixer := animation.NewMixer(m.Root)
	animation.PlayAll(mixer, m.Clips)
	mixer.Update(0.5)

	assert.InDelta(t, 2, child.Translation()[0], 1e-5)
	assert.Equal(t, mgl32.Vec3{}, m.Root.Translation())
}
