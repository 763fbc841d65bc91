package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	bgp "github.com/Carmen-Shannon/oxy-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawRecord struct {
	pipeline string
	mesh     bgp.BindGroupProvider
	groups   []bgp.BindGroupProvider
}

type overlayRecord struct {
	vertexCount, x, y, size int
}

type fakeBackend struct {
	pipelines     []string
	meshInits     int
	bindGroups    int
	writes        []bgp.BufferWrite
	vertexWrites  int
	draws         []drawRecord
	overlays      []overlayRecord
	frames        int
	beginErr      error
	releases      int
	configuredW   int
	configuredH   int
	presentMode   PresentMode
	initBindGroup func(p bgp.BindGroupProvider) error
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configuredW, f.configuredH = width, height
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) {
	f.presentMode = mode
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.pipelines = append(f.pipelines, p.PipelineKey())
	p.SetRenderPipeline(nil, map[int]*wgpu.BindGroupLayout{})
	return nil
}

func (f *fakeBackend) InitMeshBuffers(p bgp.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.meshInits++
	p.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) InitBindGroup(p bgp.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups++
	if f.initBindGroup != nil {
		return f.initBindGroup(p)
	}
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bgp.BufferWrite) error {
	f.writes = append(f.writes, writes...)
	return nil
}

func (f *fakeBackend) WriteVertexBuffer(p bgp.BindGroupProvider, data []byte) error {
	f.vertexWrites++
	return nil
}

func (f *fakeBackend) BeginFrame(background common.Color) error {
	return f.beginErr
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, mesh bgp.BindGroupProvider, groups []bgp.BindGroupProvider) {
	f.draws = append(f.draws, drawRecord{pipeline: p.PipelineKey(), mesh: mesh, groups: groups})
}

func (f *fakeBackend) DrawOverlay(p pipeline.Pipeline, mesh bgp.BindGroupProvider, vertexCount, x, y, size int) {
	f.overlays = append(f.overlays, overlayRecord{vertexCount, x, y, size})
}

func (f *fakeBackend) EndFrame() error {
	f.frames++
	return nil
}

func (f *fakeBackend) Present() {}

func (f *fakeBackend) Release() {
	f.releases++
}

type fakeGizmo struct {
	vertices []gizmo.GPUGizmoVertex
}

func (g *fakeGizmo) Size() int { return 100 }
func (g *fakeGizmo) Resize(width, height int) {}
func (g *fakeGizmo) Viewport() (int, int, int) { return 690, 10, 100 }
func (g *fakeGizmo) AxisAt(x, y float64) (gizmo.Axis, bool) { return 0, false }
func (g *fakeGizmo) PointerDown(x, y float64, now time.Duration) bool { return false }
func (g *fakeGizmo) Animating() bool { return false }
func (g *fakeGizmo) Vertices() []gizmo.GPUGizmoVertex { return g.vertices }

func newTestRenderer(t *testing.T, backend *fakeBackend) *renderer {
	t.Helper()
	r := newRenderer(BackendTypeWGPU)
	r.backend = backend
	require.NoError(t, r.init(800, 600))
	return r
}

func triangle(m material.Material) *model.Primitive {
	return &model.Primitive{
		Vertices: []model.GPUSkinnedVertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Indices:  []uint32{0, 1, 2},
		Material: m,
	}
}

func testScene(nodes ...*scene.Node) scene.Scene {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 10}))
	s := scene.NewScene(cam)
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

func modelWrites(writes []bgp.BufferWrite, p bgp.BindGroupProvider, binding int) []bgp.BufferWrite {
	var out []bgp.BufferWrite
	for _, w := range writes {
		if w.Provider == p && w.Binding == binding {
			out = append(out, w)
		}
	}
	return out
}

func TestInitRegistersPipelinesAndFrameGroup(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	assert.Equal(t, []string{"mesh", "gizmo"}, backend.pipelines)
	assert.Equal(t, 1, backend.bindGroups)
	assert.Equal(t, 800, backend.configuredW)
	assert.Equal(t, PresentModeVSync, backend.presentMode)
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, r.gizmoPipeline.Topology())
	assert.Equal(t, wgpu.CompareFunctionAlways, r.gizmoPipeline.DepthCompare())
}

func TestInitWithMinimizedWindowStaysUnsized(t *testing.T) {
	backend := &fakeBackend{}
	r := newRenderer(BackendTypeWGPU)
	r.backend = backend
	require.NoError(t, r.init(0, 0))

	assert.Equal(t, 1, backend.configuredW)
	assert.ErrorIs(t, r.Render(testScene(), camera.NewCamera()), ErrSurfaceUnsized)
}

func TestRenderDrawsEveryPrimitiveWithWorldMatrix(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	paint := material.NewMaterial("Paint")
	mesh := &model.Mesh{Name: "Body", Primitives: []*model.Primitive{triangle(paint), triangle(nil)}}
	child := scene.NewNode("Arm", scene.WithMesh(mesh), scene.WithTranslation(mgl32.Vec3{0, 3, 0}))
	root := scene.NewNode("Danon", scene.WithMesh(mesh), scene.WithTranslation(mgl32.Vec3{2, 0, 0}), scene.WithChildren(child))
	s := testScene(root)

	require.NoError(t, r.Render(s, s.Camera()))
	require.Len(t, backend.draws, 4)
	assert.Equal(t, 1, backend.frames)

	for _, d := range backend.draws {
		assert.Equal(t, "mesh", d.pipeline)
		require.Len(t, d.groups, 3)
		assert.Same(t, r.frameProvider, d.groups[groupFrame])
		assert.Equal(t, 3, d.mesh.IndexCount())
	}
	assert.Equal(t, "material:Paint", backend.draws[0].groups[groupMaterial].Label())
	assert.Equal(t, "material:default", backend.draws[1].groups[groupMaterial].Label())

	childNode := backend.draws[2].groups[groupNode]
	assert.Equal(t, "node:Arm", childNode.Label())
	writes := modelWrites(backend.writes, childNode, 0)
	require.Len(t, writes, 1)
	world := child.WorldMatrix()
	data := model.GPUModelData{Model: world}
	assert.Equal(t, data.Marshal(), writes[0].Data)
	assert.Equal(t, float32(2), world.Col(3)[0])
	assert.Equal(t, float32(3), world.Col(3)[1])
}

func TestRenderReusesProvidersAcrossFrames(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	mesh := &model.Mesh{Primitives: []*model.Primitive{triangle(nil)}}
	s := testScene(scene.NewNode("A", scene.WithMesh(mesh)), scene.NewNode("B", scene.WithMesh(mesh)))

	for range 3 {
		require.NoError(t, r.Render(s, s.Camera()))
	}
	assert.Len(t, backend.draws, 6)
	assert.Equal(t, 1, backend.meshInits, "one shared primitive")
	// frame + two nodes + one material
	assert.Equal(t, 4, backend.bindGroups)
}

func TestRenderUploadsJointPaletteForSkinnedNodes(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	prim := triangle(nil)
	prim.Skinned = true
	bone := scene.NewNode("Bone", scene.WithTranslation(mgl32.Vec3{0, 2, 0}))
	body := scene.NewNode("Body", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{prim}}))
	body.SetSkin(scene.NewSkin("rig", []*scene.Node{bone}, nil))
	body.Skin().Update(body.WorldMatrix())
	s := testScene(scene.NewNode("Model", scene.WithChildren(body, bone)))

	require.NoError(t, r.Render(s, s.Camera()))
	require.Len(t, backend.draws, 1)
	node := backend.draws[0].groups[groupNode]

	joints := modelWrites(backend.writes, node, 1)
	require.Len(t, joints, 1)
	assert.Equal(t, model.MarshalJoints(body.Skin().Palette()), joints[0].Data)

	data := modelWrites(backend.writes, node, 0)
	require.Len(t, data, 1)
	expected := model.GPUModelData{Model: body.WorldMatrix(), JointCount: 1}
	assert.Equal(t, expected.Marshal(), data[0].Data)
}

func TestRenderStaticNodeSkipsJointUpload(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	s := testScene(scene.NewNode("Rock", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{triangle(nil)}})))
	require.NoError(t, r.Render(s, s.Camera()))
	assert.Empty(t, modelWrites(backend.writes, backend.draws[0].groups[groupNode], 1))
}

func TestRenderWritesMaterialParamsOnce(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	red := material.NewMaterial("Red", material.WithBaseColor([4]float32{1, 0, 0, 1}))
	s := testScene(scene.NewNode("A", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{triangle(red)}})))
	require.NoError(t, r.Render(s, s.Camera()))
	require.NoError(t, r.Render(s, s.Camera()))

	params := modelWrites(backend.writes, backend.draws[0].groups[groupMaterial], 0)
	require.Len(t, params, 1)
	gpu := red.GPU()
	assert.Equal(t, gpu.Marshal(), params[0].Data)
}

func TestRenderDrawsGizmoOverlay(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	r.SetGizmo(&fakeGizmo{vertices: make([]gizmo.GPUGizmoVertex, 54)})

	s := testScene()
	require.NoError(t, r.Render(s, s.Camera()))
	require.NoError(t, r.Render(s, s.Camera()))

	require.Len(t, backend.overlays, 2)
	assert.Equal(t, overlayRecord{vertexCount: 54, x: 690, y: 10, size: 100}, backend.overlays[0])
	assert.Equal(t, 1, backend.meshInits)
	assert.Equal(t, 1, backend.vertexWrites)
}

func TestRenderBeginFailureSkipsDraws(t *testing.T) {
	backend := &fakeBackend{beginErr: errors.New("surface lost")}
	r := newTestRenderer(t, backend)

	s := testScene(scene.NewNode("A", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{triangle(nil)}})))
	err := r.Render(s, s.Camera())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface lost")
	assert.Empty(t, backend.draws)
	assert.Zero(t, backend.frames)
}

func TestRenderBindGroupFailureIsReturned(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)
	backend.initBindGroup = func(p bgp.BindGroupProvider) error {
		return errors.New("out of memory")
	}

	s := testScene(scene.NewNode("A", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{triangle(nil)}})))
	err := r.Render(s, s.Camera())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `node "A"`)
	assert.Empty(t, r.nodes)
}

func TestRenderEvictsProvidersOfNodesNoLongerDrawn(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	first := testScene(scene.NewNode("Old", scene.WithMesh(&model.Mesh{Primitives: []*model.Primitive{triangle(nil)}})))
	require.NoError(t, r.Render(first, first.Camera()))
	require.Len(t, r.nodes, 1)

	empty := testScene()
	for range staleFrames + 1 {
		require.NoError(t, r.Render(empty, empty.Camera()))
	}
	assert.Empty(t, r.nodes)
	assert.Empty(t, r.primitives)
	assert.Empty(t, r.materials)
}

func TestReleaseIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	r.Release()
	r.Release()
	assert.Equal(t, 1, backend.releases)

	s := testScene()
	assert.ErrorIs(t, r.Render(s, s.Camera()), ErrReleased)
}
