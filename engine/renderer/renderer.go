package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	bgp "github.com/Carmen-Shannon/oxy-showcase/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceUnsized is returned by Render while the surface has a zero dimension.
var ErrSurfaceUnsized = errors.New("render surface has zero size")

// ErrReleased is returned by Render after Release.
var ErrReleased = errors.New("renderer released")

// Bind group indices used by the mesh pipeline.
const (
	groupFrame    = 0
	groupNode     = 1
	groupMaterial = 2
)

// staleFrames is how many frames a cached provider may go undrawn before its buffers are freed.
const staleFrames = 120

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	log *logger.Logger

	width    int
	height   int
	frame    uint64
	released bool

	backendType RendererBackendType
	backend     RendererBackend

	meshPipeline  pipeline.Pipeline
	gizmoPipeline pipeline.Pipeline

	frameProvider bgp.BindGroupProvider
	primitives    map[*model.Primitive]bgp.BindGroupProvider
	nodes         map[*scene.Node]bgp.BindGroupProvider
	materials     map[material.Material]bgp.BindGroupProvider

	gizmo         gizmo.ViewportGizmo
	gizmoProvider bgp.BindGroupProvider
	gizmoCapacity int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer draws a scene through a camera into the window surface.
//
// The Renderer owns the GPU device and the swapchain. Each Render call uploads
// the camera and light buffers, draws every mesh-carrying node of the scene
// with its world matrix and joint palette, overlays the viewport gizmo when one
// is set, and presents the frame. GPU buffers for primitives, nodes and
// materials are created on first draw and freed once they stop being drawn.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the configured surface size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Render draws one frame of s as seen by cam and presents it.
	// Surface acquisition failures are returned; the frame is skipped.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to view through
	//
	// Returns:
	//   - error: error if the frame could not be produced
	Render(s scene.Scene, cam camera.Camera) error

	// SetGizmo sets the viewport gizmo drawn over each frame. Nil removes it.
	//
	// Parameters:
	//   - g: the gizmo to overlay
	SetGizmo(g gizmo.ViewportGizmo)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees GPU resources. Later calls are no-ops and Render returns ErrReleased.
	Release()
}

var _ Renderer = &renderer{}
var _ scene.Surface = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type bound to the window's surface.
// The mesh and gizmo pipelines are compiled before it returns.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window whose surface descriptor and size seed the backend
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	if win == nil {
		panic("renderer.NewRenderer: window is required")
	}
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if err := r.init(win.Width(), win.Height()); err != nil {
		panic(fmt.Sprintf("renderer.NewRenderer: %v", err))
	}
	return r
}

// newRenderer applies options first so config flags (e.g. forceFallbackAdapter)
// are available before the backend requests a GPU adapter.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		log:         logger.NewNop(),
		backendType: backendType,
		primitives:  make(map[*model.Primitive]bgp.BindGroupProvider),
		nodes:       make(map[*scene.Node]bgp.BindGroupProvider),
		materials:   make(map[material.Material]bgp.BindGroupProvider),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init configures the surface, registers both pipelines and creates the frame bind group.
func (r *renderer) init(width, height int) error {
	mode := PresentModeVSync
	if r.pendingPresentMode != nil {
		mode = *r.pendingPresentMode
	}
	r.backend.SetPresentMode(mode)

	// Pipelines need the surface format, so a minimized window still gets a
	// 1x1 surface; Render reports ErrSurfaceUnsized until the first real Resize.
	if width <= 0 || height <= 0 {
		r.backend.ConfigureSurface(1, 1)
	} else {
		r.Resize(width, height)
	}

	var err error
	r.meshPipeline, err = r.registerPipeline("mesh", shader.AssetMesh, "vs_mesh", "fs_mesh")
	if err != nil {
		return err
	}
	r.gizmoPipeline, err = r.registerPipeline("gizmo", shader.AssetGizmo, "vs_gizmo", "fs_gizmo",
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionAlways),
	)
	if err != nil {
		return err
	}

	r.frameProvider = bgp.NewBindGroupProvider("frame",
		bgp.WithBindGroupLayout(r.meshPipeline.BindGroupLayout(groupFrame)))
	if err := r.backend.InitBindGroup(r.frameProvider, r.meshPipeline.BindGroupLayoutDescriptors()[groupFrame]); err != nil {
		return fmt.Errorf("frame bind group: %w", err)
	}

	r.log.Infow("renderer ready", "present_mode", mode.String(), "fallback_adapter", r.forceFallbackAdapter)
	return nil
}

func (r *renderer) registerPipeline(key, asset, vsKey, fsKey string, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, error) {
	vs, err := shader.LoadAsset(vsKey, shader.ShaderTypeVertex, asset)
	if err != nil {
		return nil, err
	}
	fs, err := shader.LoadAsset(fsKey, shader.ShaderTypeFragment, asset)
	if err != nil {
		return nil, err
	}
	p := pipeline.NewPipeline(key, append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, opts...)...)
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", key, err)
	}
	return p, nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetGizmo(g gizmo.ViewportGizmo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gizmo = g
}

// draw is one indexed draw: a primitive's buffers with its frame, node and material groups.
type draw struct {
	mesh   bgp.BindGroupProvider
	groups []bgp.BindGroupProvider
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	released, w, h := r.released, r.width, r.height
	g := r.gizmo
	r.mu.Unlock()
	if released {
		return ErrReleased
	}
	if w == 0 || h == 0 {
		return ErrSurfaceUnsized
	}
	r.frame++

	uniform := cam.Uniform()
	writes := []bgp.BufferWrite{
		{Provider: r.frameProvider, Binding: 0, Data: uniform.Marshal()},
		{Provider: r.frameProvider, Binding: 1, Data: light.MarshalLights(s.Lights())},
	}

	var draws []draw
	for _, item := range scene.DrawList(s.Root()) {
		node, err := r.nodeProvider(item.Node)
		if err != nil {
			return err
		}
		data := model.GPUModelData{Model: item.World, JointCount: uint32(min(len(item.Joints), model.MaxJoints))}
		writes = append(writes, bgp.BufferWrite{Provider: node, Binding: 0, Data: data.Marshal()})
		if len(item.Joints) > 0 {
			writes = append(writes, bgp.BufferWrite{Provider: node, Binding: 1, Data: model.MarshalJoints(item.Joints)})
		}

		for _, prim := range item.Mesh.Primitives {
			mesh, err := r.primitiveProvider(prim)
			if err != nil {
				return err
			}
			mat, err := r.materialProvider(prim.MaterialOrDefault())
			if err != nil {
				return err
			}
			draws = append(draws, draw{mesh: mesh, groups: []bgp.BindGroupProvider{r.frameProvider, node, mat}})
		}
	}

	if err := r.backend.WriteBuffers(writes); err != nil {
		return fmt.Errorf("failed to upload frame buffers: %w", err)
	}
	if err := r.backend.BeginFrame(s.Background()); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	for _, d := range draws {
		r.backend.DrawCall(r.meshPipeline, d.mesh, d.groups)
	}
	if err := r.drawGizmo(g); err != nil {
		r.log.Warnw("gizmo overlay skipped", "error", err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	r.backend.Present()

	r.evictStale()
	return nil
}

func (r *renderer) nodeProvider(n *scene.Node) (bgp.BindGroupProvider, error) {
	if p, ok := r.nodes[n]; ok {
		p.MarkUsed(r.frame)
		return p, nil
	}
	p := bgp.NewBindGroupProvider("node:"+n.Name(), bgp.WithBindGroupLayout(r.meshPipeline.BindGroupLayout(groupNode)))
	if err := r.backend.InitBindGroup(p, r.meshPipeline.BindGroupLayoutDescriptors()[groupNode]); err != nil {
		p.Release()
		return nil, fmt.Errorf("node %q bind group: %w", n.Name(), err)
	}
	p.MarkUsed(r.frame)
	r.nodes[n] = p
	return p, nil
}

func (r *renderer) primitiveProvider(prim *model.Primitive) (bgp.BindGroupProvider, error) {
	if p, ok := r.primitives[prim]; ok {
		p.MarkUsed(r.frame)
		return p, nil
	}
	p := bgp.NewBindGroupProvider(fmt.Sprintf("primitive:%d", len(r.primitives)))
	if err := r.backend.InitMeshBuffers(p, model.MarshalVertices(prim.Vertices), model.MarshalIndices(prim.Indices), len(prim.Indices)); err != nil {
		p.Release()
		return nil, fmt.Errorf("primitive buffers: %w", err)
	}
	p.MarkUsed(r.frame)
	r.primitives[prim] = p
	return p, nil
}

// materialProvider creates the material's bind group and writes its parameters once;
// materials are immutable.
func (r *renderer) materialProvider(m material.Material) (bgp.BindGroupProvider, error) {
	if p, ok := r.materials[m]; ok {
		p.MarkUsed(r.frame)
		return p, nil
	}
	p := bgp.NewBindGroupProvider("material:"+m.Name(), bgp.WithBindGroupLayout(r.meshPipeline.BindGroupLayout(groupMaterial)))
	if err := r.backend.InitBindGroup(p, r.meshPipeline.BindGroupLayoutDescriptors()[groupMaterial]); err != nil {
		p.Release()
		return nil, fmt.Errorf("material %q bind group: %w", m.Name(), err)
	}
	params := m.GPU()
	if err := r.backend.WriteBuffers([]bgp.BufferWrite{{Provider: p, Binding: 0, Data: params.Marshal()}}); err != nil {
		p.Release()
		return nil, fmt.Errorf("material %q params: %w", m.Name(), err)
	}
	p.MarkUsed(r.frame)
	r.materials[m] = p
	return p, nil
}

func (r *renderer) drawGizmo(g gizmo.ViewportGizmo) error {
	if g == nil {
		return nil
	}
	x, y, size := g.Viewport()
	if size <= 0 {
		return nil
	}
	vertices := g.Vertices()
	data := gizmo.MarshalVertices(vertices)

	if r.gizmoProvider != nil && len(data) > r.gizmoCapacity {
		r.gizmoProvider.Release()
		r.gizmoProvider = nil
	}
	if r.gizmoProvider == nil {
		p := bgp.NewBindGroupProvider("gizmo")
		if err := r.backend.InitMeshBuffers(p, data, nil, len(vertices)); err != nil {
			p.Release()
			return err
		}
		r.gizmoProvider, r.gizmoCapacity = p, len(data)
	} else if err := r.backend.WriteVertexBuffer(r.gizmoProvider, data); err != nil {
		return err
	}

	r.backend.DrawOverlay(r.gizmoPipeline, r.gizmoProvider, len(vertices), x, y, size)
	return nil
}

// evictStale frees providers of nodes and primitives that left the scene.
func (r *renderer) evictStale() {
	if r.frame <= staleFrames {
		return
	}
	cutoff := r.frame - staleFrames
	for n, p := range r.nodes {
		if p.LastUsed() < cutoff {
			p.Release()
			delete(r.nodes, n)
		}
	}
	for prim, p := range r.primitives {
		if p.LastUsed() < cutoff {
			p.Release()
			delete(r.primitives, prim)
		}
	}
	for m, p := range r.materials {
		if p.LastUsed() < cutoff {
			p.Release()
			delete(r.materials, m)
		}
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return
	}
	r.released = true
	r.mu.Unlock()

	for _, p := range r.primitives {
		p.Release()
	}
	for _, p := range r.nodes {
		p.Release()
	}
	for _, p := range r.materials {
		p.Release()
	}
	clear(r.primitives)
	clear(r.nodes)
	clear(r.materials)
	if r.gizmoProvider != nil {
		r.gizmoProvider.Release()
		r.gizmoProvider = nil
	}
	if r.frameProvider != nil {
		r.frameProvider.Release()
	}
	for _, p := range []pipeline.Pipeline{r.meshPipeline, r.gizmoPipeline} {
		if p != nil {
			p.Release()
		}
	}
	r.backend.Release()
	r.log.Infow("renderer released")
}
