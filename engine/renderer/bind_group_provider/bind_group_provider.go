// Package bind_group_provider holds the GPU objects that back one bind group:
// its uniform and storage buffers, and for drawable primitives the vertex and
// index buffers drawn with it.
package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int

	lastUsed uint64
}

// BindGroupProvider owns the buffers and bind group for one resource set. The
// layout is borrowed from the pipeline that created it and is not released here.
type BindGroupProvider interface {
	// Release frees the bind group and every owned buffer.
	Release()

	// Label returns the debug label.
	//
	// Returns:
	//   - string: the label used for GPU object names
	Label() string

	// BindGroup returns the GPU bind group, nil until created.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group is created against.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the borrowed layout
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer bound at binding, nil if unset.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the bound buffer
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every bound buffer keyed by binding.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: the buffers
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the vertex buffer of a drawable provider.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the uint32 index buffer of a drawable provider.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns how many indices DrawIndexed consumes.
	IndexCount() int

	// SetBindGroup attaches the created bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer attaches a buffer at a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer attaches the vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer attaches the index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices to draw.
	SetIndexCount(count int)

	// MarkUsed records the frame in which the provider was last drawn.
	//
	// Parameters:
	//   - frame: the renderer's frame counter
	MarkUsed(frame uint64)

	// LastUsed returns the frame passed to the last MarkUsed call.
	//
	// Returns:
	//   - uint64: the frame counter, 0 if never drawn
	LastUsed() uint64
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider with the given label and options applied.
//
// Parameters:
//   - label: a debug label for the GPU objects
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) MarkUsed(frame uint64) {
	p.lastUsed = frame
}

func (p *bindGroupProvider) LastUsed() uint64 {
	return p.lastUsed
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
