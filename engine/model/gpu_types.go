package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxJoints is the size of the per-node joint palette. Skins with more joints are rejected at import.
const MaxJoints = 128

// GPUSkinnedVertexSize is the byte stride of a marshalled GPUSkinnedVertex.
const GPUSkinnedVertexSize = 56

// GPUModelDataSize is the byte size of a marshalled GPUModelData.
const GPUModelDataSize = 80

// GPUJointBufferSize is the byte size of the joint palette produced by MarshalJoints.
const GPUJointBufferSize = MaxJoints * 64

// GPUSkinnedVertexSource is the WGSL vertex input matching GPUSkinnedVertex.
const GPUSkinnedVertexSource = `struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) joints: vec4<u32>,
    @location(3) weights: vec4<f32>,
};
`

// GPUModelDataSource is the WGSL declaration matching GPUModelData.
const GPUModelDataSource = `struct ModelData {
    model: mat4x4<f32>,
    joint_count: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
};
`

// GPUJointPaletteSource declares the joint storage buffer produced by
// MarshalJoints. The array length equals MaxJoints.
const GPUJointPaletteSource = `struct JointPalette {
    joints: array<mat4x4<f32>, 128>,
};
`

// GPUSkinnedVertex is the GPU-aligned representation of a single mesh vertex.
// Static meshes use the same layout; their joint data is ignored because the
// node's joint count is zero.
// Size: 56 bytes.
type GPUSkinnedVertex struct {
	Position [3]float32 // offset  0: model-space position (12 bytes)
	Normal   [3]float32 // offset 12: model-space normal (12 bytes)
	Joints   [4]uint32  // offset 24: indices into the skin's joint palette (16 bytes)
	Weights  [4]float32 // offset 40: blend weights, summing to 1 (16 bytes)
}

// Size returns the size of the GPUSkinnedVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSkinnedVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the vertex into a 56-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUSkinnedVertex) Marshal() []byte {
	buf := make([]byte, GPUSkinnedVertexSize)
	g.put(buf)
	return buf
}

func (g *GPUSkinnedVertex) put(buf []byte) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Normal[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[24+i*4:], g.Joints[i])
		binary.LittleEndian.PutUint32(buf[40+i*4:], math.Float32bits(g.Weights[i]))
	}
}

// MarshalVertices packs vertices back to back for a vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * GPUSkinnedVertexSize bytes
func MarshalVertices(vertices []GPUSkinnedVertex) []byte {
	buf := make([]byte, len(vertices)*GPUSkinnedVertexSize)
	for i := range vertices {
		vertices[i].put(buf[i*GPUSkinnedVertexSize:])
	}
	return buf
}

// MarshalIndices packs uint32 indices for an index buffer upload.
//
// Parameters:
//   - indices: the triangle list indices
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// GPUModelData is the per-node uniform: the world matrix and how many palette entries are live.
// Matches the WGSL ModelData struct layout exactly (see GPUModelDataSource).
// Size: 80 bytes.
type GPUModelData struct {
	Model      [16]float32 // offset  0: model-to-world transform (64 bytes)
	JointCount uint32      // offset 64: 0 disables skinning
	_pad       [3]uint32   // offset 68: padding to 80 bytes
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, GPUModelDataSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], g.JointCount)
	return buf
}

// MarshalJoints packs a joint palette into a buffer sized for MaxJoints matrices.
// Entries past MaxJoints are dropped.
//
// Parameters:
//   - joints: the skinning matrices
//
// Returns:
//   - []byte: GPUJointBufferSize bytes
func MarshalJoints(joints []mgl32.Mat4) []byte {
	buf := make([]byte, GPUJointBufferSize)
	for j := range min(len(joints), MaxJoints) {
		for i, v := range joints[j] {
			binary.LittleEndian.PutUint32(buf[j*64+i*4:], math.Float32bits(v))
		}
	}
	return buf
}
