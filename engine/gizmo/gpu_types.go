package gizmo

import (
	"encoding/binary"
	"math"
)

// GPUGizmoVertexSize is the byte size of a marshalled GPUGizmoVertex.
const GPUGizmoVertexSize = 24

// GPUGizmoVertexSource is the WGSL vertex input matching GPUGizmoVertex.
const GPUGizmoVertexSource = `struct GizmoVertex {
    @location(0) position: vec2<f32>,
    @location(1) color: vec4<f32>,
};
`

// GPUGizmoVertex is one end of a gizmo line segment in the gizmo's own
// clip space, where [-1, 1] spans the gizmo viewport.
// Size: 24 bytes.
type GPUGizmoVertex struct {
	Position [2]float32 // offset  0
	Color    [4]float32 // offset  8
}

// MarshalVertices packs vertices into a GPU vertex buffer.
//
// Parameters:
//   - vertices: the line-list vertices
//
// Returns:
//   - []byte: len(vertices) * GPUGizmoVertexSize bytes
func MarshalVertices(vertices []GPUGizmoVertex) []byte {
	buf := make([]byte, len(vertices)*GPUGizmoVertexSize)
	for i, v := range vertices {
		off := i * GPUGizmoVertexSize
		for c := range 2 {
			binary.LittleEndian.PutUint32(buf[off+c*4:], math.Float32bits(v.Position[c]))
		}
		for c := range 4 {
			binary.LittleEndian.PutUint32(buf[off+8+c*4:], math.Float32bits(v.Color[c]))
		}
	}
	return buf
}
