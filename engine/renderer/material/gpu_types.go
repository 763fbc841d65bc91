package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the WGSL declaration matching GPUMaterialParams.
const GPUMaterialParamsSource = `struct MaterialParams {
    base_color: vec4<f32>,
};
`

// GPUMaterialParamsSize is the byte size of a marshalled GPUMaterialParams.
const GPUMaterialParamsSize = 16

// GPUMaterialParams is the GPU-aligned uniform for the mesh fragment shader.
// Matches the WGSL MaterialParams struct layout exactly (see GPUMaterialParamsSource).
// Size: 16 bytes (one vec4<f32>).
type GPUMaterialParams struct {
	BaseColor [4]float32 // offset 0: RGBA base color (16 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, GPUMaterialParamsSize)
	for i, c := range g.BaseColor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
	return buf
}
