package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of light slots in the GPU light buffer.
const MaxGPULights = 8

// GPULightBufferSize is the byte size of the buffer produced by MarshalLights:
// a 16-byte header followed by MaxGPULights 48-byte slots.
const GPULightBufferSize = 16 + MaxGPULights*48

// GPULightSource is the WGSL declaration matching GPULight and GPULightHeader.
const GPULightSource = `struct Light {
    position: vec3<f32>,
    light_type: u32,
    color: vec3<f32>,
    intensity: f32,
    direction: vec3<f32>,
    _pad: f32,
};

struct LightHeader {
    count: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
};
`

// GPULightBufferSource declares the whole storage buffer produced by MarshalLights.
// The array length equals MaxGPULights.
const GPULightBufferSource = GPULightSource + `
struct LightBuffer {
    header: LightHeader,
    lights: array<Light, 8>,
};
`

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly (see GPULightSource).
// Size: 48 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position
	LightType uint32     // offset 12: 0 = ambient, 1 = directional
	Color     [3]float32 // offset 16: RGB color
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: normalized direction (directional only)
	_pad      float32    // offset 44: padding to 48 bytes
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], 0) // padding
	return buf
}

// GPULightHeader is the header prepended to the light storage buffer.
// Size: 16 bytes.
type GPULightHeader struct {
	Count uint32
	_pad  [3]uint32
}

// Size returns the size of the GPULightHeader struct in bytes.
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// MarshalLights serializes a light header followed by up to MaxGPULights lights.
// The buffer is always sized for MaxGPULights so it can be written in place.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - []byte: the storage buffer contents
func MarshalLights(lights []Light) []byte {
	var header GPULightHeader
	var slot GPULight
	count := min(len(lights), MaxGPULights)

	buf := make([]byte, header.Size()+MaxGPULights*slot.Size())
	binary.LittleEndian.PutUint32(buf[0:4], uint32(count))
	for i := range count {
		g := lights[i].GPU()
		copy(buf[header.Size()+i*slot.Size():], g.Marshal())
	}
	return buf
}

func putVec3(dst []byte, v [3]float32) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v[i]))
	}
}
