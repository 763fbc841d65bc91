// Package material holds the surface parameters a mesh primitive is shaded with.
package material

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor [4]float32
}

// Material defines the surface of a primitive: a name for diagnostics and a
// base color multiplied into the lit result. Materials are immutable after
// construction and may be shared by any number of primitives.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the linear RGBA albedo of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// GPU returns the uniform block uploaded for this material.
	//
	// Returns:
	//   - GPUMaterialParams: the GPU-aligned parameters
	GPU() GPUMaterialParams
}

var _ Material = &material{}

var defaultMaterial = NewMaterial("default")

// NewMaterial creates a Material with a white base color and the provided options applied.
//
// Parameters:
//   - name: the material identifier
//   - options: functional options for surface parameters
//
// Returns:
//   - Material: the new material
func NewMaterial(name string, options ...MaterialBuilderOption) Material {
	m := &material{
		name:      name,
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Default returns the shared white material used by primitives without one.
func Default() Material {
	return defaultMaterial
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) GPU() GPUMaterialParams {
	return GPUMaterialParams{BaseColor: m.baseColor}
}
