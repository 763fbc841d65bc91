package material

// MaterialBuilderOption is a functional option used to configure a Material during construction.
type MaterialBuilderOption func(*material)

// WithBaseColor sets the RGBA base color.
//
// Parameters:
//   - c: linear RGBA, each component in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the base color
func WithBaseColor(c [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = c
	}
}
