package loader

import "io"

// loaderBackend defines the generic interface for decoding models from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the model at path: node hierarchy, mesh bounds and animations.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Model: the decoded model
	//   - error: error if loading fails
	Load(path string) (*Model, error)

	// LoadReader decodes a model from a stream.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing model data (glTF JSON or GLB)
	//
	// Returns:
	//   - *Model: the decoded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*Model, error)
}
