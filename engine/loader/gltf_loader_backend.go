package loader

import (
	"io"
	"path/filepath"
	"strings"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// It delegates to the gltfImporter for parsing and extraction.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*Model, error) {
	doc, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.importer.Import(name, doc)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (*Model, error) {
	doc, err := parseReader(r)
	if err != nil {
		return nil, err
	}
	return b.importer.Import(name, doc)
}

// DecodeModel decodes a glTF or GLB file with the default backend.
//
// Parameters:
//   - path: the model file path
//
// Returns:
//   - *Model: the decoded model
//   - error: error if the format is unsupported or decoding fails
func DecodeModel(path string) (*Model, error) {
	return newGLTFLoaderBackend().Load(path)
}
