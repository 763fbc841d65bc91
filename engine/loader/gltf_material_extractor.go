package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/qmuntal/gltf"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	doc *gltf.Document
}

// gltfMaterialExtractor converts glTF materials into engine materials.
// Only the PBR base color factor is carried; textures are not decoded.
type gltfMaterialExtractor interface {
	// ExtractMaterial converts a single material.
	//
	// Parameters:
	//   - materialIndex: index into the document's materials
	//
	// Returns:
	//   - material.Material: the converted material
	//   - error: error if the index is out of range
	ExtractMaterial(materialIndex int) (material.Material, error)

	// ExtractAllMaterials converts every material, indexed like the document.
	//
	// Returns:
	//   - []material.Material: the materials in document order
	ExtractAllMaterials() []material.Material
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a material extractor over doc.
func newGLTFMaterialExtractor(doc *gltf.Document) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{doc: doc}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (material.Material, error) {
	if materialIndex < 0 || materialIndex >= len(e.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", materialIndex)
	}
	mat := e.doc.Materials[materialIndex]

	name := mat.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", materialIndex)
	}
	var opts []material.MaterialBuilderOption
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		opts = append(opts, material.WithBaseColor([4]float32{
			float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]),
		}))
	}
	return material.NewMaterial(name, opts...), nil
}

func (e *gltfMaterialExtractorImpl) ExtractAllMaterials() []material.Material {
	out := make([]material.Material, len(e.doc.Materials))
	for i := range e.doc.Materials {
		out[i], _ = e.ExtractMaterial(i)
	}
	return out
}
