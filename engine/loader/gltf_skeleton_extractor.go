package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfSkeletonExtractorImpl is the implementation of the gltfSkeletonExtractor interface.
type gltfSkeletonExtractorImpl struct {
	doc   *gltf.Document
	nodes []*scene.Node
}

// gltfSkeletonExtractor binds glTF skins to the scene nodes built for their joints.
type gltfSkeletonExtractor interface {
	// ExtractSkin builds the skin at skinIndex.
	//
	// Parameters:
	//   - skinIndex: index into the document's skins
	//
	// Returns:
	//   - *scene.Skin: the skin with its joint nodes and inverse bind matrices
	//   - error: error if the index is out of range, the joint count exceeds
	//     model.MaxJoints or the inverse bind accessor is malformed
	ExtractSkin(skinIndex int) (*scene.Skin, error)
}

var _ gltfSkeletonExtractor = &gltfSkeletonExtractorImpl{}

// newGLTFSkeletonExtractor creates a skeleton extractor.
//
// Parameters:
//   - doc: the parsed document
//   - nodes: scene nodes indexed by glTF node index
//
// Returns:
//   - gltfSkeletonExtractor: the extractor
func newGLTFSkeletonExtractor(doc *gltf.Document, nodes []*scene.Node) gltfSkeletonExtractor {
	return &gltfSkeletonExtractorImpl{doc: doc, nodes: nodes}
}

func (e *gltfSkeletonExtractorImpl) ExtractSkin(skinIndex int) (*scene.Skin, error) {
	if skinIndex < 0 || skinIndex >= len(e.doc.Skins) {
		return nil, fmt.Errorf("skin index %d out of range", skinIndex)
	}
	skin := e.doc.Skins[skinIndex]
	if len(skin.Joints) > model.MaxJoints {
		return nil, fmt.Errorf("%w: skin %d has %d joints, limit %d", errTooManyJoints, skinIndex, len(skin.Joints), model.MaxJoints)
	}

	joints := make([]*scene.Node, len(skin.Joints))
	for i, idx := range skin.Joints {
		if idx >= 0 && idx < len(e.nodes) {
			joints[i] = e.nodes[idx]
		}
	}

	var inverseBind []mgl32.Mat4
	if skin.InverseBindMatrices != nil {
		var err error
		inverseBind, err = readMat4s(e.doc, *skin.InverseBindMatrices)
		if err != nil {
			return nil, fmt.Errorf("skin %d inverse bind matrices: %w", skinIndex, err)
		}
	}

	name := skin.Name
	if name == "" {
		name = fmt.Sprintf("skin_%d", skinIndex)
	}
	return scene.NewSkin(name, joints, inverseBind), nil
}
