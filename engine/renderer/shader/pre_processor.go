package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
)

// registryEntry pairs a WGSL struct source with the type name emitted in
// generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	declarations         []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source. Struct sources come
// from the Go GPU type packages so the WGSL layouts and the marshalling code
// share one definition.
type PreProcessor interface {
	// Process replaces every annotation with its WGSL output. Each struct is
	// injected at most once even when several annotations include it.
	//
	// Parameters:
	//   - source: raw WGSL with annotations
	//
	// Returns:
	//   - string: the expanded WGSL
	//   - error: error if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations seen by the last Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the binding declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU struct registered.
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:         {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLightBuffer:    {Source: light.GPULightBufferSource, Type: "LightBuffer"},
			AnnotationArgModelData:      {Source: model.GPUModelDataSource, Type: "ModelData"},
			AnnotationArgJointPalette:   {Source: model.GPUJointPaletteSource, Type: "JointPalette"},
			AnnotationArgMaterialParams: {Source: material.GPUMaterialParamsSource, Type: "MaterialParams"},
			annotationArgSkinnedVertex:  {Source: model.GPUSkinnedVertexSource, Type: "VertexInput"},
			annotationArgGizmoVertex:    {Source: gizmo.GPUGizmoVertexSource, Type: "GizmoVertex"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			included[a.Args[0]] = true
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			entry := p.structRegistry[a.Args[2]]
			if !included[a.Args[2]] {
				included[a.Args[2]] = true
				out = append(out, entry.Source)
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
