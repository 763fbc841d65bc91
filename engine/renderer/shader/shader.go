package shader

import (
	"embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/*.wgsl
var assets embed.FS

// Asset names of the shaders shipped with the engine.
const (
	AssetMesh  = "assets/mesh.wgsl"
	AssetGizmo = "assets/gizmo.wgsl"
)

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	declarations               []Annotation
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a processed WGSL stage together with the layout metadata a
// pipeline needs: its entry point, vertex buffer layouts and bind group layouts.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source retrieves the processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL with every annotation expanded
	Source() string

	// ShaderType returns the stage the shader is compiled for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the entry point function name for the shader's stage.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string

	// BindGroupLayoutDescriptors retrieves the parsed bind group layouts, keyed by group index.
	// Every entry's visibility is the shader's stage.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts. Empty for fragment shaders.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct
	VertexLayouts() []wgpu.VertexBufferLayout

	// Declarations returns the group annotations found while processing the source.
	//
	// Returns:
	//   - []Annotation: the binding declarations in source order
	Declarations() []Annotation

	// Module returns the descriptor used to compile the shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor holding the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source and extracts the stage's layout metadata.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to compile for
//   - source: WGSL source with @oxy annotations
//
// Returns:
//   - Shader: the processed shader
//   - error: error if an annotation is malformed or the stage has no entry point
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		shaderType:   shaderType,
		entryPoint:   parseEntryPoint(processed, shaderType),
		declarations: append([]Annotation(nil), pp.Declarations()...),
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
		},
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(processed)
	}
	s.bindGroupLayoutDescriptors = parseBindGroupLayouts(processed, visibility)
	return s, nil
}

// LoadAsset builds a shader from one of the embedded engine assets.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to compile for
//   - asset: the asset name, e.g. AssetMesh
//
// Returns:
//   - Shader: the processed shader
//   - error: error if the asset is missing or fails to process
func LoadAsset(key string, shaderType ShaderType, asset string) (Shader, error) {
	data, err := assets.ReadFile(asset)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShader(key, shaderType, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
