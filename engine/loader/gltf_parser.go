package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Common errors returned by the parser
var (
	// ErrUnsupportedModelFormat is returned for files that are neither .gltf nor .glb.
	ErrUnsupportedModelFormat = errors.New("unsupported model format")

	errNoNodes            = errors.New("glTF document has no nodes")
	errAccessorOutOfRange = errors.New("accessor index out of range")
	errAccessorType       = errors.New("unexpected accessor element type")
	errIndexOutOfRange    = errors.New("vertex index out of range")
	errTooManyJoints      = errors.New("skin exceeds the joint limit")
)

// parseFile opens a glTF or GLB file. External buffers are resolved relative to the file.
func parseFile(path string) (*gltf.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModelFormat, filepath.Ext(path))
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse glTF: %w", err)
	}
	return doc, nil
}

// parseReader decodes a self-contained glTF JSON or GLB stream.
func parseReader(r io.Reader) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse glTF: %w", err)
	}
	return doc, nil
}

func accessorAt(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: %d", errAccessorOutOfRange, index)
	}
	return doc.Accessors[index], nil
}

// readScalars reads a float scalar accessor, such as animation input times.
func readScalars(doc *gltf.Document, index int) ([]float32, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessor %d: %w", index, err)
	}
	values, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: accessor %d is %T", errAccessorType, index, data)
	}
	return values, nil
}

// readVec3s reads a float VEC3 accessor.
func readVec3s(doc *gltf.Document, index int) ([]mgl32.Vec3, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessor %d: %w", index, err)
	}
	values, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("%w: accessor %d is %T", errAccessorType, index, data)
	}
	out := make([]mgl32.Vec3, len(values))
	for i, v := range values {
		out[i] = mgl32.Vec3(v)
	}
	return out, nil
}

// readVec4s reads a VEC4 accessor, expanding normalized integer components to [-1, 1].
func readVec4s(doc *gltf.Document, index int) ([][4]float32, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessor %d: %w", index, err)
	}
	switch v := data.(type) {
	case [][4]float32:
		return v, nil
	case [][4]int8:
		return normalize4(v, func(c int8) float32 { return max(float32(c)/127, -1) }), nil
	case [][4]uint8:
		return normalize4(v, func(c uint8) float32 { return float32(c) / 255 }), nil
	case [][4]int16:
		return normalize4(v, func(c int16) float32 { return max(float32(c)/32767, -1) }), nil
	case [][4]uint16:
		return normalize4(v, func(c uint16) float32 { return float32(c) / 65535 }), nil
	default:
		return nil, fmt.Errorf("%w: accessor %d is %T", errAccessorType, index, data)
	}
}

func normalize4[T int8 | uint8 | int16 | uint16](in [][4]T, conv func(T) float32) [][4]float32 {
	out := make([][4]float32, len(in))
	for i, v := range in {
		out[i] = [4]float32{conv(v[0]), conv(v[1]), conv(v[2]), conv(v[3])}
	}
	return out
}

// readMat4s reads a MAT4 accessor, such as a skin's inverse bind matrices.
// Matrices are stored column-major, matching mgl32.
func readMat4s(doc *gltf.Document, index int) ([]mgl32.Mat4, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read accessor %d: %w", index, err)
	}
	values, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("%w: accessor %d is %T", errAccessorType, index, data)
	}
	out := make([]mgl32.Mat4, len(values))
	for i, cols := range values {
		for c := range 4 {
			for r := range 4 {
				out[i][c*4+r] = cols[c][r]
			}
		}
	}
	return out, nil
}
