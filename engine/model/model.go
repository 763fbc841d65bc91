// Package model holds decoded mesh geometry ready for upload: interleaved
// vertices, triangle-list indices and the material each primitive uses.
package model

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive is one indexed triangle list of a mesh.
type Primitive struct {
	// Vertices are the interleaved vertex attributes.
	Vertices []GPUSkinnedVertex

	// Indices index into Vertices, three per triangle.
	Indices []uint32

	// Material shades the primitive. Nil means material.Default().
	Material material.Material

	// Skinned is true when the vertices carry joint weights.
	Skinned bool
}

// MaterialOrDefault returns the primitive's material, falling back to the shared default.
func (p *Primitive) MaterialOrDefault() material.Material {
	if p.Material == nil {
		return material.Default()
	}
	return p.Material
}

// Mesh is a named set of primitives drawn with the same node transform.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Primitives are the drawable parts of the mesh.
	Primitives []*Primitive

	// Skipped counts source primitives that could not be decoded, such as
	// compressed or non-triangle ones. Their bounds may still be known.
	Skipped int
}

// IsSkinned reports whether any primitive carries joint weights.
func (m *Mesh) IsSkinned() bool {
	for _, p := range m.Primitives {
		if p.Skinned {
			return true
		}
	}
	return false
}

// ComputeNormals derives smooth vertex normals by accumulating area-weighted
// face normals of every triangle that references each vertex. Vertices not
// referenced by any triangle get +Y.
//
// Parameters:
//   - positions: vertex positions
//   - indices: triangle list indices into positions
//
// Returns:
//   - []mgl32.Vec3: one unit normal per position
func ComputeNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		face := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		if n.Len() == 0 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// SequentialIndices returns 0..count-1 for non-indexed triangle lists.
func SequentialIndices(count int) []uint32 {
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
