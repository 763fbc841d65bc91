package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUSizesMatchWGSLLayouts(t *testing.T) {
	var v GPUSkinnedVertex
	var d GPUModelData
	assert.Equal(t, GPUSkinnedVertexSize, v.Size())
	assert.Equal(t, GPUModelDataSize, d.Size())
	assert.Equal(t, MaxJoints*64, GPUJointBufferSize)
}

func TestMarshalVerticesInterleaves(t *testing.T) {
	vs := []GPUSkinnedVertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, Weights: [4]float32{1, 0, 0, 0}},
		{Position: [3]float32{4, 5, 6}, Joints: [4]uint32{2, 1, 0, 0}, Weights: [4]float32{0.25, 0.75, 0, 0}},
	}
	buf := MarshalVertices(vs)
	require.Len(t, buf, 2*GPUSkinnedVertexSize)

	second := buf[GPUSkinnedVertexSize:]
	assert.Equal(t, float32(4), f32At(second, 0))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(second[24:]))
	assert.Equal(t, float32(0.75), f32At(second, 44))
	assert.Equal(t, vs[0].Marshal(), buf[:GPUSkinnedVertexSize])
}

func TestMarshalJointsPadsPalette(t *testing.T) {
	joints := []mgl32.Mat4{mgl32.Ident4(), mgl32.Translate3D(3, 0, 0)}
	buf := MarshalJoints(joints)
	require.Len(t, buf, GPUJointBufferSize)
	assert.Equal(t, float32(1), f32At(buf, 0))
	assert.Equal(t, float32(3), f32At(buf, 64+12*4), "translation lives in column 3")
	assert.Equal(t, float32(0), f32At(buf, 128))
}

func TestModelDataCarriesJointCount(t *testing.T) {
	d := GPUModelData{Model: mgl32.Ident4(), JointCount: 7}
	buf := d.Marshal()
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[64:]))
	assert.Equal(t, float32(1), f32At(buf, 60))
}

func TestComputeNormalsFacesUp(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {5, 5, 5}}
	normals := ComputeNormals(positions, []uint32{0, 1, 2})
	require.Len(t, normals, 4)
	for i := range 3 {
		assert.InDelta(t, 1, normals[i][1], 1e-6)
	}
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, normals[3], "unreferenced vertex")
}

func TestPrimitiveMaterialFallback(t *testing.T) {
	p := &Primitive{}
	assert.Same(t, material.Default(), p.MaterialOrDefault())

	paint := material.NewMaterial("Paint")
	p.Material = paint
	assert.Same(t, paint, p.MaterialOrDefault())

	m := &Mesh{Primitives: []*Primitive{p, {Skinned: true}}}
	assert.True(t, m.IsSkinned())
	assert.Equal(t, []uint32{0, 1, 2}, SequentialIndices(3))
}

func TestJointPaletteSourceMatchesMaxJoints(t *testing.T) {
	assert.Contains(t, GPUJointPaletteSource, fmt.Sprintf("array<mat4x4<f32>, %d>", MaxJoints))
}
