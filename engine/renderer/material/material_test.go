package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaterialDefaultsToWhite(t *testing.T) {
	m := NewMaterial("Body")
	assert.Equal(t, "Body", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, "default", Default().Name())
	assert.Same(t, Default(), Default())
}

func TestMaterialParamsLayout(t *testing.T) {
	m := NewMaterial("Paint", WithBaseColor([4]float32{0.8, 0.1, 0.2, 1}))
	params := m.GPU()
	assert.Equal(t, GPUMaterialParamsSize, params.Size())

	buf := params.Marshal()
	assert.Len(t, buf, GPUMaterialParamsSize)
	assert.Equal(t, float32(0.1), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
}
