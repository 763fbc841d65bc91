package light

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionalPointsFromPositionToTarget(t *testing.T) {
	l := NewDirectional([3]float32{1, 1, 1}, 2, mgl32.Vec3{50, 50, 50})

	d := l.Direction()
	inv := float32(1 / math.Sqrt(3))
	assert.InDelta(t, -inv, d[0], 1e-6)
	assert.InDelta(t, -inv, d[1], 1e-6)
	assert.InDelta(t, -inv, d[2], 1e-6)
	assert.Equal(t, float32(2), l.Intensity())
}

func TestAmbientHasNoDirection(t *testing.T) {
	l := NewAmbient([3]float32{0.6, 0.6, 0.9}, 0.82)
	assert.Equal(t, LightTypeAmbient, l.Type())
	assert.Equal(t, mgl32.Vec3{}, l.Direction())
}

func TestMarshalLightsLayout(t *testing.T) {
	lights := []Light{
		NewAmbient([3]float32{0.5, 0.5, 1}, 0.82),
		NewDirectional([3]float32{1, 1, 1}, 1, mgl32.Vec3{23, 44, 14}),
	}

	buf := MarshalLights(lights)
	require.Len(t, buf, GPULightBufferSize)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[0:4]))

	second := buf[16+48:]
	assert.Equal(t, uint32(LightTypeDirectional), binary.LittleEndian.Uint32(second[12:16]))
	assert.Equal(t, float32(23), math.Float32frombits(binary.LittleEndian.Uint32(second[0:4])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(second[28:32])))
}

func TestLightBufferSourceMatchesSlotCount(t *testing.T) {
	assert.Contains(t, GPULightBufferSource, fmt.Sprintf("array<Light, %d>", MaxGPULights))
}
