package light

import "github.com/go-gl/mathgl/mgl32"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly with no direction.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant light shining from its position toward its target.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional
)

// String returns the light type name.
func (t LightType) String() string {
	if t == LightTypeDirectional {
		return "directional"
	}
	return "ambient"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	target    mgl32.Vec3
	color     [3]float32
	intensity float32
}

// Light is a fixed scene light. Lights are configured at construction and are
// not mutated while the showcase runs.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: ambient or directional
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from its
	// position toward its target. Zero for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// GPU packs the light for upload.
	//
	// Returns:
	//   - GPULight: the GPU representation
	GPU() GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with any provided options applied.
// Directional lights default to shining from above toward the origin.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  mgl32.Vec3{0, 1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbient is shorthand for an ambient light.
func NewAmbient(color [3]float32, intensity float32) Light {
	return NewLight(LightTypeAmbient, WithColor(color), WithIntensity(intensity))
}

// NewDirectional is shorthand for a directional light aimed at the origin.
func NewDirectional(color [3]float32, intensity float32, position mgl32.Vec3) Light {
	return NewLight(LightTypeDirectional, WithColor(color), WithIntensity(intensity), WithPosition(position))
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	if l.lightType != LightTypeDirectional {
		return mgl32.Vec3{}
	}
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) GPU() GPULight {
	return GPULight{
		Position:  l.position,
		LightType: uint32(l.lightType),
		Color:     l.color,
		Intensity: l.intensity,
		Direction: l.Direction(),
	}
}
