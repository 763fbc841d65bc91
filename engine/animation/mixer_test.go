package animation

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spinClip() *Clip {
	c := &Clip{
		Name: "spin",
		Channels: []Channel{{
			Target: "wheel",
			PositionKeys: []VectorKeyframe{
				{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
				{Time: 2, Value: mgl32.Vec3{10, 0, 0}},
			},
			RotationKeys: []QuaternionKeyframe{
				{Time: 0, Value: mgl32.QuatIdent()},
				{Time: 2, Value: mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})},
			},
		}},
	}
	c.ResetDuration()
	return c
}

func newModel() (*scene.Node, *scene.Node) {
	wheel := scene.NewNode("wheel")
	root := scene.NewNode("model", scene.WithChildren(scene.NewNode("body", scene.WithChildren(wheel))))
	return root, wheel
}

func TestClipActionIsCachedPerClip(t *testing.T) {
	root, _ := newModel()
	m := NewMixer(root)
	clip := spinClip()

	a := m.ClipAction(clip)
	assert.Same(t, a, m.ClipAction(clip))
	assert.Len(t, m.Actions(), 1)
	assert.Nil(t, m.ClipAction(nil))
	assert.False(t, a.IsRunning())
}

func TestUpdateInterpolatesTargetNode(t *testing.T) {
	root, wheel := newModel()
	m := NewMixer(root)
	clip := spinClip()
	require.Equal(t, float32(2), clip.Duration)

	m.ClipAction(clip).Play()
	m.Update(1)

	assert.InDelta(t, 5, wheel.Translation()[0], 1e-5)
	want := mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1, math.Abs(float64(want.Dot(wheel.Rotation()))), 1e-5)
	assert.Equal(t, float32(1), m.Time())
}

func TestLoopRepeatWraps(t *testing.T) {
	root, wheel := newModel()
	m := NewMixer(root)
	a := m.ClipAction(spinClip()).Play()

	m.Update(2.5)
	assert.InDelta(t, 0.5, a.Time(), 1e-5)
	assert.InDelta(t, 2.5, wheel.Translation()[0], 1e-5)
	assert.True(t, a.IsRunning())
}

func TestLoopOnceHoldsFinalPose(t *testing.T) {
	root, wheel := newModel()
	m := NewMixer(root)
	a := m.ClipAction(spinClip()).SetLoop(LoopOnce).Play()

	m.Update(3)
	assert.False(t, a.IsRunning())
	assert.InDelta(t, 10, wheel.Translation()[0], 1e-5)

	m.Update(1)
	assert.InDelta(t, 10, wheel.Translation()[0], 1e-5)
}

func TestPlayAllStartsEveryClipAndSkipsUnknownTargets(t *testing.T) {
	root, wheel := newModel()
	m := NewMixer(root)
	ghost := &Clip{Name: "ghost", Duration: 1, Channels: []Channel{{
		Target:       "missing",
		PositionKeys: []VectorKeyframe{{Time: 0, Value: mgl32.Vec3{1, 1, 1}}},
	}}}

	PlayAll(m, []*Clip{spinClip(), ghost})
	for _, a := range m.Actions() {
		assert.True(t, a.IsRunning())
	}

	assert.NotPanics(t, func() { m.Update(0.5) })
	assert.InDelta(t, 2.5, wheel.Translation()[0], 1e-5)

	m.StopAllActions()
	for _, a := range m.Actions() {
		assert.False(t, a.IsRunning())
		assert.Zero(t, a.Time())
	}
}

func TestStepInterpolationHoldsValue(t *testing.T) {
	root, wheel := newModel()
	clip := &Clip{Name: "blink", Channels: []Channel{{
		Target:        "wheel",
		Interpolation: InterpolationStep,
		ScaleKeys: []VectorKeyframe{
			{Time: 0, Value: mgl32.Vec3{1, 1, 1}},
			{Time: 1, Value: mgl32.Vec3{2, 2, 2}},
			{Time: 2, Value: mgl32.Vec3{1, 1, 1}},
		},
	}}}
	clip.ResetDuration()

	m := NewMixer(root)
	m.ClipAction(clip).SetLoop(LoopOnce).Play()
	m.Update(1.5)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, wheel.Scale())
}

func TestNewMixerPanicsWithoutRoot(t *testing.T) {
	assert.Panics(t, func() { NewMixer(nil) })
}

func TestChannelPrefersDescendantOverSameNamedRoot(t *testing.T) {
	child := scene.NewNode("danon", scene.WithTranslation(mgl32.Vec3{0, 5, 0}))
	root := scene.NewNode("danon", scene.WithChildren(child))
	clip := &Clip{
		Name: "bob",
		Channels: []Channel{{
			Target: "danon",
			PositionKeys: []VectorKeyframe{
				{Time: 0, Value: mgl32.Vec3{0, 5, 0}},
				{Time: 1, Value: mgl32.Vec3{2, 5, 0}},
			},
		}},
	}
	clip.ResetDuration()

	m := NewMixer(root)
	m.ClipAction(clip).SetLoop(LoopOnce).Play()
	m.Update(1)

	assert.Equal(t, mgl32.Vec3{2, 5, 0}, child.Translation())
	assert.Equal(t, mgl32.Vec3{}, root.Translation(), "wrapper root stays put")
	assert.Equal(t, mgl32.Vec4{2, 5, 0, 1}, child.WorldMatrix().Col(3))
}

func TestChannelFallsBackToRoot(t *testing.T) {
	root := scene.NewNode("solo")
	clip := &Clip{Name: "lift", Channels: []Channel{{
		Target:       "solo",
		PositionKeys: []VectorKeyframe{{Time: 0, Value: mgl32.Vec3{0, 3, 0}}},
	}}}

	m := NewMixer(root)
	m.ClipAction(clip).Play()
	m.Update(0.1)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, root.Translation())
}

func TestUpdateRefreshesSkinPalettes(t *testing.T) {
	bone := scene.NewNode("bone")
	skinned := scene.NewNode("mesh")
	root := scene.NewNode("rig", scene.WithChildren(bone, skinned))
	skinned.SetSkin(scene.NewSkin("armature", []*scene.Node{bone}, nil))

	clip := &Clip{Name: "raise", Channels: []Channel{{
		Target: "bone",
		PositionKeys: []VectorKeyframe{
			{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
			{Time: 2, Value: mgl32.Vec3{0, 4, 0}},
		},
	}}}
	clip.ResetDuration()

	m := NewMixer(root)
	PlayAll(m, []*Clip{clip})
	m.Update(1)

	palette := skinned.Skin().Palette()
	require.Len(t, palette, 1)
	assert.InDelta(t, 2, palette[0].Col(3)[1], 1e-5, "palette tracks the animated joint")
}
