package intro

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/clock"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/tween"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clock    *clock.Fake
	camera   camera.Camera
	controls camera.OrbitController
	group    *tween.Group
	intro    Sequencer
	done     int
}

func newFixture(cfg config.Config) *fixture {
	f := &fixture{
		clock:  clock.NewFake(),
		camera: camera.NewCamera(camera.WithPosition(mgl32.Vec3{1, 2, 3})),
		group:  tween.NewGroup(),
	}
	f.controls = camera.NewOrbitController(f.camera)
	f.intro = NewSequencer(f.camera, f.controls, f.group,
		WithConfig(cfg),
		WithOnDone(func() { f.done++ }),
	)
	return f
}

// tick mirrors the frame driver: tween update, then look-at, then controls.
func (f *fixture) tick(step time.Duration) {
	f.clock.Advance(step)
	f.group.Update(f.clock.Now())
	f.camera.LookAt(mgl32.Vec3{})
	f.controls.Update(float32(step.Seconds()))
}

func TestIntroDisablesControlsAndPlacesCamera(t *testing.T) {
	f := newFixture(config.Default())
	assert.Equal(t, StateIdle, f.intro.State())

	require.NoError(t, f.intro.Begin(f.clock.Now()))
	assert.Equal(t, StateAnimating, f.intro.State())
	assert.False(t, f.controls.Enabled())
	assert.Equal(t, mgl32.Vec3{34, 16, -20}, f.camera.Position())

	assert.ErrorIs(t, f.intro.Begin(f.clock.Now()), ErrAlreadyStarted)
}

func TestIntroCompletesOnceAtDelayPlusDuration(t *testing.T) {
	cfg := config.Default()
	f := newFixture(cfg)
	require.NoError(t, f.intro.Begin(0))

	step := time.Millisecond * 10
	for f.clock.Now() < 7490*time.Millisecond {
		f.tick(step)
		assert.Equal(t, StateAnimating, f.intro.State(), "at %s", f.clock.Now())
	}

	f.clock.Advance(step)
	f.group.Update(f.clock.Now())
	assert.Equal(t, 7500*time.Millisecond, f.clock.Now())
	assert.Equal(t, StateDone, f.intro.State())
	assert.Equal(t, 1, f.done)
	assert.Equal(t, 0, f.group.Len())
	assert.Equal(t, mgl32.Vec3{25, 200, 461}, f.camera.Position(), "completion writes the end position exactly")

	assert.True(t, f.controls.Enabled())
	l := f.controls.Limits()
	assert.True(t, l.EnableDamping)
	assert.Equal(t, float32(0.04), l.DampingFactor)
	assert.Equal(t, float32(35), l.MinDistance)
	assert.Equal(t, float32(500), l.MaxDistance)
	assert.InDelta(t, math.Pi/2.5, l.MaxPolarAngle, 1e-6)
	assert.True(t, l.AutoRotate)
	assert.Equal(t, float32(0.5), l.AutoRotateSpeed)

	for range 100 {
		f.tick(step)
	}
	assert.Equal(t, 1, f.done)
	assert.Equal(t, StateDone, f.intro.State())
}

func TestIntroHoldsStartDuringDelay(t *testing.T) {
	f := newFixture(config.Default())
	require.NoError(t, f.intro.Begin(0))

	f.clock.Advance(999 * time.Millisecond)
	f.group.Update(f.clock.Now())
	assert.Equal(t, mgl32.Vec3{34, 16, -20}, f.camera.Position())

	f.clock.Advance(2 * time.Second)
	f.group.Update(f.clock.Now())
	assert.NotEqual(t, mgl32.Vec3{34, 16, -20}, f.camera.Position())
}

func TestShowroomVariantEndsAtItsOwnPosition(t *testing.T) {
	p, err := config.Preset(config.VariantShowroom)
	require.NoError(t, err)
	f := newFixture(config.Default().WithVariant(p))
	require.NoError(t, f.intro.Begin(0))

	f.clock.Advance(7500 * time.Millisecond)
	f.group.Update(f.clock.Now())
	assert.Equal(t, mgl32.Vec3{-120, 160, 420}, f.camera.Position())
	assert.Equal(t, float32(600), f.controls.Limits().MaxDistance)
}
