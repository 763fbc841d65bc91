package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCarriesPresentationConstants(t *testing.T) {
	c := Default()

	assert.Equal(t, VariantDanon, c.Variant.Name)
	assert.Equal(t, common.AnchorBase, c.Variant.Anchor)
	assert.Equal(t, mgl32.Vec3{34, 16, -20}, c.Variant.CameraStart)
	assert.Equal(t, mgl32.Vec3{25, 200, 461}, c.Variant.IntroEnd)

	assert.Equal(t, 6500*time.Millisecond, c.IntroDuration)
	assert.Equal(t, 1000*time.Millisecond, c.IntroDelay)
	assert.Equal(t, 2000*time.Millisecond, c.EffectDelay)
	assert.Equal(t, float32(0.3), c.EffectGain)
	assert.Equal(t, 100, c.GizmoSize)
	assert.Equal(t, 500*time.Millisecond, c.GizmoSnapDuration)

	assert.Equal(t, float32(0.04), c.Orbit.DampingFactor)
	assert.Equal(t, float32(35), c.Orbit.MinDistance)
	assert.Equal(t, float32(500), c.Orbit.MaxDistance)
	assert.InDelta(t, math.Pi/2.5, c.Orbit.MaxPolarAngle, 1e-6)
	assert.Equal(t, float32(0.5), c.Orbit.AutoRotateSpeed)

	assert.Equal(t, uint32(0xc8f0f9), c.Background.Hex())
	assert.Len(t, c.Directional, 3)
}

func TestParseVariantSwitchesOrbitBound(t *testing.T) {
	c, err := Parse(map[string]string{EnvVariant: "Showroom"})
	require.NoError(t, err)
	assert.Equal(t, VariantShowroom, c.Variant.Name)
	assert.Equal(t, common.AnchorCentroid, c.Variant.Anchor)
	assert.Equal(t, float32(600), c.Orbit.MaxDistance)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse(map[string]string{EnvVariant: "cathedral"})
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Parse(map[string]string{EnvWindowWidth: "-3"})
	assert.Error(t, err)

	_, err = Parse(map[string]string{EnvProfiling: "sometimes"})
	assert.Error(t, err)

	_, err = Parse(map[string]string{EnvBackgroundColor: "#12"})
	assert.Error(t, err)
}

func TestLoadReadsDotenvAndToleratesMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default().ModelPath, c.ModelPath)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OXY_MODEL_PATH=assets/other.glb\nOXY_WINDOW_WIDTH=1920\n"), 0o644))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assets/other.glb", c.ModelPath)
	assert.Equal(t, 1920, c.WindowWidth)
	assert.Equal(t, 720, c.WindowHeight)
}

func TestLoadProcessEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OXY_WINDOW_HEIGHT=900\n"), 0o644))
	t.Setenv(EnvWindowHeight, "1000")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, c.WindowHeight)
}
