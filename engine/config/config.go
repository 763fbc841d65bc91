// Package config holds the fixed presentation constants of the showcase and the
// small set of environment overrides (asset paths, window size, scene variant).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/joho/godotenv"
)

// Environment keys recognised by Load and Parse.
const (
	EnvVariant         = "OXY_VARIANT"
	EnvModelPath       = "OXY_MODEL_PATH"
	EnvBackgroundAudio = "OXY_BACKGROUND_AUDIO"
	EnvEffectAudio     = "OXY_EFFECT_AUDIO"
	EnvWindowWidth     = "OXY_WINDOW_WIDTH"
	EnvWindowHeight    = "OXY_WINDOW_HEIGHT"
	EnvBackgroundColor = "OXY_BACKGROUND_COLOR"
	EnvLogDevelopment  = "OXY_LOG_DEVELOPMENT"
	EnvLogDebug        = "OXY_LOG_DEBUG"
	EnvProfiling       = "OXY_PROFILING"
	EnvLoaderWorkers   = "OXY_LOADER_WORKERS"
)

// ErrUnknownVariant is returned when OXY_VARIANT names no preset.
var ErrUnknownVariant = errors.New("unknown scene variant")

// Variant names a camera/anchor preset for the presented asset.
type Variant string

const (
	// VariantDanon is the default preset: base-anchored pivot, 500 unit orbit limit.
	VariantDanon Variant = "danon"

	// VariantShowroom pivots on the geometric centroid and allows a wider orbit.
	VariantShowroom Variant = "showroom"
)

// VariantPreset carries the per-variant literals.
type VariantPreset struct {
	Name        Variant
	Anchor      common.Anchor
	CameraStart mgl32.Vec3
	IntroEnd    mgl32.Vec3
	MaxDistance float32
}

var presets = map[Variant]VariantPreset{
	VariantDanon: {
		Name:        VariantDanon,
		Anchor:      common.AnchorBase,
		CameraStart: mgl32.Vec3{34, 16, -20},
		IntroEnd:    mgl32.Vec3{25, 200, 461},
		MaxDistance: 500,
	},
	VariantShowroom: {
		Name:        VariantShowroom,
		Anchor:      common.AnchorCentroid,
		CameraStart: mgl32.Vec3{34, 16, -20},
		IntroEnd:    mgl32.Vec3{-120, 160, 420},
		MaxDistance: 600,
	},
}

// Preset looks up a variant preset by name.
//
// Parameters:
//   - v: the variant name
//
// Returns:
//   - VariantPreset: the preset
//   - error: ErrUnknownVariant if the name is not registered
func Preset(v Variant) (VariantPreset, error) {
	p, ok := presets[Variant(strings.ToLower(string(v)))]
	if !ok {
		return VariantPreset{}, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return p, nil
}

// LightConfig describes one fixed light.
type LightConfig struct {
	Color     common.Color
	Intensity float32
	Position  mgl32.Vec3
}

// OrbitConfig holds the orbit limits applied when the intro finishes.
type OrbitConfig struct {
	DampingFactor   float32
	MinDistance     float32
	MaxDistance     float32
	MaxPolarAngle   float32
	AutoRotateSpeed float32
}

// Config is the full set of presentation constants.
type Config struct {
	Variant VariantPreset

	ModelPath           string
	BackgroundAudioPath string
	EffectAudioPath     string

	WindowTitle  string
	WindowWidth  int
	WindowHeight int

	Background common.Color

	CameraFovDegrees float32
	CameraNear       float32
	CameraFar        float32

	Ambient     LightConfig
	Directional []LightConfig

	IntroDelay    time.Duration
	IntroDuration time.Duration

	Orbit OrbitConfig

	EffectDelay time.Duration
	EffectGain  float32

	GizmoSize         int
	GizmoSnapDuration time.Duration

	LoaderWorkers int

	LogDevelopment bool
	LogDebug       bool
	Profiling      bool
}

// Default returns the configuration for the default variant.
func Default() Config {
	p := presets[VariantDanon]
	return Config{
		Variant: p,

		ModelPath:           "models/gltf/danon.glb",
		BackgroundAudioPath: "musics/background.ogg",
		EffectAudioPath:     "musics/train.mp3",

		WindowTitle:  "Oxy Showcase",
		WindowWidth:  1280,
		WindowHeight: 720,

		Background: common.ColorFromHex(0xc8f0f9),

		CameraFovDegrees: 35,
		CameraNear:       1,
		CameraFar:        10000,

		Ambient: LightConfig{Color: common.ColorFromHex(0xa0a0fc), Intensity: 0.82},
		Directional: []LightConfig{
			{Color: common.ColorFromHex(0xffffff), Intensity: 1, Position: mgl32.Vec3{23, 44, 14}},
			{Color: common.ColorFromHex(0xffffff), Intensity: 2, Position: mgl32.Vec3{50, 50, 50}},
			{Color: common.ColorFromHex(0xffffff), Intensity: 2, Position: mgl32.Vec3{-50, 50, -50}},
		},

		IntroDelay:    1000 * time.Millisecond,
		IntroDuration: 6500 * time.Millisecond,

		Orbit: OrbitConfig{
			DampingFactor:   0.04,
			MinDistance:     35,
			MaxDistance:     p.MaxDistance,
			MaxPolarAngle:   math.Pi / 2.5,
			AutoRotateSpeed: 0.5,
		},

		EffectDelay: 2000 * time.Millisecond,
		EffectGain:  0.3,

		GizmoSize:         100,
		GizmoSnapDuration: 500 * time.Millisecond,

		LoaderWorkers: 3,
	}
}

// WithVariant returns a copy of c switched to another preset, including the
// preset's orbit distance bound.
func (c Config) WithVariant(p VariantPreset) Config {
	c.Variant = p
	c.Orbit.MaxDistance = p.MaxDistance
	return c
}

// Load reads an optional dotenv file and applies overrides from it and from the
// process environment (process environment wins). A missing file is not an error.
//
// Parameters:
//   - path: the dotenv file path, typically ".env"
//
// Returns:
//   - Config: the resolved configuration
//   - error: error if the file is unreadable or a value is invalid
func Load(path string) (Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("failed to read %s: %w", path, err)
		}
		values = map[string]string{}
	}
	for _, key := range []string{
		EnvVariant, EnvModelPath, EnvBackgroundAudio, EnvEffectAudio,
		EnvWindowWidth, EnvWindowHeight, EnvBackgroundColor,
		EnvLogDevelopment, EnvLogDebug, EnvProfiling, EnvLoaderWorkers,
	} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}
	return Parse(values)
}

// Parse applies overrides from a key/value map onto Default.
//
// Parameters:
//   - env: override values keyed by the Env* constants
//
// Returns:
//   - Config: the resolved configuration
//   - error: error if a value is invalid
func Parse(env map[string]string) (Config, error) {
	c := Default()

	if v := strings.TrimSpace(env[EnvVariant]); v != "" {
		p, err := Preset(Variant(v))
		if err != nil {
			return c, err
		}
		c = c.WithVariant(p)
	}

	c.ModelPath = common.Coalesce(env[EnvModelPath], c.ModelPath)
	c.BackgroundAudioPath = common.Coalesce(env[EnvBackgroundAudio], c.BackgroundAudioPath)
	c.EffectAudioPath = common.Coalesce(env[EnvEffectAudio], c.EffectAudioPath)

	var err error
	if c.WindowWidth, err = parsePositiveInt(env, EnvWindowWidth, c.WindowWidth); err != nil {
		return c, err
	}
	if c.WindowHeight, err = parsePositiveInt(env, EnvWindowHeight, c.WindowHeight); err != nil {
		return c, err
	}
	if c.LoaderWorkers, err = parsePositiveInt(env, EnvLoaderWorkers, c.LoaderWorkers); err != nil {
		return c, err
	}

	if v := env[EnvBackgroundColor]; v != "" {
		if c.Background, err = common.ParseColor(v); err != nil {
			return c, fmt.Errorf("%s: %w", EnvBackgroundColor, err)
		}
	}

	if c.LogDevelopment, err = parseBool(env, EnvLogDevelopment, c.LogDevelopment); err != nil {
		return c, err
	}
	if c.LogDebug, err = parseBool(env, EnvLogDebug, c.LogDebug); err != nil {
		return c, err
	}
	if c.Profiling, err = parseBool(env, EnvProfiling, c.Profiling); err != nil {
		return c, err
	}
	return c, nil
}

func parsePositiveInt(env map[string]string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(env[key])
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return fallback, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

func parseBool(env map[string]string, key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(env[key])
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
