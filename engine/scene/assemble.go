package scene

import (
	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/config"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
)

// Surface is the render target sized during assembly.
type Surface interface {
	Resize(width, height int)
}

// Assemble builds the showcase scene once: background, perspective camera at
// the variant's start position, the fixed ambient and directional lights, and
// sizes the surface to the window.
//
// Parameters:
//   - cfg: presentation constants
//   - surface: the render surface (may be nil)
//   - width, height: window size in pixels
//
// Returns:
//   - Scene: the assembled scene; its camera is available via Camera()
func Assemble(cfg config.Config, surface Surface, width, height int) Scene {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	cam := camera.NewCamera(
		camera.WithFov(common.DegToRad(cfg.CameraFovDegrees)),
		camera.WithAspect(aspect),
		camera.WithNear(cfg.CameraNear),
		camera.WithFar(cfg.CameraFar),
		camera.WithPosition(cfg.Variant.CameraStart),
	)

	lights := []light.Light{light.NewAmbient(cfg.Ambient.Color, cfg.Ambient.Intensity)}
	for _, d := range cfg.Directional {
		lights = append(lights, light.NewDirectional(d.Color, d.Intensity, d.Position))
	}

	s := NewScene(cam,
		WithBackground(cfg.Background),
		WithLights(lights...),
	)

	if surface != nil && width > 0 && height > 0 {
		surface.Resize(width, height)
	}
	return s
}
