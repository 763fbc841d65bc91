package audio

import "github.com/Carmen-Shannon/oxy-showcase/engine/logger"

// PlayerBuilderOption is a functional option for configuring a Player.
type PlayerBuilderOption func(*player)

// WithEffectGain sets the linear gain applied to the effect track (1 = unchanged).
//
// Parameters:
//   - gain: the linear gain
//
// Returns:
//   - PlayerBuilderOption: option function to apply
func WithEffectGain(gain float64) PlayerBuilderOption {
	return func(p *player) {
		p.effectGain = gain
	}
}

// WithLogger sets the logger used for playback diagnostics.
func WithLogger(l *logger.Logger) PlayerBuilderOption {
	return func(p *player) {
		if l != nil {
			p.log = l
		}
	}
}
