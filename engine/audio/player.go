package audio

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Handle controls one playing track.
type Handle struct {
	out  Output
	ctrl *beep.Ctrl
}

// Stop silences the track. Stopping twice is harmless.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.out.Lock()
	h.ctrl.Streamer = nil
	h.out.Unlock()
}

// Playing reports whether the track has not been stopped.
func (h *Handle) Playing() bool {
	if h == nil {
		return false
	}
	h.out.Lock()
	defer h.out.Unlock()
	return h.ctrl.Streamer != nil
}

type player struct {
	out Output
	log *logger.Logger

	effectGain float64

	background *beep.Buffer
	effect     *beep.Buffer

	backgroundHandle *Handle
	effectHandle     *Handle
}

// Player plays a looping background track and a looping, attenuated effect
// track. Each track has its own Handle, so stopping one never affects the other.
// All methods are called from the loop goroutine.
type Player interface {
	// SetBackground stores the decoded background track.
	//
	// Parameters:
	//   - buf: the decoded buffer (nil clears it)
	SetBackground(buf *beep.Buffer)

	// SetEffect stores the decoded effect track.
	//
	// Parameters:
	//   - buf: the decoded buffer (nil clears it)
	SetEffect(buf *beep.Buffer)

	// PlayBackground loops the background track at unity gain, replacing any
	// previous background playback. It is a no-op when no background is decoded.
	//
	// Returns:
	//   - *Handle: the playback handle, or nil if nothing was played
	PlayBackground() *Handle

	// PlayEffect loops the effect track through the effect gain, replacing any
	// previous effect playback. It is a no-op when no effect is decoded.
	//
	// Returns:
	//   - *Handle: the playback handle, or nil if nothing was played
	PlayEffect() *Handle

	// Background returns the current background handle, or nil.
	Background() *Handle

	// Effect returns the current effect handle, or nil.
	Effect() *Handle

	// StopAll stops both tracks.
	StopAll()
}

var _ Player = &player{}

// NewPlayer creates a Player writing to out.
// Panics if out is nil.
//
// Parameters:
//   - out: the audio output
//   - options: functional options for gain and logging
//
// Returns:
//   - Player: the new player
func NewPlayer(out Output, options ...PlayerBuilderOption) Player {
	if out == nil {
		panic("audio.NewPlayer: output is required")
	}
	p := &player{
		out:        out,
		log:        logger.NewNop(),
		effectGain: 0.3,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *player) SetBackground(buf *beep.Buffer) {
	p.background = buf
}

func (p *player) SetEffect(buf *beep.Buffer) {
	p.effect = buf
}

func (p *player) PlayBackground() *Handle {
	if p.background == nil {
		p.log.Debugw("background track not decoded, skipping playback")
		return nil
	}
	p.backgroundHandle.Stop()
	p.backgroundHandle = p.start("background", p.background, loop(p.background))
	return p.backgroundHandle
}

func (p *player) PlayEffect() *Handle {
	if p.effect == nil {
		p.log.Debugw("effect track not decoded, skipping playback")
		return nil
	}
	p.effectHandle.Stop()
	// effects.Gain scales samples by 1 + Gain.
	stream := &effects.Gain{Streamer: loop(p.effect), Gain: p.effectGain - 1}
	p.effectHandle = p.start("effect", p.effect, stream)
	return p.effectHandle
}

func (p *player) Background() *Handle {
	return p.backgroundHandle
}

func (p *player) Effect() *Handle {
	return p.effectHandle
}

func (p *player) StopAll() {
	p.backgroundHandle.Stop()
	p.effectHandle.Stop()
}

func (p *player) start(track string, buf *beep.Buffer, s beep.Streamer) *Handle {
	ctrl := &beep.Ctrl{Streamer: s}
	if err := p.out.Play(buf.Format(), ctrl); err != nil {
		p.log.Warnw("audio output unavailable, skipping playback", "track", track, "error", err)
		return nil
	}
	p.log.Debugw("playing track", "track", track, "samples", buf.Len(), "sampleRate", int(buf.Format().SampleRate))
	return &Handle{out: p.out, ctrl: ctrl}
}

func loop(buf *beep.Buffer) beep.Streamer {
	return beep.Loop(-1, buf.Streamer(0, buf.Len()))
}
