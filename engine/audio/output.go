package audio

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is the device streams are mixed into. Lock and Unlock guard any
// mutation of a streamer that is already playing.
type Output interface {
	// Play starts s, whose samples are in format.
	//
	// Parameters:
	//   - format: the sample format of s
	//   - s: the streamer to mix in
	//
	// Returns:
	//   - error: error if the device cannot be opened
	Play(format beep.Format, s beep.Streamer) error

	Lock()
	Unlock()
}

type speakerOutput struct {
	once       sync.Once
	initErr    error
	sampleRate beep.SampleRate
}

var _ Output = &speakerOutput{}

// NewSpeakerOutput creates an Output on the default sound device. The device is
// opened lazily at the sample rate of the first stream played; later streams at
// other rates are resampled.
//
// Returns:
//   - Output: the speaker output
func NewSpeakerOutput() Output {
	return &speakerOutput{}
}

func (o *speakerOutput) Play(format beep.Format, s beep.Streamer) error {
	o.once.Do(func() {
		o.sampleRate = format.SampleRate
		o.initErr = speaker.Init(o.sampleRate, o.sampleRate.N(time.Second/10))
	})
	if o.initErr != nil {
		return o.initErr
	}
	if format.SampleRate != o.sampleRate {
		s = beep.Resample(4, format.SampleRate, o.sampleRate, s)
	}
	speaker.Play(s)
	return nil
}

func (o *speakerOutput) Lock() {
	if o.initErr == nil && o.sampleRate != 0 {
		speaker.Lock()
	}
}

func (o *speakerOutput) Unlock() {
	if o.initErr == nil && o.sampleRate != 0 {
		speaker.Unlock()
	}
}
