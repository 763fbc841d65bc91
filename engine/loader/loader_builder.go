package loader

import (
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
)

// LoaderBuilderOption is a functional option for configuring an AssetLoader via NewAssetLoader.
type LoaderBuilderOption func(*assetLoader)

// WithWorkers sets the maximum number of decode workers.
// Values < 1 are treated as 1.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *assetLoader) {
		l.workers = max(n, 1)
	}
}

// WithLogger sets the logger used for load diagnostics.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(log *logger.Logger) LoaderBuilderOption {
	return func(l *assetLoader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithModelDecoder replaces the model decoder.
//
// Parameters:
//   - fn: the decoder
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decoder option to a loader
func WithModelDecoder(fn ModelDecodeFunc) LoaderBuilderOption {
	return func(l *assetLoader) {
		if fn != nil {
			l.decodeModel = fn
		}
	}
}

// WithAudioDecoder replaces the audio decoder.
//
// Parameters:
//   - fn: the decoder
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decoder option to a loader
func WithAudioDecoder(fn AudioDecodeFunc) LoaderBuilderOption {
	return func(l *assetLoader) {
		if fn != nil {
			l.decodeAudio = fn
		}
	}
}
