// Package audio decodes the showcase's sound files into memory and plays them
// as independent looping tracks.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode reads an entire audio file into an in-memory buffer.
// The decoder is chosen by extension: .mp3, .ogg/.oga, .wav, .flac.
//
// Parameters:
//   - path: the audio file path
//
// Returns:
//   - *beep.Buffer: the decoded samples and their format
//   - error: ErrUnsupportedFormat, or an error opening or decoding the file
func Decode(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio %s: %w", path, err)
	}
	buf, err := DecodeReader(f, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", path, err)
	}
	return buf, nil
}

// Supported reports whether an extension (with leading dot) has a decoder.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp3", ".ogg", ".oga", ".wav", ".flac":
		return true
	}
	return false
}

// DecodeReader decodes a stream of the given extension into a buffer and closes it.
//
// Parameters:
//   - rc: the encoded audio stream
//   - ext: the format extension including the leading dot
//
// Returns:
//   - *beep.Buffer: the decoded samples and their format
//   - error: error if the format is unsupported or decoding fails
func DecodeReader(rc io.ReadCloser, ext string) (*beep.Buffer, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch strings.ToLower(ext) {
	case ".mp3":
		stream, format, err = mp3.Decode(rc)
	case ".ogg", ".oga":
		stream, format, err = vorbis.Decode(rc)
	case ".wav":
		stream, format, err = wav.Decode(rc)
	case ".flac":
		stream, format, err = flac.Decode(rc)
	default:
		rc.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		rc.Close()
		return nil, err
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, errors.New("audio stream contains no samples")
	}
	return buf, nil
}
