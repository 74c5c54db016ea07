package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SampleSource is a seekable, finite sequence of decoded audio frames.
// A frame holds one sample per channel; samples are interleaved and
// normalized to [-1, 1]. Reads may fail mid-stream on corrupt input.
type SampleSource interface {
	// Seek positions the source at the given frame index.
	Seek(frame int64) error

	// ReadFrames reads up to n frames and returns the interleaved samples.
	// Returns io.EOF once the source is exhausted.
	ReadFrames(n int) ([]float64, error)

	// SampleRate returns the sample rate in Hz.
	SampleRate() int

	// NumChannels returns the number of audio channels.
	NumChannels() int

	// NumFrames returns the total number of frames in the source.
	NumFrames() int64

	// Close releases the underlying resources.
	Close() error
}

// Open creates a SampleSource for an audio file, dispatching on the file
// extension.
func Open(path string) (SampleSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return NewWAVSource(path)
	case ".mp3":
		return NewMP3Source(path)
	case ".flac":
		return NewFLACSource(path)
	case ".ogg", ".oga":
		return NewOGGSource(path)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}
