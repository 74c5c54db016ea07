package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrCorrupt marks a simulated mid-stream decode failure.
var ErrCorrupt = errors.New("corrupt audio data")

// SynthSource is an in-memory SampleSource generating a deterministic
// two-tone signal. It can be told to behave like a file with a broken
// header, failing every read that touches frames at or past a cutoff.
// Useful for tests and for exercising the pipeline without an input file.
type SynthSource struct {
	frames     int64
	sampleRate int
	numChans   int
	amplitude  float64
	failAfter  int64 // <0 disables
	pos        int64
}

// NewSynthSource creates a synthetic source of the given length.
func NewSynthSource(frames int64, sampleRate, channels int) *SynthSource {
	return &SynthSource{
		frames:     frames,
		sampleRate: sampleRate,
		numChans:   channels,
		amplitude:  0.8,
		failAfter:  -1,
	}
}

// SetAmplitude scales the generated signal. Zero produces digital silence.
func (s *SynthSource) SetAmplitude(a float64) { s.amplitude = a }

// FailAfter makes any read that extends to frame n or beyond fail with
// ErrCorrupt, simulating a truncated or corrupt container.
func (s *SynthSource) FailAfter(n int64) { s.failAfter = n }

// SampleAt returns the sample the source generates for a frame and channel.
func (s *SynthSource) SampleAt(frame int64, channel int) float64 {
	t := float64(frame) / float64(s.sampleRate)
	v := s.amplitude * (0.7*math.Sin(2*math.Pi*440*t) + 0.25*math.Sin(2*math.Pi*6300*t))
	if channel > 0 {
		v *= 0.5
	}
	return v
}

// Seek positions the source at the given frame index.
func (s *SynthSource) Seek(frame int64) error {
	s.pos = frame
	return nil
}

// ReadFrames generates up to n frames of interleaved samples.
func (s *SynthSource) ReadFrames(n int) ([]float64, error) {
	if s.failAfter >= 0 && s.pos+int64(n) > s.failAfter {
		return nil, fmt.Errorf("read at frame %d: %w", s.pos, ErrCorrupt)
	}
	if s.pos >= s.frames {
		return nil, io.EOF
	}
	if int64(n) > s.frames-s.pos {
		n = int(s.frames - s.pos)
	}

	samples := make([]float64, n*s.numChans)
	for i := 0; i < n; i++ {
		for ch := 0; ch < s.numChans; ch++ {
			samples[i*s.numChans+ch] = s.SampleAt(s.pos+int64(i), ch)
		}
	}
	s.pos += int64(n)
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (s *SynthSource) SampleRate() int { return s.sampleRate }

// NumChannels returns the number of audio channels.
func (s *SynthSource) NumChannels() int { return s.numChans }

// NumFrames returns the total number of frames.
func (s *SynthSource) NumFrames() int64 { return s.frames }

// Close is a no-op.
func (s *SynthSource) Close() error { return nil }

// SliceSource serves interleaved samples from memory. Tests use it when the
// exact sample values matter.
type SliceSource struct {
	samples    []float64
	sampleRate int
	numChans   int
	pos        int64
}

// NewSliceSource wraps interleaved samples in a SampleSource.
func NewSliceSource(samples []float64, sampleRate, channels int) *SliceSource {
	return &SliceSource{samples: samples, sampleRate: sampleRate, numChans: channels}
}

// Seek positions the source at the given frame index.
func (s *SliceSource) Seek(frame int64) error {
	s.pos = frame
	return nil
}

// ReadFrames reads up to n frames of interleaved samples.
func (s *SliceSource) ReadFrames(n int) ([]float64, error) {
	total := s.NumFrames()
	if s.pos >= total {
		return nil, io.EOF
	}
	if int64(n) > total-s.pos {
		n = int(total - s.pos)
	}
	start := s.pos * int64(s.numChans)
	out := make([]float64, n*s.numChans)
	copy(out, s.samples[start:start+int64(len(out))])
	s.pos += int64(n)
	return out, nil
}

// SampleRate returns the sample rate in Hz.
func (s *SliceSource) SampleRate() int { return s.sampleRate }

// NumChannels returns the number of audio channels.
func (s *SliceSource) NumChannels() int { return s.numChans }

// NumFrames returns the total number of frames.
func (s *SliceSource) NumFrames() int64 { return int64(len(s.samples) / s.numChans) }

// Close is a no-op.
func (s *SliceSource) Close() error { return nil }
