package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// OGGSource is a seekable SampleSource over an Ogg Vorbis file.
type OGGSource struct {
	reader     *oggvorbis.Reader
	file       *os.File
	sampleRate int
	numChans   int
	numFrames  int64
	pos        int64
}

// NewOGGSource opens an Ogg Vorbis file for random access.
func NewOGGSource(path string) (*OGGSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create Vorbis decoder: %w", err)
	}

	return &OGGSource{
		reader:     r,
		file:       f,
		sampleRate: r.SampleRate(),
		numChans:   r.Channels(),
		numFrames:  r.Length(),
	}, nil
}

// Seek positions the source at the given frame index.
func (s *OGGSource) Seek(frame int64) error {
	if err := s.reader.SetPosition(frame); err != nil {
		return fmt.Errorf("seeking to frame %d: %w", frame, err)
	}
	s.pos = frame
	return nil
}

// ReadFrames reads up to n frames of interleaved samples.
func (s *OGGSource) ReadFrames(n int) ([]float64, error) {
	if s.pos >= s.numFrames {
		return nil, io.EOF
	}
	if int64(n) > s.numFrames-s.pos {
		n = int(s.numFrames - s.pos)
	}

	buf := make([]float32, n*s.numChans)
	total := 0
	for total < len(buf) {
		read, err := s.reader.Read(buf[total:])
		total += read
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading Vorbis data: %w", err)
		}
	}

	if total == 0 {
		return nil, io.EOF
	}

	// keep whole frames only
	total -= total % s.numChans
	samples := make([]float64, total)
	for i := 0; i < total; i++ {
		samples[i] = float64(buf[i])
	}

	s.pos += int64(total / s.numChans)
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (s *OGGSource) SampleRate() int { return s.sampleRate }

// NumChannels returns the number of audio channels.
func (s *OGGSource) NumChannels() int { return s.numChans }

// NumFrames returns the total number of frames.
func (s *OGGSource) NumFrames() int64 { return s.numFrames }

// Close closes the underlying file.
func (s *OGGSource) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
