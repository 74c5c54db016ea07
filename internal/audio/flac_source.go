package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACSource is a seekable SampleSource over a FLAC file. The flac stream
// seeks to the frame containing a sample; the remainder of the skip happens
// sample by sample while filling the leftover buffer.
type FLACSource struct {
	stream     *flac.Stream
	file       *os.File
	sampleRate int
	numChans   int
	numFrames  int64
	pos        int64

	// decoded interleaved samples not yet handed out
	leftover []float64
	// frames to drop before leftover lines up with pos
	skip int64
}

// NewFLACSource opens a FLAC file for random access.
func NewFLACSource(path string) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stream, err := flac.NewSeek(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	info := stream.Info
	return &FLACSource{
		stream:     stream,
		file:       f,
		sampleRate: int(info.SampleRate),
		numChans:   int(info.NChannels),
		numFrames:  int64(info.NSamples),
	}, nil
}

// Seek positions the source at the given frame index.
func (s *FLACSource) Seek(frame int64) error {
	if frame < 0 {
		frame = 0
	}
	if frame > s.numFrames {
		frame = s.numFrames
	}

	actual, err := s.stream.Seek(uint64(frame))
	if err != nil {
		return fmt.Errorf("seeking to frame %d: %w", frame, err)
	}

	s.pos = frame
	s.leftover = s.leftover[:0]
	// the stream lands on the start of the enclosing FLAC frame
	s.skip = frame - int64(actual)
	if s.skip < 0 {
		s.skip = 0
	}
	return nil
}

// ReadFrames reads up to n frames of interleaved samples.
func (s *FLACSource) ReadFrames(n int) ([]float64, error) {
	if s.pos >= s.numFrames {
		return nil, io.EOF
	}
	if int64(n) > s.numFrames-s.pos {
		n = int(s.numFrames - s.pos)
	}

	want := (s.skip + int64(n)) * int64(s.numChans)
	for int64(len(s.leftover)) < want {
		frame, err := s.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parsing FLAC frame: %w", err)
		}

		blockLen := len(frame.Subframes[0].Samples)
		maxVal := float64(int64(1) << (frame.BitsPerSample - 1))
		for i := 0; i < blockLen; i++ {
			for _, sub := range frame.Subframes {
				s.leftover = append(s.leftover, float64(sub.Samples[i])/maxVal)
			}
		}
	}

	if s.skip > 0 {
		drop := s.skip * int64(s.numChans)
		if drop > int64(len(s.leftover)) {
			drop = int64(len(s.leftover))
		}
		s.leftover = s.leftover[drop:]
		s.skip = 0
	}

	take := n * s.numChans
	if take > len(s.leftover) {
		take = len(s.leftover)
	}
	if take == 0 {
		return nil, io.EOF
	}

	samples := make([]float64, take)
	copy(samples, s.leftover[:take])
	s.leftover = s.leftover[take:]
	s.pos += int64(take / s.numChans)
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (s *FLACSource) SampleRate() int { return s.sampleRate }

// NumChannels returns the number of audio channels.
func (s *FLACSource) NumChannels() int { return s.numChans }

// NumFrames returns the total number of frames.
func (s *FLACSource) NumFrames() int64 { return s.numFrames }

// Close closes the stream and the underlying file.
func (s *FLACSource) Close() error {
	if s.stream != nil {
		s.stream.Close()
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
