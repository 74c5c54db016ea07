package audio

import (
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always yields 16-bit little-endian stereo, four bytes per frame.
const mp3BytesPerFrame = 4

// MP3Source is a seekable SampleSource over an MP3 file.
type MP3Source struct {
	decoder    *mp3.Decoder
	file       *os.File
	sampleRate int
	numFrames  int64
	pos        int64
}

// NewMP3Source opens an MP3 file for random access.
func NewMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	return &MP3Source{
		decoder:    decoder,
		file:       f,
		sampleRate: decoder.SampleRate(),
		numFrames:  decoder.Length() / mp3BytesPerFrame,
	}, nil
}

// Seek positions the source at the given frame index.
func (s *MP3Source) Seek(frame int64) error {
	if _, err := s.decoder.Seek(frame*mp3BytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to frame %d: %w", frame, err)
	}
	s.pos = frame
	return nil
}

// ReadFrames reads up to n frames of interleaved stereo samples.
func (s *MP3Source) ReadFrames(n int) ([]float64, error) {
	if s.pos >= s.numFrames {
		return nil, io.EOF
	}
	if int64(n) > s.numFrames-s.pos {
		n = int(s.numFrames - s.pos)
	}

	buf := make([]byte, n*mp3BytesPerFrame)
	total := 0
	for total < len(buf) {
		read, err := s.decoder.Read(buf[total:])
		total += read
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading MP3 data: %w", err)
		}
	}

	if total == 0 {
		return nil, io.EOF
	}

	frames := total / mp3BytesPerFrame
	samples := make([]float64, frames*2)
	for i := 0; i < frames; i++ {
		left := int16(buf[i*4]) | int16(buf[i*4+1])<<8
		right := int16(buf[i*4+2]) | int16(buf[i*4+3])<<8
		samples[i*2] = float64(left) / 32768.0
		samples[i*2+1] = float64(right) / 32768.0
	}

	s.pos += int64(frames)
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (s *MP3Source) SampleRate() int { return s.sampleRate }

// NumChannels returns 2; go-mp3 always outputs stereo.
func (s *MP3Source) NumChannels() int { return 2 }

// NumFrames returns the total number of frames.
func (s *MP3Source) NumFrames() int64 { return s.numFrames }

// Close closes the underlying file.
func (s *MP3Source) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
