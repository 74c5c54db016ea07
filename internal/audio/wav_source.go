package audio

import (
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource is a random-access SampleSource over a PCM WAV file. The
// go-audio decoder parses the header; frame reads then go straight to the
// data chunk, so a seek is a plain byte offset.
type WAVSource struct {
	file       *os.File
	sampleRate int
	numChans   int
	bitDepth   int
	dataStart  int64
	numFrames  int64
	pos        int64
}

// NewWAVSource opens a WAV file for random access.
func NewWAVSource(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	// The decoder reads headers without buffering ahead, so the file
	// offset now marks the start of the data chunk.
	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, err
	}

	bytesPerFrame := int64(d.NumChans) * int64(d.BitDepth/8)
	if bytesPerFrame == 0 {
		f.Close()
		return nil, fmt.Errorf("invalid WAV format: %d channels at %d bit", d.NumChans, d.BitDepth)
	}

	return &WAVSource{
		file:       f,
		sampleRate: int(d.SampleRate),
		numChans:   int(d.NumChans),
		bitDepth:   int(d.BitDepth),
		dataStart:  dataStart,
		numFrames:  d.PCMLen() / bytesPerFrame,
	}, nil
}

// Seek positions the source at the given frame index.
func (s *WAVSource) Seek(frame int64) error {
	bytesPerFrame := int64(s.numChans * s.bitDepth / 8)
	if _, err := s.file.Seek(s.dataStart+frame*bytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to frame %d: %w", frame, err)
	}
	s.pos = frame
	return nil
}

// ReadFrames reads up to n frames of interleaved samples.
func (s *WAVSource) ReadFrames(n int) ([]float64, error) {
	if s.pos >= s.numFrames {
		return nil, io.EOF
	}
	if int64(n) > s.numFrames-s.pos {
		n = int(s.numFrames - s.pos)
	}

	bytesPerSample := s.bitDepth / 8
	raw := make([]byte, n*s.numChans*bytesPerSample)
	read, err := io.ReadFull(s.file, raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	numSamples := read / bytesPerSample
	samples := make([]float64, numSamples)
	maxVal := float64(gaudio.IntMaxSignedValue(s.bitDepth))

	switch s.bitDepth {
	case 8:
		// 8-bit WAV is unsigned
		for i := 0; i < numSamples; i++ {
			samples[i] = float64(int(raw[i])-128) / 128.0
		}
	case 16:
		for i := 0; i < numSamples; i++ {
			v := int16(raw[i*2]) | int16(raw[i*2+1])<<8
			samples[i] = float64(v) / maxVal
		}
	case 24:
		for i := 0; i < numSamples; i++ {
			v := int32(raw[i*3]) | int32(raw[i*3+1])<<8 | int32(raw[i*3+2])<<16
			// sign extend from 24 bits
			v = v << 8 >> 8
			samples[i] = float64(v) / maxVal
		}
	case 32:
		for i := 0; i < numSamples; i++ {
			v := int32(raw[i*4]) | int32(raw[i*4+1])<<8 | int32(raw[i*4+2])<<16 | int32(raw[i*4+3])<<24
			samples[i] = float64(v) / maxVal
		}
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth: %d", s.bitDepth)
	}

	s.pos += int64(numSamples / s.numChans)
	return samples, nil
}

// SampleRate returns the sample rate in Hz.
func (s *WAVSource) SampleRate() int { return s.sampleRate }

// NumChannels returns the number of audio channels.
func (s *WAVSource) NumChannels() int { return s.numChans }

// NumFrames returns the total number of frames.
func (s *WAVSource) NumFrames() int64 { return s.numFrames }

// Close closes the underlying file.
func (s *WAVSource) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
