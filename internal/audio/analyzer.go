package audio

import (
	"errors"
	"io"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/wavetint/wavetint/internal/config"
)

// Spectra whose total normalized energy falls below this are silence.
const silenceThreshold = 1e-60

// ReadOutcome distinguishes a clean read from the zero-filled buffer
// substituted after a mid-stream decode failure.
type ReadOutcome int

const (
	ReadOK ReadOutcome = iota
	ReadDegraded
)

// PeakPair holds the extreme sample amplitudes of a block, ordered by time
// of occurrence: if the minimum was seen before the maximum the pair is
// (min, max), otherwise (max, min).
type PeakPair struct {
	First  float64
	Second float64
}

// Analyzer computes per-column peak pairs and spectral centroids over a
// SampleSource. It owns the source exclusively; no other code may seek or
// read it while the analyzer is live.
type Analyzer struct {
	src     SampleSource
	fftSize int
	fft     *fourier.FFT
	window  []float64

	// normalization derived once from the source's global peak amplitude
	// and the FFT response to a constant unit signal
	scale float64

	// bin indices as floats, reused by every centroid computation
	spectrumRange []float64

	// scratch buffers for SpectralCentroid
	windowed []float64
	coeffs   []complex128
	spectrum []float64

	lowerLog  float64
	higherLog float64
}

// NewAnalyzer scans the source once for its global peak amplitude and
// derives the spectrum normalization scale. A nil windowFn means Hanning.
func NewAnalyzer(src SampleSource, fftSize int, windowFn WindowFunc) *Analyzer {
	if windowFn == nil {
		windowFn = Hanning
	}

	a := &Analyzer{
		src:       src,
		fftSize:   fftSize,
		fft:       fourier.NewFFT(fftSize),
		window:    windowFn(fftSize),
		lowerLog:  math.Log10(config.LowerFreq),
		higherLog: math.Log10(config.HigherFreq),
	}

	bins := fftSize/2 + 1
	a.spectrumRange = make([]float64, bins)
	for i := range a.spectrumRange {
		a.spectrumRange[i] = float64(i)
	}
	a.windowed = make([]float64, fftSize)
	a.coeffs = make([]complex128, bins)
	a.spectrum = make([]float64, bins)

	// Peak FFT magnitude of the window applied to a constant unit signal:
	// the response ceiling a normalized spectrum is measured against.
	copy(a.windowed, a.window)
	magnitudes(a.fft, a.windowed, a.coeffs, a.spectrum)
	var maxFFT float64
	for _, m := range a.spectrum {
		if m > maxFFT {
			maxFFT = m
		}
	}

	if peak := a.maxLevel(); peak > 0 {
		a.scale = 1 / (peak * maxFFT)
	} else {
		a.scale = 1
	}
	return a
}

// Scale returns the spectrum normalization factor.
func (a *Analyzer) Scale() float64 { return a.scale }

// maxLevel scans the whole source for its peak absolute amplitude on the
// analysis channel. A decode failure stops the scan early; the partial
// result stands.
func (a *Analyzer) maxLevel() float64 {
	var peak float64
	if err := a.src.Seek(0); err != nil {
		return peak
	}

	chans := a.src.NumChannels()
	remaining := a.src.NumFrames()
	for remaining > 0 {
		toRead := int64(config.ScanBlockSize)
		if remaining < toRead {
			toRead = remaining
		}
		samples, err := a.src.ReadFrames(int(toRead))
		if err != nil || len(samples) == 0 {
			break
		}
		for i := 0; i < len(samples); i += chans {
			if v := math.Abs(samples[i]); v > peak {
				peak = v
			}
		}
		remaining -= int64(len(samples) / chans)
	}
	return peak
}

// Read returns size analysis-channel samples starting at frame start.
// Ranges reaching before frame 0 or past the end are zero-padded when
// resizeIfLess is set; otherwise the shorter, unpadded buffer is returned.
// A mid-read decode failure yields a zero-filled buffer and ReadDegraded
// rather than an error.
func (a *Analyzer) Read(start, size int64, resizeIfLess bool) ([]float64, ReadOutcome) {
	var addToStart, addToEnd, toRead int64
	nframes := a.src.NumFrames()

	if start < 0 {
		if size+start <= 0 {
			if resizeIfLess {
				return make([]float64, size), ReadOK
			}
			return []float64{}, ReadOK
		}
		if err := a.src.Seek(0); err != nil {
			return a.degraded(size, resizeIfLess)
		}
		addToStart = -start
		toRead = size + start
		if toRead > nframes {
			addToEnd = toRead - nframes
			toRead = nframes
		}
	} else {
		if err := a.src.Seek(start); err != nil {
			return a.degraded(size, resizeIfLess)
		}
		toRead = size
		if start+toRead >= nframes {
			toRead = nframes - start
			if toRead < 0 {
				toRead = 0
			}
			addToEnd = size - toRead
		}
	}

	samples, err := a.readChannel(toRead)
	if err != nil {
		return a.degraded(size, resizeIfLess)
	}

	if resizeIfLess && (addToStart > 0 || addToEnd > 0) {
		out := make([]float64, size)
		copy(out[addToStart:], samples)
		return out, ReadOK
	}
	return samples, ReadOK
}

// readChannel reads frames sequentially from the current source position,
// down-mixing by selecting the first channel.
func (a *Analyzer) readChannel(frames int64) ([]float64, error) {
	if frames <= 0 {
		return []float64{}, nil
	}

	chans := a.src.NumChannels()
	out := make([]float64, 0, frames)
	for int64(len(out)) < frames {
		n := frames - int64(len(out))
		if n > config.ScanBlockSize {
			n = config.ScanBlockSize
		}
		samples, err := a.src.ReadFrames(int(n))
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			break
		}
		for i := 0; i < len(samples); i += chans {
			out = append(out, samples[i])
		}
	}
	return out, nil
}

func (a *Analyzer) degraded(size int64, resizeIfLess bool) ([]float64, ReadOutcome) {
	if resizeIfLess {
		return make([]float64, size), ReadDegraded
	}
	return make([]float64, 2), ReadDegraded
}

// SpectralCentroid reads fftSize samples centered at seekPoint and returns
// the energy-weighted spectral centroid mapped onto a perceptual log scale
// in [0, 1], or -1 for silence.
func (a *Analyzer) SpectralCentroid(seekPoint int64) float64 {
	samples, _ := a.Read(seekPoint-int64(a.fftSize)/2, int64(a.fftSize), true)

	for i := range a.windowed {
		a.windowed[i] = samples[i] * a.window[i]
	}
	magnitudes(a.fft, a.windowed, a.coeffs, a.spectrum)

	// DC and near-DC carry no brightness information
	a.spectrum[0] = 0
	a.spectrum[1] = 0

	var energy float64
	for i := range a.spectrum {
		a.spectrum[i] *= a.scale
		energy += a.spectrum[i]
	}
	if energy < silenceThreshold {
		return -1
	}

	var weighted float64
	for i, m := range a.spectrum {
		weighted += m * a.spectrumRange[i]
	}
	length := float64(len(a.spectrum))
	centroid := weighted / (energy * (length - 1)) * float64(a.src.SampleRate()) * 0.5

	centroid = clamp(centroid, config.LowerFreq, config.HigherFreq)
	return (math.Log10(centroid) - a.lowerLog) / (a.higherLog - a.lowerLog)
}

// Peaks scans [startSeek, endSeek) and returns the extreme sample
// amplitudes ordered by time of occurrence. Ties keep the earliest index:
// later blocks only replace the running extremes on strict improvement.
func (a *Analyzer) Peaks(startSeek, endSeek int64) PeakPair {
	if nframes := a.src.NumFrames(); endSeek > nframes {
		endSeek = nframes
	}
	if endSeek <= startSeek {
		return PeakPair{}
	}

	maxValue, minValue := -1.0, 1.0
	var maxIndex, minIndex int64 = -1, -1

	blockSize := int64(config.ScanBlockSize)
	if endSeek-startSeek < blockSize {
		blockSize = endSeek - startSeek
	}

	for i := startSeek; i < endSeek; i += blockSize {
		samples, _ := a.Read(i, blockSize, false)
		for j, s := range samples {
			if s > maxValue {
				maxValue = s
				maxIndex = i + int64(j)
			}
			if s < minValue {
				minValue = s
				minIndex = i + int64(j)
			}
		}
	}

	if minIndex < maxIndex {
		return PeakPair{First: minValue, Second: maxValue}
	}
	return PeakPair{First: maxValue, Second: minValue}
}

func clamp(v, low, high float64) float64 {
	return math.Min(high, math.Max(low, v))
}
