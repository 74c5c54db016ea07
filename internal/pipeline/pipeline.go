package pipeline

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/wavetint/wavetint/internal/audio"
	"github.com/wavetint/wavetint/internal/config"
	"github.com/wavetint/wavetint/internal/render"
)

// ErrBudgetExceeded aborts a render whose wall-clock time runs out.
var ErrBudgetExceeded = errors.New("render budget exceeded")

// ProgressFunc receives completion percentages during a render. Returning
// an error aborts the render.
type ProgressFunc func(percent int) error

// Options configures a render.
type Options struct {
	Width   int
	Height  int
	FFTSize int
	Preset  render.Preset

	// Window selects the analysis window; nil means Hanning.
	Window audio.WindowFunc

	// Budget caps the render's wall-clock time; zero means the default.
	Budget time.Duration

	// Progress is invoked roughly ten times plus once at completion.
	// Nil disables reporting.
	Progress ProgressFunc
}

// Render maps the source onto opts.Width columns, draws each column's peak
// pair colored by spectral centroid, and returns the finished image.
func Render(src audio.SampleSource, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("image width must be positive, got %d", opts.Width)
	}
	if opts.Height <= 0 {
		return nil, fmt.Errorf("image height must be positive, got %d", opts.Height)
	}
	if opts.FFTSize <= 0 {
		return nil, fmt.Errorf("fft size must be positive, got %d", opts.FFTSize)
	}

	waveform, err := render.NewWaveform(opts.Width, opts.Height, opts.Preset)
	if err != nil {
		return nil, err
	}

	budget := opts.Budget
	if budget == 0 {
		budget = config.RenderBudget
	}
	deadline := time.Now().Add(budget)

	analyzer := audio.NewAnalyzer(src, opts.FFTSize, opts.Window)
	samplesPerPixel := float64(src.NumFrames()) / float64(opts.Width)

	progressStride := opts.Width / config.ProgressSteps
	if progressStride == 0 {
		progressStride = 1
	}

	for x := 0; x < opts.Width; x++ {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %d of %d columns", ErrBudgetExceeded, x, opts.Width)
		}
		if opts.Progress != nil && x%progressStride == 0 {
			if err := opts.Progress(x * 100 / opts.Width); err != nil {
				return nil, fmt.Errorf("progress callback: %w", err)
			}
		}

		seekPoint := int64(float64(x) * samplesPerPixel)
		nextSeekPoint := int64(float64(x+1) * samplesPerPixel)

		centroid := analyzer.SpectralCentroid(seekPoint)
		peaks := analyzer.Peaks(seekPoint, nextSeekPoint)
		waveform.DrawPeaks(x, peaks, centroid)
	}

	if opts.Progress != nil {
		if err := opts.Progress(100); err != nil {
			return nil, fmt.Errorf("progress callback: %w", err)
		}
	}

	waveform.Finalize()
	return waveform.Image(), nil
}
