package config

import "time"

// Image defaults
const (
	DefaultWidth  = 500
	DefaultHeight = 171 // odd, so the baseline lands on a single center row
)

// Analysis settings
const (
	DefaultFFTSize = 2048
	ScanBlockSize  = 4096 // frames per block for peak and level scans

	// Spectral centroid frequency bounds in Hz. Centroids are clipped to
	// this range before the perceptual log mapping.
	LowerFreq  = 100
	HigherFreq = 22050
)

// Render loop settings
const (
	// RenderBudget caps the wall clock time of a single render. A render
	// that exceeds it is aborted rather than left to crawl on a
	// pathological input.
	RenderBudget = 30 * time.Second

	// ProgressSteps is the number of progress callbacks spread across the
	// column loop, not counting the final 100% call.
	ProgressSteps = 10
)

// DefaultPalette is the preset used when none is requested.
const DefaultPalette = "dark"
