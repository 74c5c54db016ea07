package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// WindowFunc returns n window coefficients.
type WindowFunc func(n int) []float64

// Hanning returns the symmetric Hann window of length n.
func Hanning(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// magnitudes writes |rfft(seq)| into dst. coeffs and dst must both hold
// fft.Len()/2+1 entries; the coefficient buffer is reused across calls.
func magnitudes(fft *fourier.FFT, seq []float64, coeffs []complex128, dst []float64) {
	coeffs = fft.Coefficients(coeffs, seq)
	for i, c := range coeffs {
		dst[i] = cmplx.Abs(c)
	}
}
