package audio

import (
	"math"
	"testing"
)

// TestHanning_WindowProperties verifies Hanning window coefficients match
// expected mathematical properties. This catches off-by-one errors in the
// denominator that would subtly skew every spectrum.
func TestHanning_WindowProperties(t *testing.T) {
	size := 8
	w := Hanning(size)

	if len(w) != size {
		t.Fatalf("Window size mismatch: got %d, want %d", len(w), size)
	}

	// Start and end values should be zero (or very close)
	epsilon := 1e-10
	if math.Abs(w[0]) > epsilon {
		t.Errorf("Window start value %.15f is not zero", w[0])
	}
	if math.Abs(w[size-1]) > epsilon {
		t.Errorf("Window end value %.15f is not zero", w[size-1])
	}

	// Window should be symmetric
	for i := 0; i < size/2; i++ {
		if math.Abs(w[i]-w[size-1-i]) > epsilon {
			t.Errorf("Window not symmetric at position %d: %.15f != %.15f",
				i, w[i], w[size-1-i])
		}
	}

	t.Logf("Hanning window verified: start=%.15f, end=%.15f", w[0], w[size-1])
}

// TestHanning_OddLengthPeak verifies that an odd-length window peaks at
// exactly 1.0 in the center sample.
func TestHanning_OddLengthPeak(t *testing.T) {
	w := Hanning(9)

	if got := w[4]; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Center coefficient = %.15f, want 1.0", got)
	}
}

// TestHanning_SingleSample verifies the degenerate single-sample window,
// which would otherwise divide by zero in the coefficient formula.
func TestHanning_SingleSample(t *testing.T) {
	w := Hanning(1)

	if len(w) != 1 {
		t.Fatalf("Window size mismatch: got %d, want 1", len(w))
	}
	if w[0] != 1.0 {
		t.Errorf("Single-sample window = %.6f, want 1.0", w[0])
	}
}
