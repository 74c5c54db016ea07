package render

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/wavetint/wavetint/internal/audio"
)

func darkPreset(t *testing.T) Preset {
	t.Helper()
	p, ok := PresetByName("dark")
	if !ok {
		t.Fatal("dark preset missing")
	}
	return p
}

// TestNewWaveform_HeightParity verifies odd heights are accepted and even
// heights rejected with the sentinel error. The center baseline row only
// exists when the height is odd.
func TestNewWaveform_HeightParity(t *testing.T) {
	preset := darkPreset(t)

	for _, h := range []int{3, 5, 171, 255} {
		w, err := NewWaveform(10, h, preset)
		if err != nil {
			t.Errorf("NewWaveform(10, %d) returned error: %v", h, err)
			continue
		}
		b := w.Image().Bounds()
		if b.Dx() != 10 || b.Dy() != h {
			t.Errorf("image bounds = %dx%d, want 10x%d", b.Dx(), b.Dy(), h)
		}
	}

	for _, h := range []int{2, 4, 170, 500} {
		if _, err := NewWaveform(10, h, preset); !errors.Is(err, ErrEvenHeight) {
			t.Errorf("NewWaveform(10, %d) error = %v, want ErrEvenHeight", h, err)
		}
	}
}

// TestNewWaveform_BackgroundFill verifies the whole buffer starts as the
// preset background, including the last row, which a stride bug in the
// row-copy fill would leave black.
func TestNewWaveform_BackgroundFill(t *testing.T) {
	preset, ok := PresetByName("light")
	if !ok {
		t.Fatal("light preset missing")
	}

	w, err := NewWaveform(20, 11, preset)
	if err != nil {
		t.Fatal(err)
	}
	img := w.Image()

	for _, pt := range [][2]int{{0, 0}, {19, 0}, {7, 5}, {0, 10}, {19, 10}} {
		got := img.RGBAAt(pt[0], pt[1])
		if got != preset.Background {
			t.Errorf("pixel (%d, %d) = %v, want background %v", pt[0], pt[1], got, preset.Background)
		}
	}
}

// TestDrawPeaks_SilenceColor verifies a centroid of -1 draws the column in
// the fixed gray, not palette entry 0.
func TestDrawPeaks_SilenceColor(t *testing.T) {
	w, err := NewWaveform(10, 171, darkPreset(t))
	if err != nil {
		t.Fatal(err)
	}

	w.DrawPeaks(0, audio.PeakPair{First: 0.5, Second: -0.5}, -1)

	got := w.Image().RGBAAt(0, 85)
	if got != silenceColor {
		t.Errorf("silent column pixel = %v, want %v", got, silenceColor)
	}
}

// TestDrawPeaks_CentroidSelectsPaletteEnds verifies the centroid-to-palette
// mapping at both extremes using a two-color preset, where the expected
// entries are exactly the control colors.
func TestDrawPeaks_CentroidSelectsPaletteEnds(t *testing.T) {
	preset := Preset{
		Name:       "test",
		Background: color.RGBA{0, 0, 0, 255},
		Controls: []color.RGBA{
			{10, 20, 30, 255},
			{255, 70, 0, 255},
		},
	}

	t.Run("centroid 0 picks first control", func(t *testing.T) {
		w, err := NewWaveform(10, 171, preset)
		if err != nil {
			t.Fatal(err)
		}
		w.DrawPeaks(0, audio.PeakPair{First: 0.9, Second: -0.9}, 0)

		got := w.Image().RGBAAt(0, 85)
		if got != preset.Controls[0] {
			t.Errorf("pixel = %v, want %v", got, preset.Controls[0])
		}
	})

	t.Run("centroid 1 picks last control", func(t *testing.T) {
		w, err := NewWaveform(10, 171, preset)
		if err != nil {
			t.Fatal(err)
		}
		w.DrawPeaks(0, audio.PeakPair{First: 0.9, Second: -0.9}, 1)

		got := w.Image().RGBAAt(0, 85)
		if got != preset.Controls[1] {
			t.Errorf("pixel = %v, want %v", got, preset.Controls[1])
		}
	})
}

// TestDrawPeaks_ConnectsColumns verifies that consecutive columns are
// joined by a line from the previous column's lower peak. Gaps between
// columns would fragment the envelope.
func TestDrawPeaks_ConnectsColumns(t *testing.T) {
	w, err := NewWaveform(10, 171, darkPreset(t))
	if err != nil {
		t.Fatal(err)
	}

	// Flat peaks at the baseline, skipping columns 1 and 2: the connecting
	// line must fill them in.
	w.DrawPeaks(0, audio.PeakPair{}, 0.5)
	w.DrawPeaks(3, audio.PeakPair{}, 0.5)

	img := w.Image()
	bg := color.RGBA{0, 0, 0, 255}
	for x := 0; x <= 3; x++ {
		if got := img.RGBAAt(x, 85); got == bg {
			t.Errorf("pixel (%d, 85) still background, want connecting line", x)
		}
	}
}

// TestDrawPeaks_Deterministic verifies that identical draw sequences give
// byte-identical buffers. The pipeline's output must be reproducible for
// the same input.
func TestDrawPeaks_Deterministic(t *testing.T) {
	draw := func() *Waveform {
		w, err := NewWaveform(50, 171, darkPreset(t))
		if err != nil {
			t.Fatal(err)
		}
		for x := 0; x < 50; x++ {
			p := audio.PeakPair{
				First:  float64(x%7)/7 - 0.4,
				Second: 0.4 - float64(x%5)/5,
			}
			w.DrawPeaks(x, p, float64(x)/49)
		}
		w.Finalize()
		return w
	}

	a, b := draw(), draw()
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("identical draw sequences produced different buffers")
	}
}

// TestDrawPeaks_ExtremeAmplitudes verifies that peaks outside [-1, 1] are
// drawn without panicking; line pixels beyond the buffer are dropped.
func TestDrawPeaks_ExtremeAmplitudes(t *testing.T) {
	w, err := NewWaveform(4, 171, darkPreset(t))
	if err != nil {
		t.Fatal(err)
	}

	w.DrawPeaks(0, audio.PeakPair{First: 1.2, Second: -1.2}, 0.5)
	w.DrawPeaks(1, audio.PeakPair{First: -1.0, Second: 1.0}, 0.9)
	w.Finalize()
}

// TestFinalize_BaselineBoost verifies the center row brightens by exactly
// the boost amount and neighboring rows are untouched.
func TestFinalize_BaselineBoost(t *testing.T) {
	w, err := NewWaveform(10, 171, darkPreset(t))
	if err != nil {
		t.Fatal(err)
	}
	w.Finalize()

	img := w.Image()
	center := img.RGBAAt(5, 85)
	want := color.RGBA{25, 25, 25, 255}
	if center != want {
		t.Errorf("center row pixel = %v, want %v", center, want)
	}

	above := img.RGBAAt(5, 84)
	if (above != color.RGBA{0, 0, 0, 255}) {
		t.Errorf("row above baseline = %v, want untouched background", above)
	}
}

// TestFinalize_ClampsAtWhite verifies the boost saturates instead of
// wrapping around on bright backgrounds.
func TestFinalize_ClampsAtWhite(t *testing.T) {
	preset := Preset{
		Name:       "bright",
		Background: color.RGBA{250, 250, 250, 255},
		Controls: []color.RGBA{
			{0, 0, 0, 255},
			{255, 255, 255, 255},
		},
	}
	w, err := NewWaveform(4, 5, preset)
	if err != nil {
		t.Fatal(err)
	}
	w.Finalize()

	got := w.Image().RGBAAt(0, 2)
	want := color.RGBA{255, 255, 255, 255}
	if got != want {
		t.Errorf("clamped baseline pixel = %v, want %v", got, want)
	}
}
