package pipeline

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/wavetint/wavetint/internal/audio"
	"github.com/wavetint/wavetint/internal/render"
)

func testPreset(t *testing.T) render.Preset {
	t.Helper()
	p, ok := render.PresetByName("dark")
	if !ok {
		t.Fatal("dark preset missing")
	}
	return p
}

// TestRender_RejectsDegenerateOptions verifies dimension and FFT size
// validation happens before any audio is touched.
func TestRender_RejectsDegenerateOptions(t *testing.T) {
	src := audio.NewSynthSource(1000, 44100, 1)
	preset := testPreset(t)

	cases := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{Width: 0, Height: 171, FFTSize: 2048, Preset: preset}},
		{"negative width", Options{Width: -5, Height: 171, FFTSize: 2048, Preset: preset}},
		{"zero height", Options{Width: 100, Height: 0, FFTSize: 2048, Preset: preset}},
		{"zero fft size", Options{Width: 100, Height: 171, FFTSize: 0, Preset: preset}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Render(src, tc.opts); err == nil {
				t.Error("Render accepted degenerate options")
			}
		})
	}

	t.Run("even height", func(t *testing.T) {
		opts := Options{Width: 100, Height: 170, FFTSize: 2048, Preset: preset}
		if _, err := Render(src, opts); !errors.Is(err, render.ErrEvenHeight) {
			t.Errorf("error = %v, want ErrEvenHeight", err)
		}
	})
}

// TestRender_Deterministic verifies two renders of the same source give
// byte-identical images.
func TestRender_Deterministic(t *testing.T) {
	opts := Options{Width: 60, Height: 61, FFTSize: 512, Preset: testPreset(t)}

	renderOnce := func() []byte {
		src := audio.NewSynthSource(44100, 44100, 1)
		img, err := Render(src, opts)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return img.Pix
	}

	if !bytes.Equal(renderOnce(), renderOnce()) {
		t.Error("renders of the same source differ")
	}
}

// TestRender_ProgressCadence verifies the callback fires once per tenth of
// the width plus a final 100%, with nondecreasing percentages.
func TestRender_ProgressCadence(t *testing.T) {
	src := audio.NewSynthSource(44100, 44100, 1)

	var percents []int
	opts := Options{
		Width:   100,
		Height:  61,
		FFTSize: 512,
		Preset:  testPreset(t),
		Progress: func(percent int) error {
			percents = append(percents, percent)
			return nil
		},
	}

	if _, err := Render(src, opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	t.Logf("progress reports: %v", percents)

	if len(percents) != 11 {
		t.Errorf("got %d progress reports, want 11", len(percents))
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("final report = %d, want 100", percents[len(percents)-1])
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Errorf("progress went backwards: %d after %d", percents[i], percents[i-1])
		}
	}
}

// TestRender_ProgressErrorAborts verifies a callback error stops the render
// and surfaces through the returned error chain.
func TestRender_ProgressErrorAborts(t *testing.T) {
	src := audio.NewSynthSource(44100, 44100, 1)
	abort := errors.New("user cancelled")

	opts := Options{
		Width:   100,
		Height:  61,
		FFTSize: 512,
		Preset:  testPreset(t),
		Progress: func(percent int) error {
			if percent >= 10 {
				return abort
			}
			return nil
		},
	}

	_, err := Render(src, opts)
	if !errors.Is(err, abort) {
		t.Errorf("error = %v, want wrapped %v", err, abort)
	}
}

// TestRender_BudgetExceeded verifies the wall-clock budget aborts a render
// rather than letting a pathological input run unbounded.
func TestRender_BudgetExceeded(t *testing.T) {
	src := audio.NewSynthSource(44100, 44100, 1)

	opts := Options{
		Width:   500,
		Height:  171,
		FFTSize: 2048,
		Preset:  testPreset(t),
		Budget:  time.Nanosecond,
	}

	_, err := Render(src, opts)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("error = %v, want ErrBudgetExceeded", err)
	}
}

// TestRender_BrokenSource verifies a source that fails mid-stream still
// renders to completion; the corrupt region comes out as silence.
func TestRender_BrokenSource(t *testing.T) {
	src := audio.NewSynthSource(44100, 44100, 1)
	src.FailAfter(22050)

	opts := Options{Width: 60, Height: 61, FFTSize: 512, Preset: testPreset(t)}
	img, err := Render(src, opts)
	if err != nil {
		t.Fatalf("Render failed on broken source: %v", err)
	}
	if img == nil {
		t.Fatal("Render returned nil image")
	}
}

// TestRender_TinyDimensions verifies widths below the progress stride and
// minimal odd heights render without a division by zero.
func TestRender_TinyDimensions(t *testing.T) {
	src := audio.NewSynthSource(4410, 44100, 1)

	opts := Options{Width: 4, Height: 5, FFTSize: 256, Preset: testPreset(t)}
	img, err := Render(src, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 5 {
		t.Errorf("image bounds = %dx%d, want 4x5", b.Dx(), b.Dy())
	}
}
