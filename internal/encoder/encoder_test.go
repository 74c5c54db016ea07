package encoder

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32, 17))
	for y := 0; y < 17; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 8), uint8(y * 15), 128, 255})
		}
	}
	return img
}

// TestEncode_FormatsRoundTrip verifies each supported extension writes a
// file that decodes back to the original dimensions.
func TestEncode_FormatsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	for _, name := range []string{"out.png", "out.jpg", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Encode(src, path); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("opening written file: %v", err)
			}
			defer f.Close()

			decoded, format, err := image.Decode(f)
			if err != nil {
				t.Fatalf("decoding written file: %v", err)
			}

			b := decoded.Bounds()
			if b.Dx() != 32 || b.Dy() != 17 {
				t.Errorf("decoded bounds = %dx%d, want 32x17", b.Dx(), b.Dy())
			}
			t.Logf("%s decoded as %s, %dx%d", name, format, b.Dx(), b.Dy())
		})
	}
}

// TestEncode_LosslessPixels verifies PNG output preserves exact pixel
// values. The rendered envelope must survive encoding untouched.
func TestEncode_LosslessPixels(t *testing.T) {
	dir := t.TempDir()
	src := testImage()
	path := filepath.Join(dir, "exact.png")

	if err := Encode(src, path); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	for _, pt := range [][2]int{{0, 0}, {31, 16}, {15, 8}} {
		r, g, b, a := decoded.At(pt[0], pt[1]).RGBA()
		want := src.RGBAAt(pt[0], pt[1])
		got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		if got != want {
			t.Errorf("pixel (%d, %d) = %v, want %v", pt[0], pt[1], got, want)
		}
	}
}

// TestEncode_UnknownExtension verifies unsupported formats fail fast with a
// named error instead of silently writing a mislabeled file.
func TestEncode_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	err := Encode(testImage(), filepath.Join(dir, "out.webp"))
	if err == nil {
		t.Error("Encode accepted unsupported extension")
	}
}
