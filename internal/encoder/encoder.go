// Package encoder writes rendered images to disk, picking the format from
// the output path's extension.
package encoder

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// jpegQuality trades file size against banding in palette gradients.
const jpegQuality = 95

// Encode writes img to path. Supported extensions are .png (also the
// default for no extension), .jpg/.jpeg, .bmp and .tif/.tiff.
func Encode(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		f.Close()
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	if err != nil {
		f.Close()
		return fmt.Errorf("encoding image: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
