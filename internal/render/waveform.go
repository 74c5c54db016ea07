package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/wavetint/wavetint/internal/audio"
)

// ErrEvenHeight rejects renderer construction with an even image height.
// An odd height keeps a single unambiguous center row for the baseline.
var ErrEvenHeight = errors.New("image height must be an odd number")

// silenceColor draws columns whose centroid marks silence.
var silenceColor = color.RGBA{50, 50, 50, 255}

// baselineBoost is the additive per-channel brighten of the center row.
const baselineBoost = 25

// Waveform draws per-column peak pairs into an RGB pixel buffer, picking
// the line color from a palette lookup indexed by spectral centroid.
// Columns must be drawn left to right: each column's line connects to the
// previous column's lower peak coordinate.
type Waveform struct {
	img     *image.RGBA
	width   int
	height  int
	palette []color.RGBA

	// previous column's lower peak coordinate
	prevX   int
	prevY   float64
	hasPrev bool
}

// NewWaveform allocates a width by height pixel buffer filled with the
// preset's background color and builds the palette lookup.
func NewWaveform(width, height int, preset Preset) (*Waveform, error) {
	if height%2 == 0 {
		return nil, ErrEvenHeight
	}

	controls := preset.Controls
	if preset.Desaturate > 0 {
		controls = make([]color.RGBA, len(preset.Controls))
		for i, c := range preset.Controls {
			controls[i] = Desaturate(c, preset.Desaturate)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.SetRGBA(x, 0, preset.Background)
	}
	for y := 1; y < height; y++ {
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], img.Pix[:img.Stride])
	}

	return &Waveform{
		img:     img,
		width:   width,
		height:  height,
		palette: InterpolateColors(controls, PaletteSize),
	}, nil
}

// DrawPeaks draws column x's peak pair, connecting it to the previous
// column and anti-aliasing the vertical extremes. A centroid of -1 selects
// the silence color; any other value indexes the palette.
func (w *Waveform) DrawPeaks(x int, peaks audio.PeakPair, centroid float64) {
	h := float64(w.height)
	y1 := h*0.5 - peaks.First*(h-4)*0.5
	y2 := h*0.5 - peaks.Second*(h-4)*0.5

	lineColor := silenceColor
	if centroid != -1 {
		lineColor = w.palette[int(centroid*float64(PaletteSize-1))]
	}

	if w.hasPrev {
		w.drawLine(w.prevX, int(w.prevY), x, int(y1), lineColor)
	}
	w.drawLine(x, int(y1), x, int(y2), lineColor)
	w.prevX, w.prevY, w.hasPrev = x, y2, true

	w.antiAlias(x, y1, y2, lineColor)
}

// Finalize brightens the exact center row to mark the zero baseline. Call
// once, after the last column; the buffer then belongs to the encoder.
func (w *Waveform) Finalize() {
	y := w.height / 2
	for x := 0; x < w.width; x++ {
		o := y*w.img.Stride + x*4
		for i := 0; i < 3; i++ {
			v := int(w.img.Pix[o+i]) + baselineBoost
			if v > 255 {
				v = 255
			}
			w.img.Pix[o+i] = uint8(v)
		}
	}
}

// Image exposes the pixel buffer. No draw may follow the handoff.
func (w *Waveform) Image() *image.RGBA { return w.img }

// drawLine draws an integer-coordinate segment, endpoints inclusive.
func (w *Waveform) drawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		w.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// antiAlias blends the pixel just beyond each vertical extreme of the
// column's segment by the fractional part of the endpoint coordinate.
// Rows outside the buffer are skipped.
func (w *Waveform) antiAlias(x int, y1, y2 float64, c color.RGBA) {
	yMax := math.Max(y1, y2)
	yMaxInt := int(yMax)
	alpha := yMax - float64(yMaxInt)
	if alpha > 0 && alpha < 1 && yMaxInt+1 < w.height {
		w.blendPixel(x, yMaxInt+1, c, alpha)
	}

	yMin := math.Min(y1, y2)
	yMinInt := int(yMin)
	alpha = 1.0 - (yMin - float64(yMinInt))
	if alpha > 0 && alpha < 1 && yMinInt >= 1 {
		w.blendPixel(x, yMinInt-1, c, alpha)
	}
}

func (w *Waveform) setPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return
	}
	o := y*w.img.Stride + x*4
	w.img.Pix[o] = c.R
	w.img.Pix[o+1] = c.G
	w.img.Pix[o+2] = c.B
	w.img.Pix[o+3] = 255
}

func (w *Waveform) blendPixel(x, y int, c color.RGBA, alpha float64) {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return
	}
	o := y*w.img.Stride + x*4
	w.img.Pix[o] = uint8((1-alpha)*float64(w.img.Pix[o]) + alpha*float64(c.R))
	w.img.Pix[o+1] = uint8((1-alpha)*float64(w.img.Pix[o+1]) + alpha*float64(c.G))
	w.img.Pix[o+2] = uint8((1-alpha)*float64(w.img.Pix[o+2]) + alpha*float64(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
