package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of entries in a color lookup table.
const PaletteSize = 256

// Preset describes a palette as data: a background color, an ordered list
// of control colors, and an optional desaturation amount applied to the
// controls before interpolation.
type Preset struct {
	Name       string
	Background color.RGBA
	Controls   []color.RGBA
	Desaturate float64
}

var (
	black     = color.RGBA{0, 0, 0, 255}
	lightGray = color.RGBA{213, 217, 221, 255}
)

// Presets in the order they are exposed on the command line.
var Presets = []Preset{
	{
		Name:       "dark",
		Background: black,
		Controls: []color.RGBA{
			{50, 0, 200, 255},
			{0, 220, 80, 255},
			{255, 224, 0, 255},
			{255, 70, 0, 255},
		},
	},
	{
		Name:       "spectrum",
		Background: black,
		Controls:   spectrumControls(),
	},
	{
		Name:       "light",
		Background: lightGray,
		Controls: []color.RGBA{
			{50, 0, 200, 255},
			{0, 220, 80, 255},
			{255, 224, 0, 255},
		},
		Desaturate: 0.7,
	},
	{
		Name:       "light-spectrum",
		Background: lightGray,
		Controls:   spectrumControls(),
		Desaturate: 0.8,
	},
}

// PresetByName looks up a built-in preset.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetNames lists the built-in preset names.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// spectrumControls sweeps the hue circle from red back through violet,
// low centroids landing on cool hues and bright ones on warm.
func spectrumControls() []color.RGBA {
	controls := make([]color.RGBA, 30)
	for i := range controls {
		value := float64(i) / 29.0
		hue := float64(int((1.0 - value) * 360))
		r, g, b := colorful.Hsl(hue, 0.8, 0.5).RGB255()
		controls[i] = color.RGBA{r, g, b, 255}
	}
	return controls
}

// Desaturate pulls each channel toward the color's mean luminosity.
// Amount 0 leaves the color unchanged, 1 turns it gray.
func Desaturate(c color.RGBA, amount float64) color.RGBA {
	luminosity := (float64(c.R) + float64(c.G) + float64(c.B)) / 3.0
	desat := func(ch uint8) uint8 {
		return uint8(float64(ch) - amount*(float64(ch)-luminosity))
	}
	return color.RGBA{desat(c.R), desat(c.G), desat(c.B), 255}
}

// InterpolateColors expands control colors into a lookup table of size
// entries by piecewise linear interpolation. Channel values truncate to
// integers; entry i sits at fractional position i*(N-1)/(size-1).
func InterpolateColors(controls []color.RGBA, size int) []color.RGBA {
	palette := make([]color.RGBA, size)
	n := len(controls)

	for i := range palette {
		index := float64(i*(n-1)) / float64(size-1)
		j := int(index)
		alpha := index - float64(j)

		if alpha > 0 {
			palette[i] = color.RGBA{
				R: uint8((1-alpha)*float64(controls[j].R) + alpha*float64(controls[j+1].R)),
				G: uint8((1-alpha)*float64(controls[j].G) + alpha*float64(controls[j+1].G)),
				B: uint8((1-alpha)*float64(controls[j].B) + alpha*float64(controls[j+1].B)),
				A: 255,
			}
		} else {
			palette[i] = controls[j]
		}
	}
	return palette
}
