package main

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wavetint/wavetint/internal/audio"
	"github.com/wavetint/wavetint/internal/cli"
	"github.com/wavetint/wavetint/internal/encoder"
	"github.com/wavetint/wavetint/internal/pipeline"
	"github.com/wavetint/wavetint/internal/render"
	"github.com/wavetint/wavetint/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Input   string  `arg:"" name:"input" help:"Input audio file (wav, mp3, flac, ogg)" optional:""`
	Output  string  `arg:"" name:"output" help:"Output image file (png, jpg, bmp, tiff)" optional:""`
	Width   int     `help:"Image width in pixels" default:"500"`
	Height  int     `help:"Image height in pixels (must be odd)" default:"171"`
	FFTSize int     `name:"fft-size" help:"FFT window size for centroid analysis" default:"2048"`
	Palette string  `help:"Color palette: dark, spectrum, light, light-spectrum" default:"dark"`
	Synth   float64 `help:"Render a built-in test tone of this many seconds instead of reading input" default:"0"`
	NoUI    bool    `name:"no-ui" help:"Disable the interactive progress display"`
	Version bool    `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("wavetint"),
		kong.Description("Paint an audio file's waveform as an image, tinted by spectral brightness."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Synth > 0 {
		// the test tone replaces the input argument; treat a lone
		// positional as the output path
		if CLI.Output == "" {
			CLI.Input, CLI.Output = "", CLI.Input
		}
	}
	if CLI.Output == "" || (CLI.Input == "" && CLI.Synth <= 0) {
		cli.PrintError("<input> and <output> are required")
		os.Exit(1)
	}

	preset, ok := render.PresetByName(CLI.Palette)
	if !ok {
		cli.PrintError(fmt.Sprintf("unknown palette %q (available: %v)", CLI.Palette, render.PresetNames()))
		os.Exit(1)
	}

	var src audio.SampleSource
	if CLI.Synth > 0 {
		src = audio.NewSynthSource(int64(CLI.Synth*44100), 44100, 2)
		CLI.Input = fmt.Sprintf("%.1fs test tone", CLI.Synth)
	} else {
		if _, err := os.Stat(CLI.Input); os.IsNotExist(err) {
			cli.PrintError(fmt.Sprintf("input file does not exist: %s", CLI.Input))
			os.Exit(1)
		}
		opened, err := audio.Open(CLI.Input)
		if err != nil {
			cli.PrintError(fmt.Sprintf("opening audio: %v", err))
			os.Exit(1)
		}
		src = opened
	}
	defer src.Close()

	opts := pipeline.Options{
		Width:   CLI.Width,
		Height:  CLI.Height,
		FFTSize: CLI.FFTSize,
		Preset:  preset,
	}

	if CLI.NoUI {
		renderPlain(src, opts)
		return
	}
	renderWithUI(src, opts)
}

// renderPlain renders without the interactive display, printing progress
// lines instead. Suited to scripts and CI logs.
func renderPlain(src audio.SampleSource, opts pipeline.Options) {
	start := time.Now()
	opts.Progress = func(percent int) error {
		fmt.Printf("rendering: %d%%\n", percent)
		return nil
	}

	img, err := pipeline.Render(src, opts)
	if err != nil {
		cli.PrintError(fmt.Sprintf("rendering: %v", err))
		os.Exit(1)
	}

	writeOutput(img, time.Since(start))
}

// renderWithUI runs the render in a goroutine, feeding progress into the
// Bubbletea display.
func renderWithUI(src audio.SampleSource, opts pipeline.Options) {
	start := time.Now()
	model := ui.NewModel(CLI.Input)
	p := tea.NewProgram(model)

	var img *image.RGBA
	var renderErr error

	go func() {
		opts.Progress = func(percent int) error {
			p.Send(ui.RenderProgress{
				Percent: percent,
				Elapsed: time.Since(start),
			})
			return nil
		}

		img, renderErr = pipeline.Render(src, opts)
		if renderErr != nil {
			p.Send(ui.RenderFailed{Err: renderErr})
			return
		}

		if err := encoder.Encode(img, CLI.Output); err != nil {
			renderErr = err
			p.Send(ui.RenderFailed{Err: err})
			return
		}

		var size int64
		if info, err := os.Stat(CLI.Output); err == nil {
			size = info.Size()
		}
		p.Send(ui.RenderComplete{
			Output:  CLI.Output,
			Size:    size,
			Width:   opts.Width,
			Height:  opts.Height,
			Elapsed: time.Since(start),
		})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		os.Exit(1)
	}

	if renderErr != nil {
		cli.PrintError(fmt.Sprintf("rendering: %v", renderErr))
		os.Exit(1)
	}

	cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", CLI.Output))
}

// writeOutput encodes the image and prints a summary.
func writeOutput(img *image.RGBA, elapsed time.Duration) {
	if err := encoder.Encode(img, CLI.Output); err != nil {
		cli.PrintError(fmt.Sprintf("writing output: %v", err))
		os.Exit(1)
	}

	cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", CLI.Output))
	cli.PrintInfo("Image", fmt.Sprintf("%dx%d", CLI.Width, CLI.Height))
	if info, err := os.Stat(CLI.Output); err == nil {
		cli.PrintInfo("Size", cli.FormatBytes(info.Size()))
	}
	cli.PrintInfo("Time", cli.FormatDuration(elapsed))
}
