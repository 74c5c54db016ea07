package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette, matching the default waveform preset
var (
	Violet   = lipgloss.Color("#3200C8") // low-centroid end of the palette
	Lime     = lipgloss.Color("#00DC50") // mid palette green
	Amber    = lipgloss.Color("#FFE000") // bright-centroid yellow
	Ember    = lipgloss.Color("#FF4600") // hottest palette stop
	WarmGray = lipgloss.Color("#888888")
	White    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Violet).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(WarmGray).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Lime)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Ember)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Amber)

	KeyStyle = lipgloss.NewStyle().
			Foreground(WarmGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Wavetint 🌊"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key-value pair
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
