package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Waveform palette colours 🌊
var (
	tintViolet = lipgloss.Color("#3200C8") // cold end of the gradient
	tintGreen  = lipgloss.Color("#00DC50")
	tintYellow = lipgloss.Color("#FFE000")
	tintEmber  = lipgloss.Color("#FF4600") // hot end of the gradient
)

// RenderProgress reports columns drawn so far.
type RenderProgress struct {
	Percent int
	Elapsed time.Duration
}

// RenderComplete signals a finished render and written output file.
type RenderComplete struct {
	Output  string
	Size    int64
	Width   int
	Height  int
	Elapsed time.Duration
}

// RenderFailed signals an aborted render.
type RenderFailed struct {
	Err error
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model drives the terminal progress display for a render.
type Model struct {
	progressBar progress.Model

	input   string
	percent int
	elapsed time.Duration

	complete *RenderComplete
	failed   error

	startTime       time.Time
	completionDelay time.Duration
	width           int
}

// NewModel creates a progress UI for rendering the named input.
func NewModel(input string) *Model {
	p := progress.New(
		progress.WithGradient(string(tintViolet), string(tintYellow)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		input:           input,
		startTime:       time.Now(),
		completionDelay: time.Second,
	}
}

// Err returns the failure that ended the render, if any.
func (m *Model) Err() error { return m.failed }

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(msg.Width-30, 50)
		return m, nil

	case RenderProgress:
		m.percent = msg.Percent
		m.elapsed = msg.Elapsed
		return m, nil

	case RenderComplete:
		m.complete = &msg
		m.percent = 100
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case RenderFailed:
		m.failed = msg.Err
		return m, tea.Quit

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.failed != nil {
		return ""
	}

	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(tintYellow).
		Render("Wavetint 🌊")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(tintGreen).Render("Rendering " + m.input))
	s.WriteString("\n\n")

	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(float64(m.percent) / 100))
	s.WriteString(fmt.Sprintf("  %d%%", m.percent))
	s.WriteString("\n")

	elapsed := m.elapsed
	if elapsed == 0 {
		elapsed = time.Since(m.startTime)
	}
	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Elapsed: " + formatDuration(elapsed)))
	s.WriteString("\n")

	if m.complete != nil {
		s.WriteString("\n")
		s.WriteString(m.renderComplete())
	}

	borderColor := tintEmber
	if m.complete != nil {
		borderColor = tintGreen
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Render(s.String()) + "\n"
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(tintGreen).
		Render("✓ Render Complete!"))
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)

	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Output: "), m.complete.Output))
	s.WriteString(fmt.Sprintf("%s%dx%d\n", dimLabel.Render("Image:  "), m.complete.Width, m.complete.Height))
	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Size:   "), formatBytes(m.complete.Size)))
	s.WriteString(fmt.Sprintf("%s%s", dimLabel.Render("Time:   "), formatDuration(m.complete.Elapsed)))

	return s.String()
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
