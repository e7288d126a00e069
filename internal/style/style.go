// Package style provides terminal styling for tflite2c status lines using Lipgloss.
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorPass  = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorFail  = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
)

// Semantic icons
const (
	IconPass = "✓"
	IconFail = "✖"
)

var (
	// Success style for positive outcomes (green)
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)

	// Error style for failures (red)
	Error = lipgloss.NewStyle().Foreground(colorFail).Bold(true)

	// Dim style for secondary information (gray)
	Dim = lipgloss.NewStyle().Foreground(colorMuted)
)

// SetColorMode selects styling from the --color flag. In "auto" mode colour
// is used only when w is a terminal and NO_COLOR is unset.
func SetColorMode(mode string, w io.Writer) {
	switch mode {
	case "never":
		plain()
	case "always":
		_ = os.Unsetenv("NO_COLOR")
		_ = os.Setenv("CLICOLOR_FORCE", "1")
		colored()
	default:
		if os.Getenv("NO_COLOR") != "" || !IsTerminal(w) {
			plain()
			return
		}
		colored()
	}
}

// IsTerminal reports whether w is a terminal (or Cygwin pty).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// OK renders a success status line.
func OK(msg string) string {
	return Success.Render(IconPass) + " " + msg
}

// Fail renders a failure status line.
func Fail(msg string) string {
	return Error.Render(IconFail) + " " + msg
}

func plain() {
	Success = lipgloss.NewStyle()
	Error = lipgloss.NewStyle()
	Dim = lipgloss.NewStyle()
}

func colored() {
	Success = lipgloss.NewStyle().Foreground(colorPass).Bold(true)
	Error = lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	Dim = lipgloss.NewStyle().Foreground(colorMuted)
}
