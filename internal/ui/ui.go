// Package ui provides terminal styling for vconlint output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

// Init picks the color profile for the session. Color is dropped when the
// caller asked for none or stdout is not a terminal.
func Init(noColor bool) {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// RenderPass styles text for success output.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderFail styles text for failure output.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderWarn styles text for warning output.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderAccent styles text for informational highlights.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderBold styles text in bold.
func RenderBold(s string) string { return boldStyle.Render(s) }

// Width returns the terminal width, or a conservative default when stdout
// is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}
