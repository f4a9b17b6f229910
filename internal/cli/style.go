package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Dark is used on dark terminal backgrounds, Light on light ones.
var (
	green  = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"}
	red    = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	amber  = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"}
	blue   = lipgloss.AdaptiveColor{Dark: "#3b82f6", Light: "#2563eb"}
	gray   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	violet = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
	cyan   = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"}
)

// status is one kind of one-line message: a colored marker plus where it goes.
type status struct {
	marker string
	style  lipgloss.Style
	out    io.Writer
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(green), os.Stdout}
	statusInfo    = status{"→", lipgloss.NewStyle().Foreground(blue), os.Stdout}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(amber), os.Stderr}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(red), os.Stderr}
)

func (s status) print(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", s.style.Render(s.marker), fmt.Sprintf(format, args...))
}

// PrintSuccess reports a completed change on stdout.
func PrintSuccess(format string, args ...any) { statusSuccess.print(format, args...) }

// PrintInfo reports neutral information on stdout.
func PrintInfo(format string, args ...any) { statusInfo.print(format, args...) }

// PrintWarning reports a no-op or a recoverable problem on stderr.
func PrintWarning(format string, args ...any) { statusWarning.print(format, args...) }

// PrintError reports a failure on stderr.
func PrintError(format string, args ...any) { statusError.print(format, args...) }

var (
	idStyle    = lipgloss.NewStyle().Foreground(violet)
	urlStyle   = lipgloss.NewStyle().Foreground(cyan)
	mutedStyle = lipgloss.NewStyle().Foreground(gray)
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

// RenderID renders a board, list or card id.
func RenderID(id string) string { return idStyle.Render(id) }

func RenderURL(url string) string { return urlStyle.Render(url) }

func RenderMuted(text string) string { return mutedStyle.Render(text) }

func RenderBold(text string) string { return boldStyle.Render(text) }

// TitleBox frames a board title for `boardkit show`.
func TitleBox(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(violet).
		Padding(0, 2).
		Bold(true).
		Render(title)
}

// LabelValue renders "label: value" with the label right-aligned in width columns.
func LabelValue(label, value string, width int) string {
	label = lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Foreground(gray).
		Render(label + ":")
	return label + " " + value
}
