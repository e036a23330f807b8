// Package printer renders user-facing console output with lipgloss styles.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Faint(true).PaddingRight(2)
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	detectedProfile = lipgloss.ColorProfile()
)

// SetOutput redirects regular and error output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetNoColor disables or restores colored output.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(detectedProfile)
}

// Faint returns text with faint styling.
func Faint(text string) string { return faintStyle.Render(text) }

// Bold returns text with bold styling.
func Bold(text string) string { return boldStyle.Render(text) }

// Success returns text with success (green) styling.
func Success(text string) string { return successStyle.Render(text) }

// Error returns text with error (red) styling.
func Error(text string) string { return errorStyle.Render(text) }

// Warning returns text with warning (yellow) styling.
func Warning(text string) string { return warningStyle.Render(text) }

// Info returns text with info (cyan) styling.
func Info(text string) string { return infoStyle.Render(text) }

func PrintFaint(text string)   { fmt.Fprintln(stdout, Faint(text)) }
func PrintBold(text string)    { fmt.Fprintln(stdout, Bold(text)) }
func PrintInfo(text string)    { fmt.Fprintln(stdout, Info(text)) }
func PrintSuccess(text string) { fmt.Fprintln(stdout, Success("✓ "+text)) }
func PrintWarning(text string) { fmt.Fprintln(stderr, Warning("! "+text)) }
func PrintError(text string)   { fmt.Fprintln(stderr, Error("✗ "+text)) }

// PrintHeading prints a section heading preceded by a blank line.
func PrintHeading(text string) {
	fmt.Fprintln(stdout, headingStyle.Render(text))
}

// PrintList prints items as an indented bullet list.
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintln(stdout, "  "+Faint("•")+" "+item)
	}
}

// Row is one line of a key/value summary.
type Row struct {
	Label string
	Value string
}

// RenderSummary aligns rows into two columns.
func RenderSummary(rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	label := labelStyle.Width(width + labelStyle.GetPaddingRight())
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r.Label), r.Value)
	}
	return strings.Join(lines, "\n")
}

// PrintSummary prints a titled key/value summary.
func PrintSummary(title string, rows []Row) {
	PrintHeading(title)
	fmt.Fprintln(stdout, RenderSummary(rows))
}
