package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OK prints a success line, usually to stdout.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, current.Success.Render(current.SymOK+" "+msg)) }

// Fail prints an error line, usually to stderr.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, current.Error.Render(current.SymFail+" "+msg)) }

// PanelString frames inner with the theme border.
func PanelString(inner string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel writes lines framed in a box to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}
