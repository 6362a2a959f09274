package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the styles and symbols every renderer pulls from.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Help                                lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	SymOK, SymFail       string
	SymLoggedIn, SymIdle string
}

var current = Build("classic")

// Build returns the named theme; unknown names fall back to classic.
func Build(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Help:        lipgloss.NewStyle().Faint(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖",
			SymLoggedIn: "◼", SymIdle: "◻",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected:    plain.Reverse(true),
			Help:        plain,
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "x", SymFail: "!",
			SymLoggedIn: "[x]", SymIdle: "[ ]",
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Help:        lipgloss.NewStyle().Faint(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖",
			SymLoggedIn: "☑", SymIdle: "☐",
		}
	}
}

// SetTheme switches the theme used by the package-level helpers.
func SetTheme(name string) { current = Build(name) }

// Current exposes what renderers need.
func Current() Theme { return current }
