package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used to render the query line,
// result list, and status gauges.
type Styles struct {
	Prompt   lipgloss.Style
	Query    lipgloss.Style
	Selected lipgloss.Style
	Path     lipgloss.Style
	Score    lipgloss.Style
	Status   lipgloss.Style
}

// NewStyles picks colored or plain styles depending on the terminal's
// detected color capability, queried via colorprofile.
func NewStyles() Styles {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	if profile == colorprofile.NoTTY || profile == colorprofile.Ascii {
		return noColorStyles()
	}
	return Styles{
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Query:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Score:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func noColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Prompt:   plain,
		Query:    plain,
		Selected: plain.Reverse(true),
		Path:     plain,
		Score:    plain,
		Status:   plain,
	}
}
