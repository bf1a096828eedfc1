package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal, overridable from config): paths, identifiers
// - Muted (gray): secondary info
// Status is conveyed with unicode symbols, not colors.

var (
	// Accent style for model paths, table and column names.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis and section headers.
	Bold = lipgloss.NewStyle().Bold(true)
)

var accentColor = "#2DD4BF"

// ConfigureTheme overrides the accent color ("0"-"255" ANSI or "#RRGGBB").
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

// AccentColor returns the configured accent color.
func AccentColor() string { return accentColor }
