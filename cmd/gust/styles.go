// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared across CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple, used for titles and recipe names.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for doc comments and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red, used for failure messages.
	ColorError = lipgloss.Color("#EF4444")

	// ColorHighlight is blue, used for parameters and values.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// RecipeStyle is for recipe names in listings.
	RecipeStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// ParameterStyle is for recipe parameters in listings.
	ParameterStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// DocStyle is for recipe doc comments in listings.
	DocStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)
)
