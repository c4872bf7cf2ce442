package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // Light forest green
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	successColor   = lipgloss.Color("#B5D99C") // Bright sage
	mutedColor     = lipgloss.Color("#B8A890") // Light taupe
	fgColor        = lipgloss.Color("#F5F3ED") // Warm white
	bubbleColor    = lipgloss.Color("#3A4A3B") // Deep moss, incoming bubbles
	errorColor     = lipgloss.Color("#E07B7B")
)

// Styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	outgoingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2A1F")).
			Background(secondaryColor).
			Padding(0, 1)

	incomingStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(bubbleColor).
			Padding(0, 1)

	errorBubbleStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("#3B2626")).
				Padding(0, 1)

	iconStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	sendStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	sendDisabledStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)

	togglerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Foreground(fgColor).
			Padding(0, 2)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
)
