package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// viewLauncher renders the collapsed widget: just the toggler button
func (m Model) viewLauncher() string {
	toggler := togglerStyle.Render("💬  " + highlightStyle.Render("ctrl+t") + " chat")

	instructions := instructionStyle.Render(
		mutedStyle.Render("Answers from ") + highlightStyle.Render(m.serverURL) + "  •  " +
			mutedStyle.Render("ctrl+c to quit"))

	// Layout: hint at the top, toggler in the bottom right corner
	top := lipgloss.Place(m.width, 1, lipgloss.Left, lipgloss.Top, instructions)
	bottom := lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Right, lipgloss.Bottom, toggler)

	return top + "\n" + bottom
}
