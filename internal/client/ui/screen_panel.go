package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/askbox/internal/client/widget"
)

// viewPanel renders the open chat panel in the bottom right corner
func (m Model) viewPanel() string {
	inner := m.panel.innerWidth()

	// Header: bot name, pending answers, close hint
	title := headerStyle.Render(widget.BotIcon + " " + m.title)
	if n := m.ctrl.Pending(); n > 0 {
		title += " " + m.spinner.View() + mutedStyle.Render(fmt.Sprintf(" %d pending", n))
	}
	closeHint := mutedStyle.Render("esc ✕")
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(closeHint), 1)
	header := title + lipgloss.NewStyle().Width(gap).Render("") + closeHint

	panel := m.panel.View(header, m.helpLine())
	return lipgloss.Place(m.width, m.height, lipgloss.Right, lipgloss.Bottom, panel)
}

// helpLine describes what Enter does at the current width
func (m Model) helpLine() string {
	help := highlightStyle.Render("enter") + " send  •  alt+enter newline"
	if m.width < m.narrowWidth {
		help = highlightStyle.Render("ctrl+s") + " send  •  enter newline"
	}
	// the program holds the mouse, so plain drags no longer select text
	if m.mouse {
		help += "  •  shift+drag select"
	}
	return instructionStyle.Render(help)
}
