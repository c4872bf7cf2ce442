package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/askbox/internal/client/widget"
)

// Options configure the UI
type Options struct {
	Title          string
	ServerURL      string
	MaxInputHeight int
	// Mouse tells the help line that wheel scrolling captures the mouse
	Mouse          bool
	Widget         widget.Options
}

// Model is the main Bubble Tea model
type Model struct {
	ctrl  *widget.Controller
	panel *ChatPanel // shared by every copy of the model; the controller draws through it
	keys  keyMap

	spinner  spinner.Model
	spinning bool

	title       string
	serverURL   string
	narrowWidth int
	mouse       bool
	width       int
	height      int
}

// NewModel creates the chat widget UI. Answers come from asker.
func NewModel(ctx context.Context, asker widget.Asker, opts Options) Model {
	panel := NewChatPanel(opts.MaxInputHeight)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctrl:        widget.NewController(ctx, panel, asker, opts.Widget),
		panel:       panel,
		keys:        defaultKeyMap(),
		spinner:     sp,
		title:       opts.Title,
		serverURL:   opts.ServerURL,
		narrowWidth: opts.Widget.NarrowWidth,
		mouse:       opts.Mouse,
		width:       defaultPanelWidth,
		height:      defaultPanelHeight,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel.SetSize(min(msg.Width, maxPanelWidth), msg.Height)
		m.ctrl.InputChanged()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.MouseMsg:
		if m.panel.Visible() {
			return m, m.panel.UpdateList(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Pending() == 0 {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// typing delays and answers belong to the controller
	cmd := m.ctrl.Update(msg)
	spin := m.spin()
	return m, tea.Batch(cmd, spin)
}

// updateKeys handles key presses
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.Toggle()
		return m, nil
	}

	if !m.panel.Visible() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.ctrl.Close()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m, m.ctrl.Submit(m.panel.Value())

	case key.Matches(msg, m.keys.Submit):
		if cmd, ok := m.ctrl.Enter(m.panel.Value(), false, m.width); ok {
			return m, cmd
		}

	case key.Matches(msg, m.keys.Newline):
		if cmd, ok := m.ctrl.Enter(m.panel.Value(), true, m.width); ok {
			return m, cmd
		}

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		return m, m.panel.UpdateList(msg)
	}

	// everything else, including an Enter that did not send, edits the input
	before := m.panel.Value()
	cmd := m.panel.UpdateInput(msg)
	if m.panel.Value() != before {
		m.ctrl.InputChanged()
	}
	return m, cmd
}

// spin starts the header spinner when an answer is outstanding
func (m *Model) spin() tea.Cmd {
	if m.spinning || m.ctrl.Pending() == 0 {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// View renders the current view
func (m Model) View() string {
	if !m.panel.Visible() {
		return m.viewLauncher()
	}
	return m.viewPanel()
}

// Panel exposes the chat panel, mainly for tests
func (m Model) Panel() *ChatPanel {
	return m.panel
}

// Controller exposes the widget controller, mainly for tests
func (m Model) Controller() *widget.Controller {
	return m.ctrl
}
