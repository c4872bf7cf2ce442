package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/askbox/internal/client/widget"
)

const (
	defaultPanelWidth  = 60
	defaultPanelHeight = 20
	maxPanelWidth      = 72

	inputPlaceholder = "Enter a message..."
	sendLabel        = "➤"
)

// ChatPanel is the terminal rendition of the chat widget: a scrolling
// message list above an auto-growing input. It implements widget.Port.
type ChatPanel struct {
	messages []*widget.Message
	list     viewport.Model
	input    textarea.Model

	visible        bool
	width          int // outer size, border included
	height         int
	maxInputHeight int
}

var _ widget.Port = (*ChatPanel)(nil)

// NewChatPanel creates a hidden panel whose input grows to at most maxInputHeight lines
func NewChatPanel(maxInputHeight int) *ChatPanel {
	if maxInputHeight < 1 {
		maxInputHeight = 1
	}

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(1)
	// Enter reaches the textarea only when it was not taken as a send
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("enter", "ctrl+m", "ctrl+j", "alt+enter"))
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = mutedStyle
	ta.FocusedStyle.EndOfBuffer = lipgloss.NewStyle()
	ta.BlurredStyle = ta.FocusedStyle

	p := &ChatPanel{
		list:           viewport.New(defaultPanelWidth, defaultPanelHeight),
		input:          ta,
		maxInputHeight: maxInputHeight,
	}
	p.SetSize(defaultPanelWidth, defaultPanelHeight)
	return p
}

//// widget.Port ////

// RenderMessage appends a message to the list
func (p *ChatPanel) RenderMessage(msg *widget.Message) {
	p.messages = append(p.messages, msg)
	p.refresh()
}

// UpdateMessage redraws the list after a message changed in place
func (p *ChatPanel) UpdateMessage(*widget.Message) {
	p.refresh()
}

// ClearInput empties the input
func (p *ChatPanel) ClearInput() {
	p.input.Reset()
}

// ContentHeight is the number of rows the input needs for its content,
// counting soft-wrapped lines, and never less than its current height
func (p *ChatPanel) ContentHeight() int {
	rows := wrappedRows(p.input.Value(), p.input.Width())
	if h := p.input.Height(); h > rows {
		return h
	}
	return rows
}

// SetInputHeight resizes the input, capped at the configured maximum
func (p *ChatPanel) SetInputHeight(h int) {
	h = clamp(h, 1, p.maxInputHeight)
	if h == p.input.Height() {
		return
	}
	atBottom := p.list.AtBottom()
	p.input.SetHeight(h)
	p.layout()
	if atBottom {
		p.list.GotoBottom()
	}
}

// ScrollToBottom scrolls the message list to its end
func (p *ChatPanel) ScrollToBottom() {
	p.list.GotoBottom()
}

// SetVisibility shows or hides the panel
func (p *ChatPanel) SetVisibility(visible bool) {
	p.visible = visible
	if visible {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

////////////////////////////////////////////

// Visible reports whether the panel is shown
func (p *ChatPanel) Visible() bool {
	return p.visible
}

// Value returns the current input text
func (p *ChatPanel) Value() string {
	return p.input.Value()
}

// InputHeight returns the current input height in rows
func (p *ChatPanel) InputHeight() int {
	return p.input.Height()
}

// Messages returns the rendered messages, oldest first
func (p *ChatPanel) Messages() []*widget.Message {
	return p.messages
}

// AtBottom reports whether the message list is scrolled to its end
func (p *ChatPanel) AtBottom() bool {
	return p.list.AtBottom()
}

// SetSize sets the panel's outer size
func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.layout()
	p.refresh()
}

// UpdateInput forwards a message to the input
func (p *ChatPanel) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// UpdateList forwards a message (scroll keys, mouse wheel) to the message list
func (p *ChatPanel) UpdateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// innerWidth is the width available inside border and padding
func (p *ChatPanel) innerWidth() int {
	return max(p.width-panelStyle.GetHorizontalFrameSize(), 10)
}

// layout sizes the list and the input to fill the panel
func (p *ChatPanel) layout() {
	inner := p.innerWidth()
	p.input.SetWidth(max(inner-lipgloss.Width(sendLabel)-1, 1))

	// header + divider above the list, divider + input + help below it
	chrome := panelStyle.GetVerticalFrameSize() + 2 + 1 + 1
	p.list.Width = inner
	p.list.Height = max(p.height-chrome-p.input.Height(), 1)
}

// refresh re-renders the message list, keeping the scroll position
func (p *ChatPanel) refresh() {
	offset := p.list.YOffset
	p.list.SetContent(p.renderMessages())
	p.list.SetYOffset(offset)
}

func (p *ChatPanel) renderMessages() string {
	width := p.innerWidth()
	bubbleWidth := max(width*3/4, 8)

	rows := make([]string, 0, len(p.messages))
	for _, msg := range p.messages {
		rows = append(rows, renderBubble(msg, width, bubbleWidth))
	}
	return strings.Join(rows, "\n\n")
}

// renderBubble draws one message. The text goes through lipgloss as plain
// content; it was stripped of escape sequences when the message was built.
func renderBubble(msg *widget.Message, width, bubbleWidth int) string {
	style := incomingStyle
	switch {
	case msg.Error:
		style = errorBubbleStyle
	case msg.Direction == widget.Outgoing:
		style = outgoingStyle
	}

	var icon string
	if msg.Icon != "" {
		icon = iconStyle.Render(msg.Icon) + " "
	}

	textWidth := lipgloss.Width(msg.Text) + style.GetHorizontalFrameSize()
	bubble := style.Width(min(textWidth, bubbleWidth-lipgloss.Width(icon))).Render(msg.Text)

	if msg.Direction == widget.Outgoing {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, icon, bubble)
}

// View renders the open panel
func (p *ChatPanel) View(header string, help string) string {
	inner := p.innerWidth()
	divider := dividerStyle.Render(strings.Repeat("─", inner))

	send := sendDisabledStyle.Render(sendLabel)
	if strings.TrimSpace(p.input.Value()) != "" {
		send = sendStyle.Render(sendLabel)
	}
	inputRow := lipgloss.JoinHorizontal(lipgloss.Bottom, p.input.View(), " ", send)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		p.list.View(),
		divider,
		inputRow,
		help,
	)
	return panelStyle.Width(inner + panelStyle.GetHorizontalPadding()).Render(body)
}

// wrappedRows counts the rows the input shows for text at width. Lines break
// at word boundaries the way textarea wraps them, and a line that reaches the
// full width gets an extra row for the cursor.
func wrappedRows(text string, width int) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		rows += lineRows([]rune(line), width)
	}
	return rows
}

// lineRows counts the soft-wrapped rows of a single line
func lineRows(line []rune, width int) int {
	var (
		rows    = 1
		used    int  // columns taken on the current row
		started bool // current row holds runes
		word    []rune
		spaces  int
	)

	for _, r := range line {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			word = append(word, r)
		}

		if spaces > 0 {
			w := ansi.StringWidth(string(word)) + spaces
			if used+w > width {
				rows++
				used = w
			} else {
				used += w
			}
			started = true
			word, spaces = nil, 0
			continue
		}

		// a word wider than the row is split across rows
		w := ansi.StringWidth(string(word))
		if w+ansi.StringWidth(string(word[len(word)-1])) > width {
			if started {
				rows++
				used = 0
			}
			used += w
			started = true
			word = nil
		}
	}

	if used+ansi.StringWidth(string(word))+spaces >= width {
		rows++
	}
	return rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
