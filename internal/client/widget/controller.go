// Package widget holds the chat widget controller: the submission state
// machine, the response handling and the panel visibility flag. It renders
// nothing itself; everything visible goes through a Port.
package widget

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/yourusername/askbox/internal/client/connection"
)

const (
	// ThinkingText is shown in the placeholder while an answer is outstanding
	ThinkingText = "Thinking..."
	// ErrorText replaces the placeholder when an exchange fails
	ErrorText = "Oops! Something went wrong. Please try again later."

	DefaultTypingDelay = 600 * time.Millisecond
	// DefaultNarrowWidth is the terminal width (columns) below which Enter
	// inserts a newline instead of sending
	DefaultNarrowWidth = 80
)

// Asker exchanges a question for an answer
type Asker interface {
	Ask(ctx context.Context, query string) connection.Result
}

// Options tune the controller
type Options struct {
	TypingDelay time.Duration
	NarrowWidth int
	StartOpen   bool
	Log         zerolog.Logger
}

// DefaultOptions returns the options the widget ships with
func DefaultOptions() Options {
	return Options{
		TypingDelay: DefaultTypingDelay,
		NarrowWidth: DefaultNarrowWidth,
		Log:         zerolog.Nop(),
	}
}

// Controller drives a chat widget through its Port
type Controller struct {
	ctx   context.Context
	port  Port
	asker Asker
	log   zerolog.Logger

	typingDelay   time.Duration
	narrowWidth   int
	initialHeight int // collapsed input height, read once

	visible bool
	pending int // exchanges started but not yet resolved
}

// typingDoneMsg fires when the typing delay for query has elapsed
type typingDoneMsg struct {
	query string
}

// answerMsg carries the outcome of one exchange back to the UI goroutine
type answerMsg struct {
	placeholder *Message
	result      connection.Result
}

// NewController creates a controller bound to port. The input's current
// content height is recorded as its collapsed height. ctx is handed to every
// exchange and should live as long as the program.
func NewController(ctx context.Context, port Port, asker Asker, opts Options) *Controller {
	delay := opts.TypingDelay
	if delay < 0 {
		delay = 0
	}

	c := &Controller{
		ctx:           ctx,
		port:          port,
		asker:         asker,
		log:           opts.Log,
		typingDelay:   delay,
		narrowWidth:   opts.NarrowWidth,
		initialHeight: port.ContentHeight(),
		visible:       opts.StartOpen,
	}
	port.SetVisibility(c.visible)
	return c
}

// InitialHeight returns the recorded collapsed input height
func (c *Controller) InitialHeight() int {
	return c.initialHeight
}

// Visible reports whether the panel is shown
func (c *Controller) Visible() bool {
	return c.visible
}

// Pending returns how many placeholders are still waiting for an answer
func (c *Controller) Pending() int {
	return c.pending
}

// Toggle flips panel visibility
func (c *Controller) Toggle() {
	c.visible = !c.visible
	c.port.SetVisibility(c.visible)
}

// Close hides the panel
func (c *Controller) Close() {
	c.visible = false
	c.port.SetVisibility(false)
}

// InputChanged resizes the input to fit its content. Resetting to the
// collapsed height first lets the content height shrink again.
func (c *Controller) InputChanged() {
	c.port.SetInputHeight(c.initialHeight)
	c.port.SetInputHeight(c.port.ContentHeight())
}

// Enter handles an Enter key press on the input. It reports whether the press
// was consumed; when it was not, the caller inserts a newline.
func (c *Controller) Enter(text string, shift bool, width int) (tea.Cmd, bool) {
	if shift || width < c.narrowWidth {
		return nil, false
	}
	return c.Submit(text), true
}

// Submit sends text as the user's message. Blank text is ignored.
func (c *Controller) Submit(text string) tea.Cmd {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil
	}

	c.port.ClearInput()
	c.port.SetInputHeight(c.initialHeight)

	msg := NewMessage(query, Outgoing)
	c.port.RenderMessage(msg)
	c.port.ScrollToBottom()

	c.log.Debug().Str("id", msg.ID).Int("len", len(query)).Msg("message submitted")

	return tea.Tick(c.typingDelay, func(time.Time) tea.Msg {
		return typingDoneMsg{query: query}
	})
}

// Update handles the controller's own messages and ignores everything else
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case typingDoneMsg:
		return c.startExchange(msg.query)
	case answerMsg:
		c.finishExchange(msg.placeholder, msg.result)
	}
	return nil
}

func (c *Controller) startExchange(query string) tea.Cmd {
	placeholder := NewMessage(ThinkingText, Incoming)
	c.port.RenderMessage(placeholder)
	c.port.ScrollToBottom()
	c.pending++

	ctx, asker := c.ctx, c.asker
	return func() tea.Msg {
		return answerMsg{
			placeholder: placeholder,
			result:      asker.Ask(ctx, query),
		}
	}
}

func (c *Controller) finishExchange(placeholder *Message, result connection.Result) {
	defer c.port.ScrollToBottom()

	c.pending--

	switch r := result.(type) {
	case connection.Success:
		placeholder.SetText(r.Answer)
	case connection.Failure:
		c.log.Warn().Err(r.Err).Str("id", placeholder.ID).Msg("answer failed")
		placeholder.Error = true
		placeholder.SetText(ErrorText)
	default:
		c.log.Error().Str("id", placeholder.ID).Msgf("unexpected result %T", result)
		placeholder.Error = true
		placeholder.SetText(ErrorText)
	}

	c.port.UpdateMessage(placeholder)
}
