package widget

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// Direction tells who authored a message
type Direction int

const (
	Outgoing Direction = iota // written by the user
	Incoming                  // written by the bot
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// BotIcon marks incoming messages
const BotIcon = "🤖"

// Message is one chat bubble
type Message struct {
	ID        string
	Icon      string // empty for outgoing messages
	Text      string
	Direction Direction
	Error     bool
}

// NewMessage builds a chat bubble for text. The text is kept as plain text:
// terminal escape sequences and control characters are removed.
func NewMessage(text string, dir Direction) *Message {
	msg := &Message{
		ID:        uuid.New().String(),
		Direction: dir,
	}
	if dir == Incoming {
		msg.Icon = BotIcon
	}
	msg.SetText(text)
	return msg
}

// SetText replaces the message text in place
func (m *Message) SetText(text string) {
	m.Text = PlainText(text)
}

// PlainText strips escape sequences and control characters except newlines and tabs
func PlainText(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r < 0xa0: // C1 controls
			return -1
		}
		return r
	}, s)
}
