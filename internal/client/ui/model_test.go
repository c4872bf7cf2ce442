package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/askbox/internal/client/connection"
	"github.com/yourusername/askbox/internal/client/widget"
)

type stubAsker func(query string) connection.Result

func (f stubAsker) Ask(_ context.Context, query string) connection.Result {
	return f(query)
}

func newTestModel(t *testing.T, asker widget.Asker, width, height int) Model {
	t.Helper()
	opts := widget.DefaultOptions()
	opts.TypingDelay = 0

	m := NewModel(context.Background(), asker, Options{
		Title:          "Chatbot",
		ServerURL:      "http://localhost:5000",
		MaxInputHeight: 6,
		Widget:         opts,
	})
	m, _ = press(m, tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func press(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, text string) Model {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
		}
		if line != "" {
			m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
		}
	}
	return m
}

// run executes cmd and feeds every resulting message back into the model
// until nothing is left. Spinner ticks are dropped so the loop ends.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")

		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var more tea.Cmd
			m, more = press(m, msg)
			queue = append(queue, more)
		}
	}
	return m
}

func openModel(t *testing.T, asker widget.Asker, width, height int) Model {
	t.Helper()
	m := newTestModel(t, asker, width, height)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.True(t, m.Panel().Visible())
	return m
}

func hello() stubAsker {
	return func(string) connection.Result { return connection.Success{Answer: "Hello!"} }
}

func TestStartsCollapsed(t *testing.T) {
	m := newTestModel(t, hello(), 120, 30)

	assert.False(t, m.Panel().Visible())
	assert.Contains(t, m.View(), "ctrl+t")
}

func TestToggleAndCloseKeys(t *testing.T) {
	m := newTestModel(t, hello(), 120, 30)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.Panel().Visible())
	assert.Contains(t, m.View(), "Chatbot")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.Panel().Visible())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Panel().Visible())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Panel().Visible())
}

func TestKeysIgnoredWhileCollapsed(t *testing.T) {
	m := newTestModel(t, hello(), 120, 30)

	m = typeText(m, "hello")
	assert.Empty(t, m.Panel().Value())
}

func TestEnterSendsOnWideTerminal(t *testing.T) {
	var asked []string
	asker := stubAsker(func(q string) connection.Result {
		asked = append(asked, q)
		return connection.Success{Answer: "Hello!"}
	})
	m := openModel(t, asker, 120, 30)

	m = typeText(m, "  hi there  ")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Panel().Value(), "input cleared on send")

	m = run(t, m, cmd)

	msgs := m.Panel().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi there", msgs[0].Text)
	assert.Equal(t, widget.Outgoing, msgs[0].Direction)
	assert.Equal(t, "Hello!", msgs[1].Text)
	assert.Equal(t, widget.Incoming, msgs[1].Direction)
	assert.Equal(t, []string{"hi there"}, asked)
	assert.True(t, m.Panel().AtBottom())
	assert.Equal(t, 0, m.Controller().Pending())
}

func TestEnterInsertsNewlineOnNarrowTerminal(t *testing.T) {
	m := openModel(t, hello(), 60, 30)

	m = typeText(m, "hi")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "hi\n", m.Panel().Value())
	assert.Empty(t, m.Panel().Messages())
	assert.Equal(t, 2, m.Panel().InputHeight())
}

func TestEnterSendsAtThresholdWidth(t *testing.T) {
	m := openModel(t, hello(), widget.DefaultNarrowWidth, 30)

	m = typeText(m, "hi")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	require.Len(t, m.Panel().Messages(), 2)
	assert.Contains(t, m.helpLine(), "enter")
	assert.Contains(t, m.helpLine(), "alt+enter newline")
}

func TestHelpLineMentionsSelectionWhenMouseCaptured(t *testing.T) {
	m := openModel(t, hello(), 120, 30)
	assert.NotContains(t, m.helpLine(), "shift+drag")

	m.mouse = true
	assert.Contains(t, m.helpLine(), "shift+drag select")
}

func TestSendKeyWorksOnNarrowTerminal(t *testing.T) {
	m := openModel(t, hello(), 60, 30)

	m = typeText(m, "hi")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = run(t, m, cmd)

	msgs := m.Panel().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hello!", msgs[1].Text)
}

func TestBlankSubmitDoesNothing(t *testing.T) {
	m := openModel(t, hello(), 120, 30)

	m = typeText(m, "   ")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, m.Panel().Messages())
	assert.Equal(t, "   ", m.Panel().Value())
}

func TestFailureRendersErrorText(t *testing.T) {
	asker := stubAsker(func(string) connection.Result {
		return connection.Failure{Err: errors.New("connection refused")}
	})
	m := openModel(t, asker, 120, 30)

	m = typeText(m, "hi")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	msgs := m.Panel().Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Error)
	assert.Equal(t, widget.ErrorText, msgs[1].Text)
	assert.Contains(t, m.View(), "Oops!")
	assert.True(t, m.Panel().AtBottom())
}

func TestListStaysAtBottomAsMessagesPileUp(t *testing.T) {
	m := openModel(t, hello(), 120, 16)

	for i := 0; i < 8; i++ {
		m = typeText(m, fmt.Sprintf("question %d", i))
		var cmd tea.Cmd
		m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
		m = run(t, m, cmd)
		require.True(t, m.Panel().AtBottom(), "after exchange %d", i)
	}
	assert.Len(t, m.Panel().Messages(), 16)
}

func TestInputGrowsAndShrinksBack(t *testing.T) {
	m := openModel(t, hello(), 120, 30)
	initial := m.Controller().InitialHeight()
	require.Equal(t, 1, initial)

	m = typeText(m, "a\nb\nc\nd")
	assert.Equal(t, 4, m.Panel().InputHeight())

	// d, newline, c, newline, b, newline
	for i := 0; i < 6; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	require.Equal(t, "a", m.Panel().Value())
	assert.Equal(t, initial, m.Panel().InputHeight())
}

func TestInputGrowthIsCapped(t *testing.T) {
	m := openModel(t, hello(), 120, 30)

	m = typeText(m, strings.Repeat("line\n", 10)+"last")
	assert.Equal(t, 6, m.Panel().InputHeight())
}

func TestInputFitsWordWrappedText(t *testing.T) {
	m := openModel(t, hello(), 120, 30)
	width := m.Panel().input.Width()

	// each word plus its space takes just over half a row, so every word
	// lands on its own row although the characters would fit in two
	word := strings.Repeat("x", width/2)
	m = typeText(m, strings.Join([]string{word, word, word}, " "))

	assert.Equal(t, 3, m.Panel().InputHeight())
	assert.Equal(t, m.Panel().input.LineInfo().Height, m.Panel().InputHeight())
}

func TestInputGrowsForCursorAfterFullRow(t *testing.T) {
	m := openModel(t, hello(), 120, 30)
	width := m.Panel().input.Width()

	m = typeText(m, strings.Repeat("x", width))

	assert.Equal(t, 2, m.Panel().InputHeight())
	assert.Equal(t, m.Panel().input.LineInfo().Height, m.Panel().InputHeight())
}

func TestSendRestoresInitialInputHeight(t *testing.T) {
	m := openModel(t, hello(), 120, 30)

	m = typeText(m, "a\nb\nc")
	require.Equal(t, 3, m.Panel().InputHeight())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, m.Controller().InitialHeight(), m.Panel().InputHeight())
}

func TestPendingShownInHeader(t *testing.T) {
	block := make(chan struct{})
	asker := stubAsker(func(string) connection.Result {
		<-block
		return connection.Success{Answer: "late"}
	})
	m := openModel(t, asker, 120, 30)

	m = typeText(m, "hi")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	// fire the typing delay but hold the answer back
	m, _ = press(m, cmd())
	assert.Equal(t, 1, m.Controller().Pending())
	assert.Contains(t, m.View(), "1 pending")
	assert.Contains(t, m.View(), widget.ThinkingText)
	close(block)
}
