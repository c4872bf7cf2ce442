package connection

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/yourusername/askbox/internal/protocol"
)

// StatusError is returned when the server answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}

// maxErrorBody caps how much of a failed response body ends up in errors and logs
const maxErrorBody = 200

// Manager sends questions to the answer endpoint
type Manager struct {
	serverURL string
	http      *resty.Client
	state     *State
	log       zerolog.Logger
}

// NewManager creates a manager for the server at serverURL. No retries or
// timeouts are configured: a hung request stays outstanding until ctx ends.
func NewManager(serverURL string, log zerolog.Logger) *Manager {
	client := resty.New().
		SetBaseURL(strings.TrimRight(serverURL, "/")).
		SetHeader("Content-Type", protocol.ContentType).
		SetHeader("Accept", protocol.ContentType).
		SetLogger(restyLogger{log: log})

	return &Manager{
		serverURL: serverURL,
		http:      client,
		state:     NewState(),
		log:       log,
	}
}

// ServerURL returns the base URL requests are sent to
func (m *Manager) ServerURL() string {
	return m.serverURL
}

// GetStats returns the request counters
func (m *Manager) GetStats() Stats {
	return m.state.GetStats()
}

// Ask posts query to /ask and resolves to a Success or a Failure
func (m *Manager) Ask(ctx context.Context, query string) Result {
	m.state.begin()

	answer, err := m.ask(ctx, query)
	if err != nil {
		m.state.finish(false)
		m.log.Warn().Err(err).Msg("ask failed")
		return Failure{Err: err}
	}

	m.state.finish(true)
	m.log.Debug().Int("answer_len", len(answer)).Msg("ask succeeded")
	return Success{Answer: answer}
}

func (m *Manager) ask(ctx context.Context, query string) (string, error) {
	body, err := protocol.EncodeAskRequest(query)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	m.log.Debug().Str("url", m.serverURL+protocol.AskPath).Int("query_len", len(query)).Msg("posting question")

	resp, err := m.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(protocol.AskPath)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", protocol.AskPath, err)
	}

	if !resp.IsSuccess() {
		return "", &StatusError{Code: resp.StatusCode(), Body: truncate(strings.TrimSpace(resp.String()), maxErrorBody)}
	}

	answer, err := protocol.DecodeAskResponse(resp.Body())
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return answer, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// restyLogger routes resty's internal messages into zerolog
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
