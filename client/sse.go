package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// -- Stream event types (delivered to the app as tea.Msgs) --------------------

// StreamAuthFailedEvent is dispatched when the event stream gets a 401/403.
type StreamAuthFailedEvent struct{}

// StreamConnectedEvent is dispatched when the event stream is established.
type StreamConnectedEvent struct{}

// StreamDisconnectedEvent is dispatched when the event stream drops or closes.
type StreamDisconnectedEvent struct {
	Err error
}

// StreamReconnectingEvent is dispatched before each reconnect attempt.
type StreamReconnectingEvent struct {
	Attempt int
}

// TransactionCreatedEvent carries a transaction posted by the backend.
type TransactionCreatedEvent struct {
	Transaction Transaction `json:"transaction"`
}

// BalanceUpdatedEvent carries an account's new balance.
type BalanceUpdatedEvent struct {
	AccountID    string `json:"account_id"`
	BalanceCents int64  `json:"balance_cents"`
	Currency     string `json:"currency"`
}

// BudgetThresholdEvent is emitted when spend in a category crosses a
// configured fraction of its monthly limit.
type BudgetThresholdEvent struct {
	Category    string  `json:"category"`
	Utilization float64 `json:"utilization"`
	Message     string  `json:"message"`
}

// StreamParseWarning is emitted when a stream event cannot be parsed.
// The dashboard surfaces it as a toast instead of writing to stderr.
type StreamParseWarning struct {
	Message string
}

// -- StreamClient -------------------------------------------------------------

// StreamClient manages the Server-Sent Events connection carrying live
// account activity.
type StreamClient struct {
	baseURL string
	token   string
	done    chan struct{}
	httpCli *http.Client
}

// NewStream creates an event stream client.
func NewStream(baseURL, token string) *StreamClient {
	return &StreamClient{
		baseURL: baseURL,
		token:   token,
		done:    make(chan struct{}),
		httpCli: &http.Client{Timeout: 0},
	}
}

// Close signals the stream client to stop.
func (s *StreamClient) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// IsClosed reports whether the stream client has been intentionally closed.
func (s *StreamClient) IsClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// ListenCmd returns a tea.Cmd that reads stream events and sends them as
// messages.
func (s *StreamClient) ListenCmd(p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		req, err := http.NewRequest("GET", s.baseURL+"/api/v1/stream", nil)
		if err != nil {
			return StreamDisconnectedEvent{Err: err}
		}
		req.Header.Set("Accept", "text/event-stream")
		req.Header.Set("Cache-Control", "no-cache")
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.httpCli.Do(req)
		if err != nil {
			return StreamDisconnectedEvent{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return StreamAuthFailedEvent{}
		}
		if resp.StatusCode != http.StatusOK {
			return StreamDisconnectedEvent{
				Err: fmt.Errorf("event stream returned %d", resp.StatusCode),
			}
		}

		p.Send(StreamConnectedEvent{})

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0), 1024*1024) // 1 MB

		var eventType string

		for scanner.Scan() {
			select {
			case <-s.done:
				return StreamDisconnectedEvent{Err: nil}
			default:
			}

			line := scanner.Text()

			switch {
			case line == "":
				eventType = ""

			case strings.HasPrefix(line, ":"):
				// keepalive comment — ignore

			case strings.HasPrefix(line, "event: "):
				eventType = strings.TrimPrefix(line, "event: ")

			case strings.HasPrefix(line, "data: "):
				data := strings.TrimPrefix(line, "data: ")
				if m := parseStreamEvent(eventType, []byte(data)); m != nil {
					p.Send(m)
				}
			}
		}

		if err := scanner.Err(); err != nil {
			return StreamDisconnectedEvent{Err: err}
		}
		return StreamDisconnectedEvent{Err: nil}
	}
}

// MaxReconnects is the maximum number of reconnect attempts before giving up.
const MaxReconnects = 10

// backoffDelay returns the delay before the given 1-based reconnect
// attempt: doubling from 2s, capped at 32s.
func backoffDelay(attempt int) time.Duration {
	shift := attempt
	if shift > 5 {
		shift = 5
	}
	return time.Duration(1<<uint(shift)) * time.Second
}

// ReconnectListenCmd is a tea.Cmd that reconnects the event stream with
// exponential backoff. Used by the disconnect handler when an unintentional
// disconnect occurs. After MaxReconnects failed attempts it returns an error
// instead of looping forever.
func (s *StreamClient) ReconnectListenCmd(p *tea.Program) tea.Cmd {
	return func() tea.Msg {
		attempt := 0

		for {
			select {
			case <-s.done:
				return StreamDisconnectedEvent{Err: nil}
			default:
			}

			if attempt >= MaxReconnects {
				return StreamDisconnectedEvent{
					Err: fmt.Errorf("stream reconnect failed after %d attempts", MaxReconnects),
				}
			}

			attempt++

			select {
			case <-time.After(backoffDelay(attempt)):
			case <-s.done:
				return StreamDisconnectedEvent{Err: nil}
			}

			p.Send(StreamReconnectingEvent{Attempt: attempt})
			result := s.ListenCmd(p)()
			if _, ok := result.(StreamDisconnectedEvent); ok || result == nil {
				continue
			}
			return result
		}
	}
}

// parseStreamEvent converts a stream event type + JSON data into a tea.Msg.
func parseStreamEvent(eventType string, data []byte) tea.Msg {
	switch eventType {
	case "connected":
		return StreamConnectedEvent{}

	case "transaction_created":
		var ev TransactionCreatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return StreamParseWarning{Message: fmt.Sprintf("[stream] parse %s: %v", eventType, err)}
		}
		return ev

	case "balance_updated":
		var ev BalanceUpdatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return StreamParseWarning{Message: fmt.Sprintf("[stream] parse %s: %v", eventType, err)}
		}
		return ev

	case "budget_threshold":
		var ev BudgetThresholdEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return StreamParseWarning{Message: fmt.Sprintf("[stream] parse %s: %v", eventType, err)}
		}
		return ev

	default:
		if eventType != "" {
			return StreamParseWarning{Message: fmt.Sprintf("[stream] unknown event type: %s", eventType)}
		}
	}
	return nil
}
