package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/style"
)

// Connection is the stream/backend connection state shown in the bar.
type Connection int

const (
	ConnConnecting Connection = iota
	ConnLive
	ConnDemo
	ConnReconnecting
	ConnOffline
)

// StatusBarModel renders the bottom line: connection state, row counts,
// scroll position, and key hints.
type StatusBarModel struct {
	spin      spinner.Model
	conn      Connection
	attempt   int // reconnect attempt, when ConnReconnecting
	rows      int
	totalRows int
	scrollPct float64
	hasScroll bool
	hints     string
}

// NewStatusBar returns a StatusBarModel in the connecting state.
func NewStatusBar() StatusBarModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style.SpinnerStyle
	return StatusBarModel{spin: s, conn: ConnConnecting}
}

// SetConnection updates the connection state.
func (m *StatusBarModel) SetConnection(c Connection) {
	m.conn = c
}

// SetReconnecting marks the bar as reconnecting on the given attempt.
func (m *StatusBarModel) SetReconnecting(attempt int) {
	m.conn = ConnReconnecting
	m.attempt = attempt
}

// SetRows updates the visible/total row counts for the active view.
func (m *StatusBarModel) SetRows(rows, total int) {
	m.rows = rows
	m.totalRows = total
}

// SetScroll updates the scroll fraction for the active view.
func (m *StatusBarModel) SetScroll(pct float64) {
	m.scrollPct = pct
	m.hasScroll = true
}

// ClearScroll hides the scroll indicator (views without a scroll position).
func (m *StatusBarModel) ClearScroll() { m.hasScroll = false }

// SetHints sets the context-dependent key hint text.
func (m *StatusBarModel) SetHints(hints string) { m.hints = hints }

// Init starts the spinner.
func (m StatusBarModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update advances the spinner while a spinning state is shown.
func (m StatusBarModel) Update(message tea.Msg) (StatusBarModel, tea.Cmd) {
	if m.conn != ConnConnecting && m.conn != ConnReconnecting {
		return m, nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(message)
	return m, cmd
}

// View renders the status line.
//
//	● live · 1,204 rows · 37% · / search · tab views · q quit
func (m StatusBarModel) View() string {
	var parts []string
	parts = append(parts, m.connBadge())

	if m.totalRows > 0 {
		if m.rows != m.totalRows {
			parts = append(parts, fmt.Sprintf("%d of %d rows", m.rows, m.totalRows))
		} else {
			parts = append(parts, fmt.Sprintf("%d rows", m.totalRows))
		}
	}
	if m.hasScroll {
		parts = append(parts, fmt.Sprintf("%d%%", int(m.scrollPct*100)))
	}

	line := style.StatusBar.Render(strings.Join(parts, " · "))
	if m.hints != "" {
		line += style.Hint.Render("  " + m.hints)
	}
	return line
}

func (m StatusBarModel) connBadge() string {
	switch m.conn {
	case ConnLive:
		return style.StatusAccent.Render("● live")
	case ConnDemo:
		return style.StatusAccent.Render("● demo")
	case ConnReconnecting:
		return m.spin.View() + style.Faint.Render(fmt.Sprintf("reconnecting (%d)", m.attempt))
	case ConnOffline:
		return style.ErrorText.Render("○ offline")
	default:
		return m.spin.View() + style.Faint.Render("connecting")
	}
}
