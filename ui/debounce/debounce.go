// Package debounce wraps a text input so callers see every keystroke echoed
// immediately while the "committed" value only propagates after a quiet
// period. Commit timers are rearmed by tagging each tea.Tick with a
// generation number; a superseded tick is a no-op when it fires, which is
// the only way to cancel a scheduled command in the bubbletea model.
package debounce

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDelay is the quiet period before a value commits.
const DefaultDelay = 300 * time.Millisecond

// CommittedMsg is delivered once per quiet period with the settled value.
// ID identifies the emitting instance so hosts with several debounced
// inputs can route it.
type CommittedMsg struct {
	ID    int
	Value string
}

// commitTick is the private rearm timer message. Ticks carrying a stale
// generation are dropped on arrival.
type commitTick struct {
	id  int
	gen int
}

var nextID atomic.Int64

// Model is a debounced wrapper around bubbles/textinput.
type Model struct {
	id    int
	input textinput.Model
	delay time.Duration

	gen     int
	pending bool

	onChange func(string)
	onCommit func(string)
}

// Option configures a Model at construction.
type Option func(*Model)

// WithDelay sets the quiet period. Non-positive delays are a caller
// contract violation and panic.
func WithDelay(d time.Duration) Option {
	return func(m *Model) {
		if d <= 0 {
			panic("debounce: delay must be positive")
		}
		m.delay = d
	}
}

// WithOnChange registers a callback invoked synchronously on every
// keystroke with the raw echoed value.
func WithOnChange(fn func(string)) Option {
	return func(m *Model) { m.onChange = fn }
}

// WithOnCommit registers a callback invoked when a value commits, in
// addition to the CommittedMsg.
func WithOnCommit(fn func(string)) Option {
	return func(m *Model) { m.onCommit = fn }
}

// WithPlaceholder sets the input's placeholder text.
func WithPlaceholder(s string) Option {
	return func(m *Model) { m.input.Placeholder = s }
}

// New constructs a debounced input with the default 300ms delay.
func New(opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	m := Model{
		id:    int(nextID.Add(1)),
		input: ti,
		delay: DefaultDelay,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// ID returns the instance identifier carried by CommittedMsg.
func (m Model) ID() int { return m.id }

// Value returns the immediately echoed (uncommitted) value.
func (m Model) Value() string { return m.input.Value() }

// Focused reports whether the input has focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Focus gives the input focus and starts cursor blinking.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes focus and cancels any pending commit. Tearing down a
// focused input without Blur would let the timer fire into a consumer
// that no longer exists.
func (m *Model) Blur() {
	m.input.Blur()
	m.cancelPending()
}

// SetValue sets the echoed value programmatically without scheduling a
// commit; any pending commit is cancelled.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.cancelPending()
}

// SetWidth sets the input's rendered width.
func (m *Model) SetWidth(w int) { m.input.Width = w }

func (m *Model) cancelPending() {
	m.gen++
	m.pending = false
}

// Update processes keystrokes and commit ticks. Every keystroke that
// changes the value echoes synchronously, invokes the raw change callback,
// and rearms the commit timer; the commit fires once the latest timer
// survives the full delay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commitTick:
		if msg.id != m.id || msg.gen != m.gen || !m.pending {
			return m, nil // superseded or cancelled timer
		}
		m.pending = false
		value := m.input.Value()
		if m.onCommit != nil {
			m.onCommit(value)
		}
		id := m.id
		return m, func() tea.Msg {
			return CommittedMsg{ID: id, Value: value}
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	if m.onChange != nil {
		m.onChange(m.input.Value())
	}
	m.gen++
	m.pending = true
	id, gen := m.id, m.gen
	rearm := tea.Tick(m.delay, func(time.Time) tea.Msg {
		return commitTick{id: id, gen: gen}
	})
	return m, tea.Batch(cmd, rearm)
}

// View renders the underlying input.
func (m Model) View() string { return m.input.View() }
