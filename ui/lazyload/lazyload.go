// Package lazyload defers fetching a resource until its hosting element is
// inside (or near) the visible viewport. Each instance fires its fetch at
// most once; load state only ever moves forward.
package lazyload

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/ui/window"
)

// State is the load state of one instance. Transitions are monotonic:
// Pending moves to Loaded or Failed and never back, and there is no
// automatic retry. Remounting with Reset is the only way back to Pending.
type State int

const (
	StatePending State = iota
	StateLoaded
	StateFailed
)

// DefaultMargin is how many lines before entering view a load fires.
const DefaultMargin = 5

// DefaultThreshold is the fraction of the element that must intersect the
// (margin-expanded) viewport before the load fires.
const DefaultThreshold = 0.1

// FetchFunc retrieves the resource body for a source reference. It runs in a
// tea.Cmd goroutine and must be safe to call off the update loop.
type FetchFunc func(src string) (string, error)

// LoadedMsg reports a successful fetch. ID and Gen route the result back to
// the instance (and generation) that requested it.
type LoadedMsg struct {
	ID      int
	Gen     int
	Content string
}

// FailedMsg reports a failed fetch.
type FailedMsg struct {
	ID  int
	Gen int
	Err error
}

var nextID atomic.Int64

// Model is one lazy-loaded resource slot.
type Model struct {
	id  int
	gen int

	src         string
	alt         string
	placeholder string
	fetch       FetchFunc

	margin    int
	threshold float64

	state     State
	requested bool
	content   string
	err       error

	onLoad  func()
	onError func(error)
}

// Option configures a Model at construction.
type Option func(*Model)

// WithPlaceholder sets the text shown until the resource is loaded. It also
// stays up after a failed load.
func WithPlaceholder(s string) Option {
	return func(m *Model) { m.placeholder = s }
}

// WithMargin sets the proximity margin in lines.
func WithMargin(n int) Option {
	return func(m *Model) { m.margin = n }
}

// WithThreshold sets the visibility threshold as a fraction in (0, 1].
func WithThreshold(f float64) Option {
	return func(m *Model) { m.threshold = f }
}

// WithOnLoad registers a callback invoked once when the load succeeds.
func WithOnLoad(fn func()) Option {
	return func(m *Model) { m.onLoad = fn }
}

// WithOnError registers a callback invoked once when the load fails.
func WithOnError(fn func(error)) Option {
	return func(m *Model) { m.onError = fn }
}

// New constructs a Pending instance for src. A nil fetch is a caller
// contract violation and panics.
func New(src, alt string, fetch FetchFunc, opts ...Option) *Model {
	if fetch == nil {
		panic("lazyload: fetch must not be nil")
	}
	m := &Model{
		id:        int(nextID.Add(1)),
		src:       src,
		alt:       alt,
		fetch:     fetch,
		margin:    DefaultMargin,
		threshold: DefaultThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State returns the current load state.
func (m *Model) State() State { return m.state }

// Src returns the current source reference.
func (m *Model) Src() string { return m.src }

// Err returns the load error after a failure, nil otherwise.
func (m *Model) Err() error { return m.err }

// Requested reports whether the single fetch has been fired.
func (m *Model) Requested() bool { return m.requested }

// CheckVisible tests the element span [itemTop, itemTop+itemHeight) against
// the viewport expanded by the proximity margin. On the first crossing of
// the visibility threshold it fires the fetch exactly once and returns the
// command; every later call returns nil regardless of visibility changes.
func (m *Model) CheckVisible(itemTop, itemHeight int, vp *window.Viewport) tea.Cmd {
	if m.requested || m.state != StatePending || itemHeight <= 0 {
		return nil
	}

	top := vp.Offset() - m.margin
	bottom := vp.Offset() + vp.Height() + m.margin
	overlapTop := max(itemTop, top)
	overlapBottom := min(itemTop+itemHeight, bottom)
	if overlapBottom <= overlapTop {
		return nil
	}
	if float64(overlapBottom-overlapTop)/float64(itemHeight) < m.threshold {
		return nil
	}

	m.requested = true
	id, gen, src, fetch := m.id, m.gen, m.src, m.fetch
	return func() tea.Msg {
		content, err := fetch(src)
		if err != nil {
			return FailedMsg{ID: id, Gen: gen, Err: err}
		}
		return LoadedMsg{ID: id, Gen: gen, Content: content}
	}
}

// Update routes fetch results. Results for other instances, for a stale
// generation, or arriving after the state already moved are dropped, so a
// remounted instance can never be corrupted by an old in-flight fetch.
func (m *Model) Update(msg tea.Msg) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.ID != m.id || msg.Gen != m.gen || m.state != StatePending {
			return
		}
		m.state = StateLoaded
		m.content = msg.Content
		if m.onLoad != nil {
			m.onLoad()
		}
	case FailedMsg:
		if msg.ID != m.id || msg.Gen != m.gen || m.state != StatePending {
			return
		}
		m.state = StateFailed
		m.err = msg.Err
		if m.onError != nil {
			m.onError(msg.Err)
		}
	}
}

// Reset remounts the instance with a new source: back to Pending with the
// fetch re-armed. The generation bump makes any in-flight result stale.
func (m *Model) Reset(src string) {
	m.gen++
	m.src = src
	m.state = StatePending
	m.requested = false
	m.content = ""
	m.err = nil
}

// View renders the loaded content, or the placeholder while Pending and
// after a failure. With no placeholder configured the alt text stands in.
func (m *Model) View() string {
	if m.state == StateLoaded {
		return m.content
	}
	if m.placeholder != "" {
		return m.placeholder
	}
	return m.alt
}
