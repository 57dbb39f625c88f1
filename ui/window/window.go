package window

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultOverscan is the number of extra items rendered beyond the strictly
// visible range on each side, to reduce flicker during fast scrolling.
const DefaultOverscan = 3

// wheelLines is how many lines one mouse wheel notch scrolls.
const wheelLines = 3

// RenderItem renders one item at its sequence index. The returned string is
// padded or cropped to exactly the renderer's item height, so items always
// appear at their true logical position. A panic inside the callback is not
// recovered here; it propagates to the caller's rendering boundary.
type RenderItem[T any] func(item T, index int) string

// Window is the ephemeral output of one windowing computation. It is
// recomputed from scratch on every evaluation — OffsetY and TotalHeight are
// derived, never incremented, so no drift can accumulate between events.
type Window[T any] struct {
	// Range is the inclusive index window; empty when there are no items.
	Range Range

	// Items is the windowed slice of the item sequence. It shares backing
	// storage with the caller's slice and is only valid for one render pass.
	Items []T

	// OffsetY is the line position of the first windowed item: Start*itemHeight.
	OffsetY int

	// TotalHeight is the full scrollable extent: itemCount*itemHeight.
	TotalHeight int
}

// Model is a windowed renderer over a fixed-height item sequence. It
// composes a Viewport (scroll state) with ComputeRange (index arithmetic)
// and materializes only the items inside the computed window.
//
// The item sequence is owned by the caller and treated as immutable within
// one render pass; replace it wholesale with SetItems.
type Model[T any] struct {
	vp         *Viewport
	items      []T
	itemHeight int
	overscan   int
	renderItem RenderItem[T]
}

// Option configures a Model.
type Option[T any] func(*Model[T])

// WithOverscan sets the overscan item count. Negative values are a caller
// contract violation and panic at construction.
func WithOverscan[T any](n int) Option[T] {
	return func(m *Model[T]) {
		if n < 0 {
			panic(fmt.Sprintf("window: overscan must be non-negative, got %d", n))
		}
		m.overscan = n
	}
}

// New constructs a windowed renderer. viewportHeight is the visible extent
// in lines, itemHeight the fixed per-item height in lines. Invalid geometry
// (itemHeight <= 0, nil renderItem) fails fast here rather than misbehaving
// silently at render time.
func New[T any](viewportHeight, itemHeight int, renderItem RenderItem[T], opts ...Option[T]) *Model[T] {
	if itemHeight <= 0 {
		panic(fmt.Sprintf("window: itemHeight must be positive, got %d", itemHeight))
	}
	if renderItem == nil {
		panic("window: renderItem must not be nil")
	}
	m := &Model[T]{
		vp:         NewViewport(viewportHeight),
		itemHeight: itemHeight,
		overscan:   DefaultOverscan,
		renderItem: renderItem,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Viewport exposes the underlying scroll tracker for subscription and
// programmatic scrolling.
func (m *Model[T]) Viewport() *Viewport { return m.vp }

// ItemHeight returns the fixed per-item height in lines.
func (m *Model[T]) ItemHeight() int { return m.itemHeight }

// Len returns the number of items in the sequence.
func (m *Model[T]) Len() int { return len(m.items) }

// Items returns the full item sequence.
func (m *Model[T]) Items() []T { return m.items }

// SetItems replaces the item sequence and updates the scrollable extent.
// The current offset is re-clamped, so shrinking the sequence can move it.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.vp.SetContentHeight(len(items) * m.itemHeight)
}

// SetHeight resizes the viewport.
func (m *Model[T]) SetHeight(h int) { m.vp.SetHeight(h) }

// EnsureVisible scrolls the minimum amount needed to bring item index fully
// into view.
func (m *Model[T]) EnsureVisible(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.vp.EnsureVisible(index*m.itemHeight, m.itemHeight, 0)
}

// Window computes the current rendered window from viewport geometry. The
// result is derived fresh on every call; nothing is cached across events.
func (m *Model[T]) Window() Window[T] {
	r := ComputeRange(m.vp.Offset(), m.vp.Height(), m.itemHeight, len(m.items), m.overscan)
	w := Window[T]{
		Range:       r,
		TotalHeight: len(m.items) * m.itemHeight,
	}
	if r.Empty() {
		return w
	}
	w.Items = m.items[r.Start : r.End+1]
	w.OffsetY = r.Start * m.itemHeight
	return w
}

// Update handles mouse wheel scrolling. Callers forward whichever tea.Msg
// events they want the renderer to respond to; page/home/end navigation is
// driven through the Viewport by the caller's keymap.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp.ScrollBy(-wheelLines)
		case tea.MouseButtonWheelDown:
			m.vp.ScrollBy(wheelLines)
		}
	}
	return nil
}

// View materializes the windowed slice, cropped to the viewport. Each item
// is rendered through the render callback, normalized to exactly itemHeight
// lines, and the leading lines scrolled past the top of the viewport are
// dropped so remaining items sit at their true logical position.
func (m *Model[T]) View() string {
	win := m.Window()
	if win.Range.Empty() || m.vp.Height() <= 0 {
		return ""
	}

	lines := make([]string, 0, win.Range.Len()*m.itemHeight)
	for i, item := range win.Items {
		rendered := m.renderItem(item, win.Range.Start+i)
		lines = append(lines, normalizeHeight(rendered, m.itemHeight)...)
	}

	// Crop overscan and partially-scrolled lines above the viewport top.
	crop := m.vp.Offset() - win.OffsetY
	if crop < 0 {
		crop = 0
	}
	if crop > len(lines) {
		crop = len(lines)
	}
	lines = lines[crop:]

	if len(lines) > m.vp.Height() {
		lines = lines[:m.vp.Height()]
	}
	return strings.Join(lines, "\n")
}

// normalizeHeight pads or crops a rendered item to exactly height lines.
// Fixed item heights are what keep the window arithmetic exact; an item
// rendering taller than its declared height is truncated, not reflowed.
func normalizeHeight(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
