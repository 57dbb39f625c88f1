package window

import "fmt"

// Viewport tracks the scroll offset of one bounded scrollable region. Each
// instance owns its state exclusively; there is no shared registry. Offsets
// are clamped to [0, max(0, contentHeight-height)] on every mutation, so a
// Viewport can never report a position outside its content.
//
// Observers register with Subscribe and are notified synchronously whenever
// the offset changes. Subscribe returns an explicit cancel handle; callers
// must invoke it on teardown rather than relying on garbage collection.
type Viewport struct {
	height        int
	offset        int
	contentHeight int

	subs    map[int]func(offset int)
	nextSub int
}

// NewViewport constructs a Viewport with the given height in lines.
// A negative height is a caller contract violation and panics.
func NewViewport(height int) *Viewport {
	if height < 0 {
		panic(fmt.Sprintf("window: viewport height must be non-negative, got %d", height))
	}
	return &Viewport{height: height}
}

// Height returns the viewport height in lines.
func (v *Viewport) Height() int { return v.height }

// Offset returns the current scroll offset in lines from the top.
func (v *Viewport) Offset() int { return v.offset }

// ContentHeight returns the total scrollable extent in lines.
func (v *Viewport) ContentHeight() int { return v.contentHeight }

// MaxOffset returns the largest valid scroll offset.
func (v *Viewport) MaxOffset() int {
	max := v.contentHeight - v.height
	if max < 0 {
		return 0
	}
	return max
}

// SetHeight resizes the viewport and re-clamps the offset.
func (v *Viewport) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.height = h
	v.ScrollTo(v.offset)
}

// SetContentHeight updates the total scrollable extent and re-clamps the
// offset. The extent always reflects the full item sequence even though only
// a windowed slice is materialized, so scrollbar proportions stay correct.
func (v *Viewport) SetContentHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.contentHeight = h
	v.ScrollTo(v.offset)
}

// ScrollTo moves the offset to the given position, clamped to the valid
// window. Subscribers are notified synchronously if the offset changed.
func (v *Viewport) ScrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if max := v.MaxOffset(); offset > max {
		offset = max
	}
	if offset == v.offset {
		return
	}
	v.offset = offset
	for _, fn := range v.subs {
		fn(offset)
	}
}

// ScrollBy moves the offset by delta lines (negative scrolls up).
func (v *Viewport) ScrollBy(delta int) {
	v.ScrollTo(v.offset + delta)
}

// GotoTop scrolls to the first line.
func (v *Viewport) GotoTop() { v.ScrollTo(0) }

// GotoBottom scrolls to the last valid offset.
func (v *Viewport) GotoBottom() { v.ScrollTo(v.MaxOffset()) }

// PageDown scrolls down by one full viewport height.
func (v *Viewport) PageDown() { v.ScrollBy(v.height) }

// PageUp scrolls up by one full viewport height.
func (v *Viewport) PageUp() { v.ScrollBy(-v.height) }

// HalfPageDown scrolls down by half the viewport height.
func (v *Viewport) HalfPageDown() { v.ScrollBy(v.height / 2) }

// HalfPageUp scrolls up by half the viewport height.
func (v *Viewport) HalfPageUp() { v.ScrollBy(-v.height / 2) }

// AtTop reports whether the viewport is scrolled to the very top.
func (v *Viewport) AtTop() bool { return v.offset == 0 }

// AtBottom reports whether the viewport is scrolled to the very bottom.
func (v *Viewport) AtBottom() bool { return v.offset >= v.MaxOffset() }

// ScrollPercent returns the scroll position as a fraction in [0, 1].
func (v *Viewport) ScrollPercent() float64 {
	max := v.MaxOffset()
	if max == 0 {
		return 0
	}
	return float64(v.offset) / float64(max)
}

// Subscribe registers fn to be called synchronously with the new offset on
// every change. The returned cancel func removes the subscription; it is
// safe to call more than once.
func (v *Viewport) Subscribe(fn func(offset int)) (cancel func()) {
	if v.subs == nil {
		v.subs = make(map[int]func(int))
	}
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	return func() { delete(v.subs, id) }
}

// EnsureVisible scrolls the minimum amount needed to bring the line span
// [top, top+height) fully into view, with padding lines of margin. Spans
// already visible leave the offset untouched.
func (v *Viewport) EnsureVisible(top, height, padding int) {
	visibleTop := v.offset + padding
	visibleBottom := v.offset + v.height - padding

	if top < visibleTop {
		v.ScrollTo(top - padding)
	} else if top+height > visibleBottom {
		v.ScrollTo(top + height - v.height + padding)
	}
}
