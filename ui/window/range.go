// Package window provides viewport-based virtualization for large item
// sequences in the dashboard TUI. Only the items that intersect the visible
// viewport (plus a small overscan margin) are rendered on each View() call —
// everything else is skipped entirely.
//
// The package is built from three pieces, leaves first:
//
//   - ComputeRange: pure index-window arithmetic, no state.
//   - Viewport: owned scroll-offset state for one scrollable region, with
//     explicit subscribe/cancel notification.
//   - Model[T]: the windowed renderer composing the two, recomputing the
//     visible window from scratch on every evaluation.
//
// All geometry is measured in terminal lines. Item heights are fixed per
// list; variable-height items are intentionally unsupported, which is what
// keeps the index arithmetic O(1) and drift-free.
package window

import "fmt"

// Range is the inclusive [Start, End] window of item indices currently
// materialized. It is always derived fresh from viewport geometry — never
// stored, never incremented.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool { return r.End < r.Start }

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// ComputeRange returns the window of item indices that intersect the
// viewport, widened by overscan items on each side and clamped to
// [0, itemCount-1]:
//
//	start = max(0, scrollOffset/itemHeight - overscan)
//	end   = min(itemCount-1, ceil((scrollOffset+viewportHeight)/itemHeight) + overscan)
//
// The function is pure and deterministic: identical arguments always produce
// identical results. itemCount == 0 yields an empty range; callers must check
// Empty() before indexing. itemHeight <= 0 is a caller contract violation and
// panics rather than dividing by zero — validate geometry at construction.
func ComputeRange(scrollOffset, viewportHeight, itemHeight, itemCount, overscan int) Range {
	if itemHeight <= 0 {
		panic(fmt.Sprintf("window: itemHeight must be positive, got %d", itemHeight))
	}
	if itemCount <= 0 {
		return Range{Start: 0, End: -1}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	start := scrollOffset/itemHeight - overscan
	if start < 0 {
		start = 0
	}
	if start > itemCount-1 {
		start = itemCount - 1
	}

	end := ceilDiv(scrollOffset+viewportHeight, itemHeight) + overscan
	if end > itemCount-1 {
		end = itemCount - 1
	}

	return Range{Start: start, End: end}
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
