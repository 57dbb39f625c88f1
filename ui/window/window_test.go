package window

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newNumbered(viewportHeight, itemHeight, count int, opts ...Option[int]) *Model[int] {
	m := New(viewportHeight, itemHeight, func(item, index int) string {
		return fmt.Sprintf("row-%d", index)
	}, opts...)
	items := make([]int, count)
	for i := range items {
		items[i] = i
	}
	m.SetItems(items)
	return m
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_PanicsOnInvalidGeometry(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for itemHeight=0")
		}
	}()
	New[int](10, 0, func(int, int) string { return "" })
}

func TestNew_PanicsOnNegativeOverscan(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for negative overscan")
		}
	}()
	New(10, 1, func(int, int) string { return "" }, WithOverscan[int](-1))
}

// ---------------------------------------------------------------------------
// Window derivation
// ---------------------------------------------------------------------------

func TestWindow_OffsetAndTotalConsistency(t *testing.T) {
	m := newNumbered(10, 2, 500)
	for _, off := range []int{0, 1, 13, 500, 990} {
		m.Viewport().ScrollTo(off)
		win := m.Window()
		if win.OffsetY != win.Range.Start*2 {
			t.Errorf("offset %d: OffsetY=%d, want Start*itemHeight=%d",
				off, win.OffsetY, win.Range.Start*2)
		}
		if win.TotalHeight != 500*2 {
			t.Errorf("offset %d: TotalHeight=%d, want 1000", off, win.TotalHeight)
		}
		if len(win.Items) != win.Range.Len() {
			t.Errorf("offset %d: slice length %d != range length %d",
				off, len(win.Items), win.Range.Len())
		}
	}
}

func TestWindow_EmptySequence(t *testing.T) {
	m := New(10, 2, func(item, index int) string { return "x" })
	m.SetItems(nil)
	win := m.Window()
	if !win.Range.Empty() {
		t.Errorf("want empty range, got %+v", win.Range)
	}
	if out := m.View(); out != "" {
		t.Errorf("empty sequence must render nothing, got %q", out)
	}
}

func TestWindow_RecomputedFreshEachCall(t *testing.T) {
	m := newNumbered(10, 1, 100)
	m.Viewport().ScrollTo(40)
	a := m.Window()
	b := m.Window()
	if a.Range != b.Range || a.OffsetY != b.OffsetY || a.TotalHeight != b.TotalHeight {
		t.Errorf("repeated Window() calls diverged: %+v vs %+v", a, b)
	}
}

// ---------------------------------------------------------------------------
// View materialization
// ---------------------------------------------------------------------------

func TestView_ShowsOnlyViewportLines(t *testing.T) {
	m := newNumbered(5, 1, 100)
	m.Viewport().ScrollTo(50)
	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("want 5 lines, got %d: %q", len(lines), out)
	}
	for i, line := range lines {
		want := fmt.Sprintf("row-%d", 50+i)
		if line != want {
			t.Errorf("line %d: want %q, got %q", i, want, line)
		}
	}
}

func TestView_TopOfList(t *testing.T) {
	m := newNumbered(5, 1, 100)
	out := m.View()
	if !strings.HasPrefix(out, "row-0\n") {
		t.Errorf("at top the first visible line must be row-0, got %q", out)
	}
}

func TestView_BottomOfList(t *testing.T) {
	m := newNumbered(5, 1, 100)
	m.Viewport().GotoBottom()
	lines := strings.Split(m.View(), "\n")
	if lines[len(lines)-1] != "row-99" {
		t.Errorf("at bottom the last visible line must be row-99, got %v", lines)
	}
}

func TestView_MultiLineItemsCropAtPartialScroll(t *testing.T) {
	m := New(4, 3, func(item, index int) string {
		return fmt.Sprintf("i%d-a\ni%d-b\ni%d-c", index, index, index)
	})
	m.SetItems(make([]int, 10))

	// Offset 4 lands one line into item 1: first visible line is i1-b.
	m.Viewport().ScrollTo(4)
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d", len(lines))
	}
	if lines[0] != "i1-b" {
		t.Errorf("want first visible line i1-b, got %q", lines[0])
	}
}

func TestView_ShortRenderPaddedToItemHeight(t *testing.T) {
	m := New(6, 2, func(item, index int) string {
		return fmt.Sprintf("only-%d", index) // one line, item height two
	})
	m.SetItems(make([]int, 5))
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 6 {
		t.Fatalf("want 6 lines, got %d", len(lines))
	}
	if lines[0] != "only-0" || lines[1] != "" || lines[2] != "only-1" {
		t.Errorf("padding broken: %v", lines)
	}
}

func TestView_MaterializedCountMatchesRange(t *testing.T) {
	m := newNumbered(9, 1, 200, WithOverscan[int](3))
	for _, off := range []int{0, 17, 100, 191} {
		m.Viewport().ScrollTo(off)
		win := m.Window()
		want := ComputeRange(off, 9, 1, 200, 3)
		if win.Range != want {
			t.Errorf("offset %d: window range %+v != ComputeRange %+v", off, win.Range, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Scrolling via Update
// ---------------------------------------------------------------------------

func TestUpdate_MouseWheel(t *testing.T) {
	m := newNumbered(5, 1, 100)
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if m.Viewport().Offset() != 3 {
		t.Errorf("wheel down: want offset=3, got %d", m.Viewport().Offset())
	}
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if m.Viewport().Offset() != 0 {
		t.Errorf("wheel up: want offset=0, got %d", m.Viewport().Offset())
	}
}

func TestEnsureVisible_ScrollsToItem(t *testing.T) {
	m := newNumbered(10, 2, 100)
	m.EnsureVisible(50)
	win := m.Window()
	if win.Range.Start > 50 || win.Range.End < 50 {
		t.Errorf("item 50 not inside window %+v after EnsureVisible", win.Range)
	}
	// Out-of-bounds indices are ignored.
	before := m.Viewport().Offset()
	m.EnsureVisible(-1)
	m.EnsureVisible(100)
	if m.Viewport().Offset() != before {
		t.Error("out-of-bounds EnsureVisible must not move the viewport")
	}
}

func TestRapidScrollDoesNotPanic(t *testing.T) {
	m := newNumbered(7, 2, 50)
	for i := 0; i < 300; i++ {
		switch {
		case i%11 == 0:
			m.Viewport().GotoBottom()
		case i%7 == 0:
			m.Viewport().GotoTop()
		case i%2 == 0:
			m.Viewport().ScrollBy(i % 9)
		default:
			m.Viewport().ScrollBy(-(i % 5))
		}
		_ = m.View() // must not panic
		win := m.Window()
		if !win.Range.Empty() && (win.Range.Start < 0 || win.Range.End > 49) {
			t.Fatalf("bounds violated mid-scroll: %+v", win.Range)
		}
	}
}
