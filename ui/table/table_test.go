package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/NorthstarWang/fintech-banking-tui/ui/window"
)

type row struct {
	ID   int
	Name string
}

func testColumns() []Column[row] {
	return []Column[row]{
		{Key: "id", Title: "ID", Width: 6},
		{Key: "name", Title: "Name", Width: 12},
	}
}

func rawRow(r row, key string) string {
	switch key {
	case "id":
		return fmt.Sprintf("%d", r.ID)
	case "name":
		return r.Name
	default:
		return ""
	}
}

func newTestTable(count int, opts ...Option[row]) *Model[row] {
	m := New(testColumns(), rawRow, opts...)
	rows := make([]row, count)
	for i := range rows {
		rows[i] = row{ID: i, Name: fmt.Sprintf("row %d", i)}
	}
	m.SetRows(rows)
	return m
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_PanicsWithoutAccessorOrRender(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for unresolvable column")
		}
	}()
	New([]Column[row]{{Key: "id", Title: "ID", Width: 4}}, nil)
}

func TestNew_RenderOnlyColumnsNeedNoAccessor(t *testing.T) {
	m := New([]Column[row]{
		{Key: "id", Title: "ID", Width: 6, Render: func(r row) string { return "#" }},
	}, nil)
	m.SetRows([]row{{ID: 1}})
	if !strings.Contains(m.View(), "#") {
		t.Error("render-only column did not produce its cell")
	}
}

func TestNew_PanicsOnZeroWidthColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for zero column width")
		}
	}()
	New([]Column[row]{{Key: "id", Title: "ID"}}, rawRow)
}

// ---------------------------------------------------------------------------
// Cell resolution
// ---------------------------------------------------------------------------

func TestCell_RenderTakesPrecedenceOverRawAccessor(t *testing.T) {
	cols := testColumns()
	cols[1].Render = func(r row) string { return "custom:" + r.Name }
	m := New(cols, rawRow)
	m.SetRows([]row{{ID: 7, Name: "seven"}})

	out := m.View()
	if !strings.Contains(out, "custom:seven") {
		t.Errorf("Render callback not used: %q", out)
	}
	if !strings.Contains(out, "7") {
		t.Errorf("raw accessor not used for the column without Render: %q", out)
	}
}

// ---------------------------------------------------------------------------
// Row identity against the range calculator
// ---------------------------------------------------------------------------

func TestWindow_RowCountMatchesRangeCalculator(t *testing.T) {
	// 200 rows, 9-line body, 1-line rows: the materialized row count must
	// track end-start+1 exactly at every scroll position.
	const rows, vpHeight, rowHeight = 200, 9, 1
	m := newTestTable(rows, WithViewportHeight[row](vpHeight))

	for off := 0; off <= rows*rowHeight-vpHeight; off += 7 {
		m.Viewport().ScrollTo(off)
		win := m.Window()
		want := window.ComputeRange(off, vpHeight, rowHeight, rows, window.DefaultOverscan)
		if win.Range != want {
			t.Fatalf("offset %d: table range %+v != calculator range %+v", off, win.Range, want)
		}
		if len(win.Items) != want.End-want.Start+1 {
			t.Fatalf("offset %d: materialized %d rows, want %d",
				off, len(win.Items), want.End-want.Start+1)
		}
	}
}

func TestView_BodyShowsWindowedRowsOnly(t *testing.T) {
	m := newTestTable(100, WithViewportHeight[row](5))
	m.Viewport().ScrollTo(50)
	out := m.View()
	if !strings.Contains(out, "row 50") {
		t.Errorf("first visible row missing: %q", out)
	}
	if strings.Contains(out, "row 99") {
		t.Errorf("far off-screen row materialized: %q", out)
	}
}

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

func TestCursor_MovesAndClamps(t *testing.T) {
	m := newTestTable(20, WithViewportHeight[row](5))

	m.MoveDown(3)
	if m.Cursor() != 3 {
		t.Errorf("MoveDown(3): want cursor=3, got %d", m.Cursor())
	}
	m.MoveUp(10)
	if m.Cursor() != 0 {
		t.Errorf("MoveUp past top: want cursor=0, got %d", m.Cursor())
	}
	m.GotoBottom()
	if m.Cursor() != 19 {
		t.Errorf("GotoBottom: want cursor=19, got %d", m.Cursor())
	}
	m.MoveDown(1)
	if m.Cursor() != 19 {
		t.Errorf("MoveDown past bottom: want cursor=19, got %d", m.Cursor())
	}
}

func TestCursor_ScrollsIntoView(t *testing.T) {
	m := newTestTable(100, WithViewportHeight[row](5))
	m.MoveDown(50)
	win := m.Window()
	if win.Range.Start > 50 || win.Range.End < 50 {
		t.Errorf("cursor row 50 outside window %+v", win.Range)
	}
}

func TestCursor_SelectedRow(t *testing.T) {
	m := newTestTable(10)
	m.MoveDown(4)
	r, ok := m.SelectedRow()
	if !ok || r.ID != 4 {
		t.Errorf("want selected row 4, got %+v ok=%v", r, ok)
	}

	empty := New(testColumns(), rawRow)
	if _, ok := empty.SelectedRow(); ok {
		t.Error("empty table must report no selection")
	}
}

func TestSetRows_ReclampsCursor(t *testing.T) {
	m := newTestTable(20)
	m.GotoBottom()
	m.SetRows([]row{{ID: 0}, {ID: 1}, {ID: 2}})
	if m.Cursor() != 2 {
		t.Errorf("after shrink: want cursor=2, got %d", m.Cursor())
	}
	m.SetRows(nil)
	if m.Cursor() != 0 {
		t.Errorf("after clearing: want cursor=0, got %d", m.Cursor())
	}
	if out := m.View(); !strings.Contains(out, "ID") {
		t.Errorf("empty table must still render its header: %q", out)
	}
}
