// Package table presents typed rows as a virtualized table: a static styled
// header over a windowed body. Only the rows inside the scroll window are
// materialized, so tables stay cheap at thousands of rows.
package table

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NorthstarWang/fintech-banking-tui/ui/window"
)

// Column describes one typed column. Render, when set, takes precedence over
// the table's raw accessor for this column's cells.
type Column[T any] struct {
	Key    string
	Title  string
	Width  int
	Render func(item T) string
}

// RawAccessor resolves a cell value from an item by column key. It is the
// fallback used for columns without their own Render.
type RawAccessor[T any] func(item T, key string) string

// Styles holds the lipgloss styles applied per region.
type Styles struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns an understated look that works on dark and light
// backgrounds.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"}).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}),
		Row: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
	}
}

// Model is a virtualized table over rows of type T. All rows share one fixed
// rowHeight; heterogeneous row heights are unsupported.
type Model[T any] struct {
	cols   []Column[T]
	raw    RawAccessor[T]
	win    *window.Model[T]
	styles Styles
	cursor int
}

// Option configures a Model at construction.
type Option[T any] func(*config)

type config struct {
	rowHeight      int
	viewportHeight int
	overscan       int
}

// WithRowHeight sets the fixed height of every row in lines (default 1).
func WithRowHeight[T any](h int) Option[T] {
	return func(c *config) { c.rowHeight = h }
}

// WithViewportHeight sets the visible body height in lines (default 10).
func WithViewportHeight[T any](h int) Option[T] {
	return func(c *config) { c.viewportHeight = h }
}

// WithOverscan sets the windowing overscan (default window.DefaultOverscan).
func WithOverscan[T any](n int) Option[T] {
	return func(c *config) { c.overscan = n }
}

// New constructs a table from column definitions and a raw accessor. The
// accessor may be nil only if every column carries its own Render; a column
// resolvable neither way is a construction error and panics.
func New[T any](cols []Column[T], raw RawAccessor[T], opts ...Option[T]) *Model[T] {
	if len(cols) == 0 {
		panic("table: at least one column is required")
	}
	for _, c := range cols {
		if c.Render == nil && raw == nil {
			panic(fmt.Sprintf("table: column %q has no Render and no raw accessor", c.Key))
		}
		if c.Width <= 0 {
			panic(fmt.Sprintf("table: column %q must have positive width, got %d", c.Key, c.Width))
		}
	}
	cfg := config{rowHeight: 1, viewportHeight: 10, overscan: window.DefaultOverscan}
	for _, o := range opts {
		o(&cfg)
	}
	m := &Model[T]{
		cols:   cols,
		raw:    raw,
		styles: DefaultStyles(),
	}
	m.win = window.New(cfg.viewportHeight, cfg.rowHeight, m.renderRow,
		window.WithOverscan[T](cfg.overscan))
	return m
}

// SetStyles replaces the table's styles.
func (m *Model[T]) SetStyles(s Styles) { m.styles = s }

// SetRows replaces the row set. The cursor is re-clamped so a shrinking set
// cannot leave it dangling.
func (m *Model[T]) SetRows(rows []T) {
	m.win.SetItems(rows)
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Rows returns the full row set.
func (m *Model[T]) Rows() []T { return m.win.Items() }

// Len returns the number of rows.
func (m *Model[T]) Len() int { return m.win.Len() }

// SetHeight resizes the body viewport.
func (m *Model[T]) SetHeight(h int) { m.win.SetHeight(h) }

// Cursor returns the selected row index.
func (m *Model[T]) Cursor() int { return m.cursor }

// SelectedRow returns the row under the cursor, if any.
func (m *Model[T]) SelectedRow() (T, bool) {
	var zero T
	if m.win.Len() == 0 {
		return zero, false
	}
	return m.win.Items()[m.cursor], true
}

// MoveUp moves the selection up n rows and scrolls it into view.
func (m *Model[T]) MoveUp(n int) { m.moveTo(m.cursor - n) }

// MoveDown moves the selection down n rows and scrolls it into view.
func (m *Model[T]) MoveDown(n int) { m.moveTo(m.cursor + n) }

// GotoTop selects the first row.
func (m *Model[T]) GotoTop() { m.moveTo(0) }

// GotoBottom selects the last row.
func (m *Model[T]) GotoBottom() { m.moveTo(m.win.Len() - 1) }

func (m *Model[T]) moveTo(i int) {
	if m.win.Len() == 0 {
		m.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i > m.win.Len()-1 {
		i = m.win.Len() - 1
	}
	m.cursor = i
	m.win.EnsureVisible(i)
}

// Window exposes the current body window for callers that need to know which
// rows are materialized.
func (m *Model[T]) Window() window.Window[T] { return m.win.Window() }

// Viewport exposes the body's scroll tracker.
func (m *Model[T]) Viewport() *window.Viewport { return m.win.Viewport() }

// Update forwards scroll events to the windowed body.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	return m.win.Update(msg)
}

// cell resolves one cell value: Column.Render wins over the raw accessor.
func (m *Model[T]) cell(item T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(item)
	}
	return m.raw(item, col.Key)
}

func (m *Model[T]) renderRow(item T, index int) string {
	cells := make([]string, len(m.cols))
	for i, col := range m.cols {
		cells[i] = lipgloss.NewStyle().
			Width(col.Width).MaxWidth(col.Width).Inline(true).
			Render(m.cell(item, col))
	}
	row := strings.Join(cells, " ")
	if index == m.cursor {
		return m.styles.Selected.Render(row)
	}
	return m.styles.Row.Render(row)
}

// headerView renders the static header from the column titles.
func (m *Model[T]) headerView() string {
	cells := make([]string, len(m.cols))
	for i, col := range m.cols {
		cells[i] = lipgloss.NewStyle().
			Width(col.Width).MaxWidth(col.Width).Inline(true).
			Render(col.Title)
	}
	return m.styles.Header.Render(strings.Join(cells, " "))
}

// View renders the header and the windowed body.
func (m *Model[T]) View() string {
	return m.headerView() + "\n" + m.win.View()
}
