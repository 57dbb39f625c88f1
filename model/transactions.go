package model

import (
	"strings"

	"github.com/Rhymond/go-money"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/msg"
	"github.com/NorthstarWang/fintech-banking-tui/style"
	"github.com/NorthstarWang/fintech-banking-tui/ui/debounce"
	"github.com/NorthstarWang/fintech-banking-tui/ui/table"
)

// TransactionsModel is the virtualized transactions view: a windowed table
// over the full transaction history with a debounced search box and a
// category filter. Typing echoes immediately; the row filter only reapplies
// once the query settles.
type TransactionsModel struct {
	table    *table.Model[msg.Transaction]
	search   debounce.Model
	all      []msg.Transaction
	query    string // committed search query, lowercase
	category string // active category filter, empty = all
}

// NewTransactions builds the view with its column set. Height is the body
// height in lines; it is resized on every terminal resize.
func NewTransactions(height int) TransactionsModel {
	cols := []table.Column[msg.Transaction]{
		{Key: "date", Title: "Date", Width: 10},
		{Key: "merchant", Title: "Merchant", Width: 24},
		{Key: "category", Title: "Category", Width: 14},
		{Key: "amount", Title: "Amount", Width: 14, Render: renderAmount},
		{Key: "status", Title: "", Width: 8, Render: renderPending},
	}
	t := table.New(cols, rawTransaction,
		table.WithViewportHeight[msg.Transaction](height))
	return TransactionsModel{
		table:  t,
		search: debounce.New(debounce.WithPlaceholder("search merchant or note")),
	}
}

func rawTransaction(t msg.Transaction, key string) string {
	switch key {
	case "date":
		return t.Date
	case "merchant":
		return t.Merchant
	case "category":
		return t.Category
	default:
		return ""
	}
}

func renderAmount(t msg.Transaction) string {
	display := money.New(t.AmountCents, t.Currency).Display()
	if t.AmountCents >= 0 {
		return style.AmountCredit.Render("+" + display)
	}
	return style.AmountDebit.Render(display)
}

func renderPending(t msg.Transaction) string {
	if t.Pending {
		return style.PendingBadge.Render("pending")
	}
	return ""
}

// SetTransactions replaces the full history and reapplies the filter.
func (m *TransactionsModel) SetTransactions(txns []msg.Transaction) {
	m.all = txns
	m.applyFilter()
}

// Prepend inserts a live transaction at the top of the history.
func (m *TransactionsModel) Prepend(t msg.Transaction) {
	m.all = append([]msg.Transaction{t}, m.all...)
	m.applyFilter()
}

// SetCategory sets the category filter; empty clears it.
func (m *TransactionsModel) SetCategory(cat string) {
	m.category = cat
	m.applyFilter()
}

// Category returns the active category filter.
func (m TransactionsModel) Category() string { return m.category }

// Query returns the committed search query.
func (m TransactionsModel) Query() string { return m.query }

// History returns the full unfiltered transaction history.
func (m TransactionsModel) History() []msg.Transaction { return m.all }

// Len returns the filtered row count.
func (m TransactionsModel) Len() int { return m.table.Len() }

// Total returns the unfiltered history size.
func (m TransactionsModel) Total() int { return len(m.all) }

// Searching reports whether the search box has focus.
func (m TransactionsModel) Searching() bool { return m.search.Focused() }

// SelectedTransaction returns the row under the cursor, if any.
func (m TransactionsModel) SelectedTransaction() (msg.Transaction, bool) {
	return m.table.SelectedRow()
}

// ScrollPercent exposes the body's scroll position for the status bar.
func (m TransactionsModel) ScrollPercent() float64 {
	return m.table.Viewport().ScrollPercent()
}

// SetHeight resizes the table body.
func (m *TransactionsModel) SetHeight(h int) { m.table.SetHeight(h) }

// SetWidth resizes the search box.
func (m *TransactionsModel) SetWidth(w int) { m.search.SetWidth(w - 4) }

// FocusSearch gives the search box focus.
func (m *TransactionsModel) FocusSearch() tea.Cmd { return m.search.Focus() }

// BlurSearch drops search focus, cancelling any pending commit.
func (m *TransactionsModel) BlurSearch() { m.search.Blur() }

// ClearSearch empties the query and shows the full history again.
func (m *TransactionsModel) ClearSearch() {
	m.search.SetValue("")
	m.query = ""
	m.applyFilter()
}

// applyFilter recomputes the visible row set from the committed query and
// the category filter.
func (m *TransactionsModel) applyFilter() {
	if m.query == "" && m.category == "" {
		m.table.SetRows(m.all)
		return
	}
	rows := make([]msg.Transaction, 0, len(m.all))
	for _, t := range m.all {
		if m.category != "" && t.Category != m.category {
			continue
		}
		if m.query != "" && !matchesQuery(t, m.query) {
			continue
		}
		rows = append(rows, t)
	}
	m.table.SetRows(rows)
}

func matchesQuery(t msg.Transaction, q string) bool {
	return strings.Contains(strings.ToLower(t.Merchant), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Update routes messages. While the search box is focused it owns the
// keyboard; otherwise keys drive the table cursor. Commits from the
// debounced search reapply the filter and surface a SearchCommitted.
func (m *TransactionsModel) Update(message tea.Msg) tea.Cmd {
	switch v := message.(type) {
	case debounce.CommittedMsg:
		if v.ID != m.search.ID() {
			return nil
		}
		m.query = strings.ToLower(strings.TrimSpace(v.Value))
		m.applyFilter()
		query := m.query
		return func() tea.Msg { return msg.SearchCommitted{Query: query} }

	case tea.KeyMsg:
		if m.search.Focused() {
			switch v.Type {
			case tea.KeyEsc:
				m.BlurSearch()
				return nil
			case tea.KeyEnter:
				m.search.Blur()
				// Commit immediately on enter rather than waiting out
				// the debounce delay.
				m.query = strings.ToLower(strings.TrimSpace(m.search.Value()))
				m.applyFilter()
				query := m.query
				return func() tea.Msg { return msg.SearchCommitted{Query: query} }
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(message)
			return cmd
		}
		switch v.String() {
		case "up", "k":
			m.table.MoveUp(1)
		case "down", "j":
			m.table.MoveDown(1)
		case "pgup":
			m.table.MoveUp(m.pageSize())
		case "pgdown":
			m.table.MoveDown(m.pageSize())
		case "home", "g":
			m.table.GotoTop()
		case "end", "G":
			m.table.GotoBottom()
		}
		return nil

	case tea.MouseMsg:
		return m.table.Update(message)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(message)
	return cmd
}

func (m *TransactionsModel) pageSize() int {
	h := m.table.Viewport().Height()
	if h < 1 {
		return 1
	}
	return h
}

// View renders the search line, the filter summary, and the table.
func (m TransactionsModel) View() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")
	if m.query != "" || m.category != "" {
		b.WriteString(style.Hint.Render(m.filterLine()))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	return b.String()
}

func (m TransactionsModel) filterLine() string {
	var parts []string
	if m.query != "" {
		parts = append(parts, "search: "+m.query)
	}
	if m.category != "" {
		parts = append(parts, "category: "+m.category)
	}
	return strings.Join(parts, "  ·  ")
}
