package model

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NorthstarWang/fintech-banking-tui/msg"
)

func txnFixture(count int) []msg.Transaction {
	txns := make([]msg.Transaction, count)
	for i := range txns {
		cat := "groceries"
		if i%2 == 1 {
			cat = "dining"
		}
		txns[i] = msg.Transaction{
			ID:          fmt.Sprintf("t%d", i),
			Merchant:    fmt.Sprintf("Merchant %d", i),
			Category:    cat,
			AmountCents: -1000,
			Currency:    "USD",
			Date:        "2026-08-01",
		}
	}
	return txns
}

func TestSetCategory_FiltersRows(t *testing.T) {
	m := NewTransactions(10)
	m.SetTransactions(txnFixture(20))

	if m.Len() != 20 || m.Total() != 20 {
		t.Fatalf("unfiltered: want 20/20, got %d/%d", m.Len(), m.Total())
	}

	m.SetCategory("dining")
	if m.Len() != 10 {
		t.Errorf("dining filter: want 10 rows, got %d", m.Len())
	}
	if m.Total() != 20 {
		t.Errorf("Total must stay unfiltered, got %d", m.Total())
	}

	m.SetCategory("")
	if m.Len() != 20 {
		t.Errorf("clearing the category must restore all rows, got %d", m.Len())
	}
}

func TestSearch_EnterCommitsImmediately(t *testing.T) {
	m := NewTransactions(10)
	m.SetTransactions(txnFixture(20))

	m.FocusSearch()
	for _, r := range "merchant 7" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter must emit a SearchCommitted")
	}
	if _, ok := cmd().(msg.SearchCommitted); !ok {
		t.Fatalf("want SearchCommitted, got %T", cmd())
	}

	if m.Len() != 1 {
		t.Errorf("want the single matching row, got %d", m.Len())
	}
	if m.Searching() {
		t.Error("enter must drop search focus")
	}
}

func TestSearch_CombinesWithCategoryFilter(t *testing.T) {
	m := NewTransactions(10)
	m.SetTransactions(txnFixture(20))
	m.SetCategory("dining") // odd indices

	m.FocusSearch()
	for _, r := range "merchant 7" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Merchant 7 sits at an odd index, so it passes the dining filter too.
	if m.Len() != 1 {
		t.Errorf("want 1 row matching both filters, got %d", m.Len())
	}

	m.ClearSearch()
	if m.Len() != 10 {
		t.Errorf("clearing search must keep the category filter, got %d", m.Len())
	}
}

func TestPrepend_InsertsLiveTransactionAtTop(t *testing.T) {
	m := NewTransactions(10)
	m.SetTransactions(txnFixture(5))

	m.Prepend(msg.Transaction{ID: "live", Merchant: "Live Merchant", Category: "dining"})
	if m.Total() != 6 {
		t.Fatalf("want 6 total, got %d", m.Total())
	}
	row, ok := m.SelectedTransaction()
	if !ok || row.ID != "live" {
		t.Errorf("cursor at top must now select the live row, got %+v", row)
	}
}

func TestPrepend_RespectsActiveFilter(t *testing.T) {
	m := NewTransactions(10)
	m.SetTransactions(txnFixture(5))
	m.SetCategory("groceries")
	before := m.Len()

	m.Prepend(msg.Transaction{ID: "live", Category: "dining"})
	if m.Len() != before {
		t.Errorf("filtered-out live row must not appear: %d -> %d", before, m.Len())
	}
	if m.Total() != 6 {
		t.Errorf("history must still grow, got %d", m.Total())
	}
}
