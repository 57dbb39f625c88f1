package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NorthstarWang/fintech-banking-tui/msg"
	"github.com/NorthstarWang/fintech-banking-tui/style"
)

// Tab identifies one dashboard view.
type Tab int

const (
	TabTransactions Tab = iota
	TabAccounts
	TabBudgets
	TabOffers
)

var tabTitles = []string{"Transactions", "Accounts", "Budgets", "Offers"}

// String returns the tab's display title.
func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabTitles) {
		return "unknown"
	}
	return tabTitles[int(t)]
}

// HeaderModel renders the top line: product name, backend version, and the
// tab strip with the active view highlighted.
type HeaderModel struct {
	version string
	active  Tab
}

// NewHeader returns a HeaderModel with a default version string.
func NewHeader() HeaderModel {
	return HeaderModel{version: "dev"}
}

// SetHealth populates the header from the health check result.
func (m *HeaderModel) SetHealth(h msg.HealthResult) {
	if h.Version != "" {
		m.version = h.Version
	}
}

// SetActive marks the active tab.
func (m *HeaderModel) SetActive(t Tab) { m.active = t }

// Active returns the active tab.
func (m HeaderModel) Active() Tab { return m.active }

// View renders the header line.
//
//	FinDash v1.4 │ Transactions  Accounts  Budgets  Offers
func (m HeaderModel) View() string {
	title := style.HeaderTitle.Render("FinDash") +
		style.HeaderDetail.Render(fmt.Sprintf(" %s", m.version))

	var tabs []string
	for i, name := range tabTitles {
		if Tab(i) == m.active {
			tabs = append(tabs, style.Selected.Render(name))
		} else {
			tabs = append(tabs, style.Faint.Render(name))
		}
	}
	sep := lipgloss.NewStyle().Foreground(style.Border).Render(" │ ")
	return title + sep + strings.Join(tabs, "  ")
}
