package model

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"

	"github.com/NorthstarWang/fintech-banking-tui/style"
)

// Account is the display mirror of a backend account.
type Account struct {
	ID           string
	Name         string
	Type         string // checking | savings | credit
	Currency     string
	BalanceCents int64
}

// AccountsModel renders account summary cards with live balances.
type AccountsModel struct {
	accounts []Account
	width    int
}

// NewAccounts returns an empty AccountsModel.
func NewAccounts() AccountsModel {
	return AccountsModel{width: 80}
}

// SetAccounts replaces the account set.
func (m *AccountsModel) SetAccounts(accounts []Account) {
	m.accounts = accounts
}

// UpdateBalance applies a live balance update; unknown IDs are ignored.
func (m *AccountsModel) UpdateBalance(accountID string, balanceCents int64) {
	for i := range m.accounts {
		if m.accounts[i].ID == accountID {
			m.accounts[i].BalanceCents = balanceCents
			return
		}
	}
}

// Len returns the number of accounts.
func (m AccountsModel) Len() int { return len(m.accounts) }

// SetWidth constrains the card row to the terminal width.
func (m *AccountsModel) SetWidth(w int) { m.width = w }

// NetWorthCents sums balances across accounts. Mixed currencies are summed
// as-is; the backend guarantees one currency per profile.
func (m AccountsModel) NetWorthCents() int64 {
	var total int64
	for _, a := range m.accounts {
		total += a.BalanceCents
	}
	return total
}

// View renders one card per account plus a net-worth footer.
func (m AccountsModel) View() string {
	if len(m.accounts) == 0 {
		return style.Faint.Render("No accounts.")
	}

	cardWidth := 28
	var cards []string
	for _, a := range m.accounts {
		cards = append(cards, m.renderCard(a, cardWidth))
	}

	perRow := m.width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	currency := "USD"
	if len(m.accounts) > 0 {
		currency = m.accounts[0].Currency
	}
	net := money.New(m.NetWorthCents(), currency).Display()
	footer := style.Faint.Render("net ") + style.Bold.Render(net)

	return strings.Join(rows, "\n") + "\n\n" + footer
}

func (m AccountsModel) renderCard(a Account, width int) string {
	balance := money.New(a.BalanceCents, a.Currency).Display()
	amountStyle := style.AmountCredit
	if a.BalanceCents < 0 {
		amountStyle = style.AmountDebit
	}

	body := fmt.Sprintf("%s\n%s\n%s",
		style.CardTitle.Render(a.Name),
		style.Faint.Render(a.Type),
		amountStyle.Render(balance))
	return style.CardBorder.Width(width).Render(body)
}
