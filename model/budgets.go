package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/NorthstarWang/fintech-banking-tui/msg"
	"github.com/NorthstarWang/fintech-banking-tui/style"
)

// Budget is the display mirror of a backend budget limit.
type Budget struct {
	Category   string
	LimitCents int64
	Currency   string
}

// budgetLine is one computed row: a limit with the spend accrued against it.
type budgetLine struct {
	Budget
	spentCents  int64
	utilization decimal.Decimal // spent / limit
}

// BudgetsModel computes per-category spend against monthly limits and
// renders a progress bar per category. Arithmetic runs on decimals so
// utilization fractions don't pick up float error before display.
type BudgetsModel struct {
	budgets []Budget
	lines   []budgetLine
	month   string // YYYY-MM window for accrual
}

// NewBudgets returns an empty BudgetsModel accruing over the given month.
func NewBudgets(month string) BudgetsModel {
	return BudgetsModel{month: month}
}

// SetBudgets replaces the budget limits. Recalculate must run afterwards
// to rebuild the lines.
func (m *BudgetsModel) SetBudgets(budgets []Budget) {
	m.budgets = budgets
}

// SetMonth changes the accrual window.
func (m *BudgetsModel) SetMonth(month string) { m.month = month }

// Len returns the number of budget lines.
func (m BudgetsModel) Len() int { return len(m.lines) }

// Recalculate rebuilds every budget line from the transaction history.
// Only spend (negative amounts) inside the accrual month counts.
func (m *BudgetsModel) Recalculate(txns []msg.Transaction) {
	spent := make(map[string]int64, len(m.budgets))
	for _, t := range txns {
		if t.AmountCents >= 0 || t.Pending {
			continue
		}
		if m.month != "" && !strings.HasPrefix(t.Date, m.month) {
			continue
		}
		spent[t.Category] += -t.AmountCents
	}

	m.lines = m.lines[:0]
	for _, b := range m.budgets {
		line := budgetLine{Budget: b, spentCents: spent[b.Category]}
		if b.LimitCents > 0 {
			line.utilization = decimal.NewFromInt(line.spentCents).
				Div(decimal.NewFromInt(b.LimitCents))
		}
		m.lines = append(m.lines, line)
	}
	sort.Slice(m.lines, func(i, j int) bool {
		return m.lines[i].utilization.GreaterThan(m.lines[j].utilization)
	})
}

// Overspent returns the categories at or past their limit, most utilized
// first.
func (m BudgetsModel) Overspent() []string {
	var out []string
	one := decimal.NewFromInt(1)
	for _, l := range m.lines {
		if l.utilization.GreaterThanOrEqual(one) {
			out = append(out, l.Category)
		}
	}
	return out
}

// View renders one progress line per category, ordered by utilization.
func (m BudgetsModel) View() string {
	if len(m.lines) == 0 {
		return style.Faint.Render("No budgets configured.")
	}
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderLine(l))
	}
	return b.String()
}

func (m BudgetsModel) renderLine(l budgetLine) string {
	util, _ := l.utilization.Float64()
	bar := style.ProgressBarRender(util, 20)
	spentDisp := money.New(l.spentCents, l.Currency).Display()
	limitDisp := money.New(l.LimitCents, l.Currency).Display()
	pct := l.utilization.Mul(decimal.NewFromInt(100)).Round(0)

	label := fmt.Sprintf(" %-14s %s / %s (%s%%)", l.Category, spentDisp, limitDisp, pct)
	if util >= 1 {
		return bar + style.ErrorText.Render(label)
	}
	return bar + style.StatusBar.Render(label)
}
