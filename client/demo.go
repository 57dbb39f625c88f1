package client

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// demoCategories are the spending categories the generated dataset uses.
var demoCategories = []string{
	"groceries", "dining", "transport", "utilities",
	"entertainment", "shopping", "health", "travel",
}

// Demo serves a generated dataset so the dashboard runs without a backend.
// It implements the same API surface as *Client; a fixed seed makes every
// run reproducible.
type Demo struct {
	faker        *gofakeit.Faker
	accounts     []Account
	transactions []Transaction
	budgets      []Budget
	offers       []Offer
	details      map[string]string
}

// NewDemo builds a demo dataset with the given number of transactions.
func NewDemo(seed int64, txnCount int) *Demo {
	d := &Demo{
		faker:   gofakeit.New(seed),
		details: make(map[string]string),
	}
	d.generate(txnCount)
	return d
}

func (d *Demo) generate(txnCount int) {
	f := d.faker

	d.accounts = []Account{
		{ID: f.UUID(), Name: "Everyday Checking", Type: "checking", Currency: "USD",
			BalanceCents: int64(f.Number(80_000, 900_000))},
		{ID: f.UUID(), Name: "Rainy Day Savings", Type: "savings", Currency: "USD",
			BalanceCents: int64(f.Number(500_000, 4_000_000))},
		{ID: f.UUID(), Name: "Travel Rewards Card", Type: "credit", Currency: "USD",
			BalanceCents: -int64(f.Number(10_000, 250_000))},
	}
	now := time.Now()
	for i := range d.accounts {
		d.accounts[i].UpdatedAt = now.Format(time.RFC3339)
	}

	start := now.AddDate(0, -6, 0)
	d.transactions = make([]Transaction, 0, txnCount)
	for i := 0; i < txnCount; i++ {
		d.transactions = append(d.transactions, d.randomTransaction(start, now))
	}

	for _, cat := range demoCategories {
		d.budgets = append(d.budgets, Budget{
			Category:   cat,
			LimitCents: int64(f.Number(200, 1500)) * 100,
			Currency:   "USD",
		})
	}

	for i := 0; i < 40; i++ {
		id := f.UUID()
		offer := Offer{
			ID:     id,
			Title:  fmt.Sprintf("%s %s Card", f.Company(), f.RandomString([]string{"Platinum", "Cashback", "Voyager", "Everyday"})),
			Issuer: f.Company(),
			APR:    fmt.Sprintf("%.2f%%", f.Float64Range(14.9, 29.9)),
			Teaser: f.Sentence(8),
			Detail: "/api/v1/offers/" + id + "/detail",
		}
		d.offers = append(d.offers, offer)
		d.details[offer.Detail] = d.offerBody(offer)
	}
}

func (d *Demo) randomTransaction(start, end time.Time) Transaction {
	f := d.faker
	acct := d.accounts[f.Number(0, len(d.accounts)-1)]
	amount := -int64(f.Price(2, 400) * 100)
	if f.Number(0, 19) == 0 { // occasional inbound payment
		amount = int64(f.Price(500, 3000) * 100)
	}
	return Transaction{
		ID:          f.UUID(),
		AccountID:   acct.ID,
		Date:        f.DateRange(start, end).Format("2006-01-02"),
		Merchant:    f.Company(),
		Category:    f.RandomString(demoCategories),
		Description: f.Sentence(4),
		AmountCents: amount,
		Currency:    "USD",
		Pending:     f.Number(0, 9) == 0,
	}
}

// offerBody generates the markdown detail fetched lazily per offer.
func (d *Demo) offerBody(o Offer) string {
	f := d.faker
	return fmt.Sprintf("# %s\n\n*Issued by %s — APR %s*\n\n%s\n\n## Highlights\n\n- %s\n- %s\n- %s\n",
		o.Title, o.Issuer, o.APR,
		f.Paragraph(1, 3, 12, " "),
		f.Sentence(6), f.Sentence(6), f.Sentence(6))
}

func (d *Demo) Health() (*HealthResponse, error) {
	return &HealthResponse{Status: "ok", Version: "demo", UptimeSeconds: 0}, nil
}

func (d *Demo) Accounts() ([]Account, error) {
	return d.accounts, nil
}

func (d *Demo) Transactions(accountID string, limit int) ([]Transaction, error) {
	out := d.transactions
	if accountID != "" {
		filtered := make([]Transaction, 0, len(out))
		for _, t := range out {
			if t.AccountID == accountID {
				filtered = append(filtered, t)
			}
		}
		out = filtered
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *Demo) Budgets() ([]Budget, error) {
	return d.budgets, nil
}

func (d *Demo) Offers() ([]Offer, error) {
	return d.offers, nil
}

func (d *Demo) OfferDetail(path string) (string, error) {
	body, ok := d.details[path]
	if !ok {
		return "", fmt.Errorf("offer detail %q not found", path)
	}
	return body, nil
}

// NextTransaction fabricates a fresh transaction, standing in for the live
// event stream when running offline.
func (d *Demo) NextTransaction() Transaction {
	now := time.Now()
	return d.randomTransaction(now.AddDate(0, 0, -1), now)
}
