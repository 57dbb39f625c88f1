package client

// HealthResponse from GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Account from GET /api/v1/accounts. Monetary amounts travel as integer
// minor units (cents) with an ISO 4217 currency code.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"` // checking | savings | credit
	Currency     string `json:"currency"`
	BalanceCents int64  `json:"balance_cents"`
	UpdatedAt    string `json:"updated_at"`
}

// Transaction from GET /api/v1/transactions.
type Transaction struct {
	ID          string `json:"id"`
	AccountID   string `json:"account_id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Merchant    string `json:"merchant"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	AmountCents int64  `json:"amount_cents"` // negative for spend
	Currency    string `json:"currency"`
	Pending     bool   `json:"pending,omitempty"`
}

// Budget from GET /api/v1/budgets: a monthly spending limit per category.
type Budget struct {
	Category   string `json:"category"`
	LimitCents int64  `json:"limit_cents"`
	Currency   string `json:"currency"`
}

// Offer from GET /api/v1/offers. Detail is a reference to the offer's
// markdown body, fetched lazily when the offer nears the viewport.
type Offer struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	APR    string `json:"apr"`
	Teaser string `json:"teaser"`
	Detail string `json:"detail"` // path under the API base
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
