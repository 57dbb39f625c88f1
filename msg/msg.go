// Package msg defines tea.Msg types and display mirrors shared across the
// dashboard. It has no upstream imports (client, model) to avoid import
// cycles.
package msg

// -- Display mirrors (mirror client types so this package stays cycle-free) --

// Transaction mirrors client.Transaction for display models.
type Transaction struct {
	ID          string
	AccountID   string
	Date        string // YYYY-MM-DD
	Merchant    string
	Category    string
	Description string
	AmountCents int64 // negative for spend
	Currency    string
	Pending     bool
}

// -- Lifecycle --

// HealthResult from the initial health check.
type HealthResult struct {
	Status        string
	Version       string
	UptimeSeconds int64
	Err           error
}

// -- UI events --

// TickMsg for periodic timer updates.
type TickMsg struct{}

// SearchCommitted when the debounced transaction search settles.
type SearchCommitted struct {
	Query string
}
