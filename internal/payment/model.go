package payment

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Transaction links a checkout session to exactly one order. session_id is
// unique: the provider's session identifier is the reconciliation key.
type Transaction struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	SessionID string    `json:"session_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    Status    `json:"payment_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the provider-hosted checkout page handed back to the client.
type Session struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// Event is a status report for a session, from either the webhook or the
// polling path. Both feed the same reconciliation.
type Event struct {
	SessionID string
	Status    Status
}

// Outcome describes what a reconciliation attempt did.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)
