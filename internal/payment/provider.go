package payment

import "context"

// Session statuses as reported by the provider.
const (
	SessionStatusPending  = "pending"
	SessionStatusComplete = "complete"
)

// LineItem is one validated, priced line of a checkout session. UnitAmount
// always comes from the trusted catalog, never from the client.
type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int    `json:"quantity"`
}

// CreateSessionInput holds the parameters for creating a hosted checkout session.
type CreateSessionInput struct {
	LineItems  []LineItem        `json:"line_items"`
	Currency   string            `json:"currency"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Session is the provider-owned checkout flow instance. The storefront never
// mutates it after creation; it reads it back and reacts to the completion
// webhook.
type Session struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Status      string            `json:"status"`
	AmountTotal int64             `json:"amount_total"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Provider defines the interface for hosted checkout provider integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "hosted").
	Name() string

	// CreateSession creates a hosted checkout session and returns its id and
	// redirect URL.
	CreateSession(ctx context.Context, input *CreateSessionInput) (*Session, error)

	// RetrieveSession reads a session back by id (confirmation page).
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
