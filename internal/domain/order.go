package domain

import "time"

// Order statuses.
const (
	OrderStatusFulfilled = "fulfilled"
)

// Order is the fulfillment record written when the payment provider confirms
// a completed checkout session. SessionID is unique so provider retries of
// the same completion event cannot produce duplicate orders.
type Order struct {
	ID          string    `json:"id"`
	CartID      string    `json:"cart_id"`
	SessionID   string    `json:"session_id"`
	AmountTotal int64     `json:"amount_total"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
