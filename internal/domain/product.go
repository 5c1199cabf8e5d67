package domain

import "time"

// Product is a read-only catalog entry. The catalog is the trusted source of
// truth for checkout-time price validation and is never mutated by the cart
// system.
type Product struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	Src       string    `json:"src"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
