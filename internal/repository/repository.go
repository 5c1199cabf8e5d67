package repository

import (
	"context"

	"github.com/storefront-go/storefront/internal/domain"
)

// CartRepository defines persistence operations for carts and their items.
// Increment and decrement are single-statement atomic counter updates at the
// storage layer, never read-modify-write in application code.
type CartRepository interface {
	// GetOrCreate returns the cart with the given id, creating an empty one
	// if absent. Race-safe under a uniqueness constraint: concurrent calls
	// with the same new id produce exactly one cart.
	GetOrCreate(ctx context.Context, id string) (*domain.Cart, error)

	// Get returns the cart with the given id, or ErrNotFound. Unlike
	// GetOrCreate, absence here is a failure (used by checkout).
	Get(ctx context.Context, id string) (*domain.Cart, error)

	// UpsertItem inserts the item or, when (id, cart_id) already exists,
	// adds the given quantity to the existing row. Descriptive fields are
	// first-write-wins and untouched on conflict.
	UpsertItem(ctx context.Context, item *domain.CartItem) error

	// IncrementItem atomically adds 1 to the item's quantity.
	// Returns ErrNotFound if no such row exists.
	IncrementItem(ctx context.Context, cartID, itemID string) error

	// DecrementItem atomically subtracts 1 from the item's quantity,
	// clamped at zero. Decrementing an already-zero item is a no-op, never
	// an error, and never deletes the row.
	// Returns ErrNotFound if no such row exists.
	DecrementItem(ctx context.Context, cartID, itemID string) error

	// RemoveItem deletes the (id, cart_id) row.
	// Returns ErrNotFound if no such row exists.
	RemoveItem(ctx context.Context, cartID, itemID string) error
}

// ProductRepository defines read-only access to the product catalog.
type ProductRepository interface {
	// List returns a page of products plus the total count.
	List(ctx context.Context, page, perPage int) ([]domain.Product, int, error)

	// GetBySlug returns the product with the given slug, or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// GetByIDs returns the products matching the given ids. Missing ids are
	// simply absent from the result; the caller decides whether that is an
	// error.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)

	// Count returns the number of products in the catalog.
	Count(ctx context.Context) (int, error)

	// Seed inserts the given products, skipping ids that already exist.
	Seed(ctx context.Context, products []domain.Product) error
}

// OrderRepository defines persistence operations for fulfillment records.
type OrderRepository interface {
	// Create inserts an order. Returns created=false when an order for the
	// same session id already exists (webhook retry).
	Create(ctx context.Context, order *domain.Order) (created bool, err error)

	// GetByID returns the order with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
