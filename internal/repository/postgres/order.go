package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/pkg/database"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts an order row. The unique constraint on session_id makes the
// insert idempotent under webhook retries: a duplicate completion event
// reports created=false instead of writing a second order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (bool, error) {
	ctx, end := database.TraceQuery(ctx, "CreateOrder", "INSERT INTO orders ... ON CONFLICT DO NOTHING")

	ct, err := r.pool.Exec(ctx, `
		INSERT INTO orders (id, cart_id, session_id, amount_total, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO NOTHING`,
		order.ID,
		order.CartID,
		order.SessionID,
		order.AmountTotal,
		order.Currency,
		order.Status,
	)
	end(err)
	if err != nil {
		return false, fmt.Errorf("create order: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// GetByID returns the order with the given id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, end := database.TraceQuery(ctx, "GetOrderByID", "SELECT ... FROM orders")

	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, cart_id, session_id, amount_total, currency, status, created_at
		FROM orders
		WHERE id = $1`, id).Scan(
		&o.ID,
		&o.CartID,
		&o.SessionID,
		&o.AmountTotal,
		&o.Currency,
		&o.Status,
		&o.CreatedAt,
	)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	return &o, nil
}
