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

// CartRepository implements repository.CartRepository using PostgreSQL.
// All quantity mutations are single SQL statements so concurrent callers
// cannot lose updates.
type CartRepository struct {
	pool database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool database.DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

// GetOrCreate returns the cart with the given id, creating an empty one if
// absent. The insert is ON CONFLICT DO NOTHING so concurrent first touches of
// the same id race safely under the primary-key constraint instead of
// check-then-act.
func (r *CartRepository) GetOrCreate(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, end := database.TraceQuery(ctx, "GetOrCreateCart", "INSERT INTO carts ... ON CONFLICT DO NOTHING")

	_, err := r.pool.Exec(ctx, `
		INSERT INTO carts (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("create cart: %w", err)
	}

	cart, err := r.get(ctx, id)
	end(err)
	return cart, err
}

// Get returns the cart with the given id, or ErrNotFound when absent.
func (r *CartRepository) Get(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, end := database.TraceQuery(ctx, "GetCart", "SELECT ... FROM carts")
	cart, err := r.get(ctx, id)
	end(err)
	return cart, err
}

func (r *CartRepository) get(ctx context.Context, id string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
		SELECT id, created_at, updated_at
		FROM carts
		WHERE id = $1`, id).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

// listItems loads a cart's items ordered by creation time.
func (r *CartRepository) listItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cart_id, name, description, image, price, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.Name,
			&item.Description,
			&item.Image,
			&item.Price,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	return items, nil
}

// UpsertItem inserts the item or merges quantity into an existing
// (id, cart_id) row. Name, description, image, and price are first-write-wins:
// the conflict branch only adds quantity.
func (r *CartRepository) UpsertItem(ctx context.Context, item *domain.CartItem) error {
	ctx, end := database.TraceQuery(ctx, "UpsertCartItem", "INSERT INTO cart_items ... ON CONFLICT DO UPDATE")

	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, name, description, image, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id, cart_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity`,
		item.ID,
		item.CartID,
		item.Name,
		item.Description,
		item.Image,
		item.Price,
		item.Quantity,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

// IncrementItem atomically adds 1 to the item's quantity in a single UPDATE,
// so two concurrent increments against the same base quantity are both
// reflected.
func (r *CartRepository) IncrementItem(ctx context.Context, cartID, itemID string) error {
	ctx, end := database.TraceQuery(ctx, "IncrementCartItem", "UPDATE cart_items SET quantity = quantity + 1")

	ct, err := r.pool.Exec(ctx, `
		UPDATE cart_items
		SET quantity = quantity + 1
		WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	end(err)
	if err != nil {
		return fmt.Errorf("increment cart item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", itemID)
	}

	return nil
}

// DecrementItem atomically subtracts 1 from the item's quantity, clamped at
// zero inside the statement. Repeated decrements past the floor are no-ops.
func (r *CartRepository) DecrementItem(ctx context.Context, cartID, itemID string) error {
	ctx, end := database.TraceQuery(ctx, "DecrementCartItem", "UPDATE cart_items SET quantity = GREATEST(quantity - 1, 0)")

	ct, err := r.pool.Exec(ctx, `
		UPDATE cart_items
		SET quantity = GREATEST(quantity - 1, 0)
		WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	end(err)
	if err != nil {
		return fmt.Errorf("decrement cart item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", itemID)
	}

	return nil
}

// RemoveItem deletes the (id, cart_id) row outright.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	ctx, end := database.TraceQuery(ctx, "RemoveCartItem", "DELETE FROM cart_items")

	ct, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	end(err)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart item", itemID)
	}

	return nil
}
