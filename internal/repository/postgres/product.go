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

// ProductRepository implements repository.ProductRepository using PostgreSQL.
// The catalog is read-only at runtime apart from the one-time seed.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns a page of products ordered by creation time plus the total count.
func (r *ProductRepository) List(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	offset := (page - 1) * perPage

	ctx, end := database.TraceQuery(ctx, "ListProducts", "SELECT ... FROM products")

	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, title, price, src, body, created_at,
			   count(*) OVER() AS total_count
		FROM products
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`, perPage, offset)
	if err != nil {
		end(err)
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Price, &p.Src, &p.Body, &p.CreatedAt, &totalCount); err != nil {
			end(err)
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}
	end(nil)

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// GetBySlug returns the product with the given slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, end := database.TraceQuery(ctx, "GetProductBySlug", "SELECT ... FROM products WHERE slug")

	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, slug, title, price, src, body, created_at
		FROM products
		WHERE slug = $1`, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Price, &p.Src, &p.Body, &p.CreatedAt)
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}

	return &p, nil
}

// GetByIDs returns the products matching the given ids. Ids with no catalog
// entry are absent from the result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, end := database.TraceQuery(ctx, "GetProductsByIDs", "SELECT ... FROM products WHERE id = ANY")

	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, title, price, src, body, created_at
		FROM products
		WHERE id = ANY($1)`, ids)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Price, &p.Src, &p.Body, &p.CreatedAt); err != nil {
			end(err)
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		end(err)
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	end(nil)

	return products, nil
}

// Count returns the number of products in the catalog.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// Seed inserts the given products, skipping ids that already exist.
func (r *ProductRepository) Seed(ctx context.Context, products []domain.Product) error {
	for i := range products {
		p := &products[i]
		_, err := r.pool.Exec(ctx, `
			INSERT INTO products (id, slug, title, price, src, body)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Slug, p.Title, p.Price, p.Src, p.Body)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}
