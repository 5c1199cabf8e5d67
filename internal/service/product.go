package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/repository"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/slug"
)

// Catalog pagination bounds.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ProductService implements read-only catalog operations. The catalog is the
// trusted price source for checkout validation.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns a page of the catalog plus the total count.
// Out-of-range paging inputs are clamped, not rejected.
func (s *ProductService) ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	products, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// GetProductBySlug returns a single catalog entry.
func (s *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	if productSlug == "" {
		return nil, apperrors.InvalidInput("slug is required")
	}

	product, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// SeedIfEmpty loads the given products into an empty catalog. Missing slugs
// are derived from the title. A non-empty catalog is left untouched.
func (s *ProductService) SeedIfEmpty(ctx context.Context, products []domain.Product) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range products {
		if products[i].Slug == "" {
			products[i].Slug = slug.Generate(products[i].Title)
		}
	}

	if err := s.repo.Seed(ctx, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog seeded",
		slog.Int("products", len(products)),
	)

	return nil
}
