package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-go/storefront/internal/domain"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/logger"
)

func newProductService(repo *mockProductRepository) *ProductService {
	return NewProductService(repo, logger.New("test", "error"))
}

func TestProductService_ListProducts(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("List", mock.Anything, 2, 10).Return([]domain.Product{
		{ID: "p1", Slug: "shirt", Title: "Shirt", Price: 1500},
	}, 11, nil)

	products, total, err := svc.ListProducts(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 11, total)
	repo.AssertExpectations(t)
}

func TestProductService_ListProducts_ClampsPaging(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("List", mock.Anything, 1, DefaultPerPage).Return([]domain.Product{}, 0, nil).Once()
	repo.On("List", mock.Anything, 1, MaxPerPage).Return([]domain.Product{}, 0, nil).Once()

	_, _, err := svc.ListProducts(context.Background(), 0, -5)
	require.NoError(t, err)
	_, _, err = svc.ListProducts(context.Background(), 1, MaxPerPage+50)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProductService_GetProductBySlug(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("GetBySlug", mock.Anything, "shirt").Return(&domain.Product{
		ID: "p1", Slug: "shirt", Title: "Shirt",
	}, nil)

	product, err := svc.GetProductBySlug(context.Background(), "shirt")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
}

func TestProductService_GetProductBySlug_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("GetBySlug", mock.Anything, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))

	_, err := svc.GetProductBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_SeedIfEmpty(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Seed", mock.Anything, mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1 && products[0].Slug == "blue-shirt"
	})).Return(nil)

	err := svc.SeedIfEmpty(context.Background(), []domain.Product{
		{ID: "p1", Title: "Blue Shirt", Price: 1500},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProductService_SeedIfEmpty_SkipsNonEmptyCatalog(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newProductService(repo)

	repo.On("Count", mock.Anything).Return(3, nil)

	err := svc.SeedIfEmpty(context.Background(), []domain.Product{{ID: "p1", Title: "Shirt"}})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Seed", mock.Anything, mock.Anything)
}
