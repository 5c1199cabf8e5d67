package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/service"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/httputil"
)

func setupProductRouter(repo *mockProductRepository) *chi.Mux {
	handler := NewProductHandler(service.NewProductService(repo, testLogger()), testLogger(), "USD")
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Get("/{slug}", handler.GetProduct)
	})
	return r
}

func TestListProducts(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	repo.On("List", mock.Anything, 1, service.DefaultPerPage).Return([]domain.Product{
		{ID: "p1", Slug: "blue-shirt", Title: "Blue Shirt", Price: 1500},
		{ID: "p2", Slug: "red-mug", Title: "Red Mug", Price: 900},
	}, 2, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[ProductView]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "$15.00", resp.Data[0].Price.Formatted)
	assert.False(t, resp.HasNext)
}

func TestListProducts_Paging(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	repo.On("List", mock.Anything, 2, 1).Return([]domain.Product{
		{ID: "p2", Slug: "red-mug", Title: "Red Mug", Price: 900},
	}, 3, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&per_page=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[ProductView]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
}

func TestGetProduct(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	repo.On("GetBySlug", mock.Anything, "blue-shirt").Return(&domain.Product{
		ID: "p1", Slug: "blue-shirt", Title: "Blue Shirt", Price: 1500,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/blue-shirt", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blue-shirt")
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo)

	repo.On("GetBySlug", mock.Anything, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}
