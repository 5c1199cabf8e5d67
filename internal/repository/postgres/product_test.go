package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/pkg/database"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

func setupProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewProductRepository(mock)
	return repo, mock
}

var productColumns = []string{"id", "slug", "title", "price", "src", "body", "created_at"}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:        "p1",
		Slug:      "mesh-back-cap",
		Title:     "Mesh Back Cap",
		Price:     1500,
		Src:       "https://img.example.com/cap.png",
		Body:      "<p>A cap.</p>",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProductRepository_List(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	cols := append([]string{}, productColumns...)
	cols = append(cols, "total_count")

	mock.ExpectQuery("SELECT .+ FROM products ORDER BY").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(p.ID, p.Slug, p.Title, p.Price, p.Src, p.Body, p.CreatedAt, 1))

	products, total, err := repo.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "mesh-back-cap", products[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Empty(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	cols := append([]string{}, productColumns...)
	cols = append(cols, "total_count")

	mock.ExpectQuery("SELECT .+ FROM products ORDER BY").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(cols))

	products, total, err := repo.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE slug").
		WithArgs(p.Slug).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(p.ID, p.Slug, p.Title, p.Price, p.Src, p.Body, p.CreatedAt))

	result, err := repo.GetBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_NotFound(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM products WHERE slug").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetBySlug(context.Background(), "missing")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByIDs(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE id = ANY").
		WithArgs([]string{"p1", "p9"}).
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow(p.ID, p.Slug, p.Title, p.Price, p.Src, p.Body, p.CreatedAt))

	products, err := repo.GetByIDs(context.Background(), []string{"p1", "p9"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByIDs_EmptyInput(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	products, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Seed(t *testing.T) {
	repo, mock := setupProductRepo(t)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Slug, p.Title, p.Price, p.Src, p.Body).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Seed(context.Background(), []domain.Product{p})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
