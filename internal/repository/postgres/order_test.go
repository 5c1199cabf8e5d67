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

func setupOrderRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

var orderColumns = []string{"id", "cart_id", "session_id", "amount_total", "currency", "status", "created_at"}

func sampleOrder() domain.Order {
	return domain.Order{
		ID:          "order-1",
		CartID:      "c1",
		SessionID:   "cs_123",
		AmountTotal: 2000,
		Currency:    "USD",
		Status:      domain.OrderStatusFulfilled,
		CreatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrderRepository_Create(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	defer mock.Close()

	o := sampleOrder()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.CartID, o.SessionID, o.AmountTotal, o.Currency, o.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := repo.Create(context.Background(), &o)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DuplicateSession(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	defer mock.Close()

	o := sampleOrder()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.CartID, o.SessionID, o.AmountTotal, o.Currency, o.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := repo.Create(context.Background(), &o)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	defer mock.Close()

	o := sampleOrder()
	mock.ExpectQuery("SELECT .+ FROM orders").
		WithArgs(o.ID).
		WillReturnRows(pgxmock.NewRows(orderColumns).
			AddRow(o.ID, o.CartID, o.SessionID, o.AmountTotal, o.Currency, o.Status, o.CreatedAt))

	result, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.SessionID, result.SessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM orders").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
