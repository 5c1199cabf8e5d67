package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-go/storefront/internal/payment"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

func TestProvider_CreateAndRetrieveSession(t *testing.T) {
	p := NewProvider()

	session, err := p.CreateSession(context.Background(), &payment.CreateSessionInput{
		LineItems: []payment.LineItem{
			{Name: "Shirt", UnitAmount: 1500, Quantity: 2},
			{Name: "Mug", UnitAmount: 900, Quantity: 1},
		},
		Currency: "USD",
		Metadata: map[string]string{"cart_id": "cart-1"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.ID, "cs_mock_"))
	assert.Equal(t, payment.SessionStatusPending, session.Status)
	assert.Equal(t, int64(3900), session.AmountTotal)
	assert.Contains(t, session.URL, session.ID)

	got, err := p.RetrieveSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "cart-1", got.Metadata["cart_id"])
}

func TestProvider_CompleteSession(t *testing.T) {
	p := NewProvider()

	session, err := p.CreateSession(context.Background(), &payment.CreateSessionInput{
		LineItems: []payment.LineItem{{Name: "Shirt", UnitAmount: 1500, Quantity: 1}},
		Currency:  "USD",
	})
	require.NoError(t, err)

	assert.True(t, p.CompleteSession(session.ID))
	assert.False(t, p.CompleteSession("cs_mock_unknown"))

	got, err := p.RetrieveSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.SessionStatusComplete, got.Status)
}

func TestProvider_RetrieveSession_NotFound(t *testing.T) {
	p := NewProvider()

	_, err := p.RetrieveSession(context.Background(), "cs_mock_unknown")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
