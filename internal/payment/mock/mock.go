package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/storefront-go/storefront/internal/payment"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

// Provider is an in-memory checkout provider that always succeeds.
// It is intended for development and testing purposes.
type Provider struct {
	mu       sync.RWMutex
	sessions map[string]*payment.Session
}

// NewProvider creates a new mock checkout provider.
func NewProvider() *Provider {
	return &Provider{
		sessions: make(map[string]*payment.Session),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// CreateSession creates a pending in-memory session with a fake redirect URL.
func (p *Provider) CreateSession(_ context.Context, input *payment.CreateSessionInput) (*payment.Session, error) {
	var total int64
	for _, li := range input.LineItems {
		total += li.UnitAmount * int64(li.Quantity)
	}

	session := &payment.Session{
		ID:          "cs_mock_" + uuid.New().String(),
		Status:      payment.SessionStatusPending,
		AmountTotal: total,
		Currency:    input.Currency,
		Metadata:    input.Metadata,
	}
	session.URL = "https://checkout.example.com/pay/" + session.ID

	p.mu.Lock()
	p.sessions[session.ID] = session
	p.mu.Unlock()

	return session, nil
}

// RetrieveSession returns a previously created session.
func (p *Provider) RetrieveSession(_ context.Context, id string) (*payment.Session, error) {
	p.mu.RLock()
	session, ok := p.sessions[id]
	p.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("checkout session", id)
	}

	cpy := *session
	return &cpy, nil
}

// CompleteSession marks a session complete. Test helper for driving the
// fulfillment flow without a real provider.
func (p *Provider) CompleteSession(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[id]
	if !ok {
		return false
	}
	session.Status = payment.SessionStatusComplete
	return true
}
