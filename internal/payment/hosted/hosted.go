// Package hosted implements the checkout provider against a real HTTP API.
// Calls go through the circuit-breaker HTTP client so a degraded provider
// fails fast instead of tying up request handlers.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/pkg/httpclient"
)

const providerServiceName = "payment-provider"

// Config holds the hosted provider's connection settings.
type Config struct {
	BaseURL string
	APIKey  string
}

// Provider talks to the hosted checkout API over HTTP.
type Provider struct {
	cfg    Config
	client *httpclient.CircuitBreakerClient
}

// NewProvider creates a hosted checkout provider using the given
// circuit-breaker HTTP client.
func NewProvider(cfg Config, client *httpclient.CircuitBreakerClient) *Provider {
	return &Provider{
		cfg:    cfg,
		client: client,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "hosted"
}

// CreateSession creates a hosted checkout session.
func (p *Provider) CreateSession(ctx context.Context, input *payment.CreateSessionInput) (*payment.Session, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal session input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return decodeSession(resp)
}

// RetrieveSession reads a session back by id.
func (p *Provider) RetrieveSession(ctx context.Context, id string) (*payment.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/v1/checkout/sessions/"+url.PathEscape(id), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create retrieve request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	return decodeSession(resp)
}

func decodeSession(resp *http.Response) (*payment.Session, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, providerServiceName)
	}
	defer func() { _ = resp.Body.Close() }()

	var session payment.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	return &session, nil
}
