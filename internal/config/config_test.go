package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "mock", cfg.PaymentProvider)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("PAYMENT_PROVIDER", "hosted")
	t.Setenv("PAYMENT_API_KEY", "sk_test_123")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, "hosted", cfg.PaymentProvider)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "stripe2")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_HostedRequiresAPIKey(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "hosted")
	t.Setenv("PAYMENT_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
