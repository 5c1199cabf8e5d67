package config

import (
	"fmt"

	pkgconfig "github.com/storefront-go/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`

	// Redis (webhook event deduplication)
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Payment provider
	PaymentProvider   string `env:"PAYMENT_PROVIDER" envDefault:"mock"` // "mock" or "hosted"
	PaymentBaseURL    string `env:"PAYMENT_BASE_URL" envDefault:"https://api.payment.example.com"`
	PaymentAPIKey     string `env:"PAYMENT_API_KEY" envDefault:""`
	WebhookSecret     string `env:"WEBHOOK_SECRET" envDefault:"whsec_dev_secret"`
	CheckoutSuccess   string `env:"CHECKOUT_SUCCESS_URL" envDefault:"http://localhost:3000/thankyou?session_id={CHECKOUT_SESSION_ID}"`
	CheckoutCancel    string `env:"CHECKOUT_CANCEL_URL" envDefault:"http://localhost:3000/cart?cancelled=true"`
	Currency          string `env:"CURRENCY" envDefault:"USD"`

	// Per-IP rate limit for checkout session creation
	CheckoutRateRPS   int `env:"CHECKOUT_RATE_RPS" envDefault:"5"`
	CheckoutRateBurst int `env:"CHECKOUT_RATE_BURST" envDefault:"10"`

	// Catalog seeding
	SeedCatalog bool `env:"SEED_CATALOG" envDefault:"true"`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PaymentProvider != "mock" && c.PaymentProvider != "hosted" {
		return fmt.Errorf("invalid payment provider: %q (must be \"mock\" or \"hosted\")", c.PaymentProvider)
	}
	if c.PaymentProvider == "hosted" && c.PaymentAPIKey == "" {
		return fmt.Errorf("PAYMENT_API_KEY is required when PAYMENT_PROVIDER=hosted")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET must not be empty")
	}
	return nil
}
