// Package app wires together all dependencies and runs the storefront service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/storefront-go/storefront/internal/config"
	"github.com/storefront-go/storefront/internal/event"
	handler "github.com/storefront-go/storefront/internal/handler/http"
	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/internal/payment/hosted"
	"github.com/storefront-go/storefront/internal/payment/mock"
	"github.com/storefront-go/storefront/internal/repository/postgres"
	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/migrations"
	"github.com/storefront-go/storefront/pkg/database"
	"github.com/storefront-go/storefront/pkg/health"
	"github.com/storefront-go/storefront/pkg/httpclient"
	"github.com/storefront-go/storefront/pkg/idempotency"
	pkgkafka "github.com/storefront-go/storefront/pkg/kafka"
)

// webhookDedupeTTL keeps processed webhook event ids around long enough to
// outlive any reasonable provider retry schedule.
const webhookDedupeTTL = 24 * time.Hour

// App holds the wired application and its closable resources.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// PostgreSQL pool and schema.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Redis for webhook event deduplication.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Payment provider.
	provider, err := newPaymentProvider(cfg, logger)
	if err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, err
	}
	logger.Info("payment provider initialized", slog.String("provider", provider.Name()))

	// Build the dependency graph.
	cartRepo := postgres.NewCartRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	eventProducer := event.NewProducer(producer, logger)
	dedupe := idempotency.NewRedisStore(rdb, "storefront:webhook", webhookDedupeTTL)

	cartService := service.NewCartService(cartRepo, eventProducer, logger)
	productService := service.NewProductService(productRepo, logger)
	checkoutService := service.NewCheckoutService(
		cartRepo, productRepo, orderRepo, provider, dedupe, eventProducer, logger,
		service.CheckoutConfig{
			SuccessURL: cfg.CheckoutSuccess,
			CancelURL:  cfg.CheckoutCancel,
			Currency:   cfg.Currency,
		},
	)

	if cfg.SeedCatalog {
		if err := productService.SeedIfEmpty(ctx, defaultCatalog); err != nil {
			pool.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(cartService, productService, checkoutService, healthHandler, logger,
		handler.RouterConfig{
			Currency:          cfg.Currency,
			WebhookSecret:     cfg.WebhookSecret,
			CheckoutRateRPS:   cfg.CheckoutRateRPS,
			CheckoutRateBurst: cfg.CheckoutRateBurst,
			AllowedOrigins:    cfg.CORSAllowedOrigins,
		})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// newPaymentProvider selects the checkout provider implementation.
func newPaymentProvider(cfg *config.Config, logger *slog.Logger) (payment.Provider, error) {
	switch cfg.PaymentProvider {
	case "hosted":
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("payment-provider"),
			logger,
		)
		return hosted.NewProvider(hosted.Config{
			BaseURL: cfg.PaymentBaseURL,
			APIKey:  cfg.PaymentAPIKey,
		}, client), nil
	case "mock":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %q", cfg.PaymentProvider)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
