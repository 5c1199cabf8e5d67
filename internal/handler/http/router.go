package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/pkg/health"
	"github.com/storefront-go/storefront/pkg/middleware"
)

// RouterConfig carries the handler-level settings the router needs.
type RouterConfig struct {
	Currency          string
	WebhookSecret     string
	CheckoutRateRPS   int
	CheckoutRateBurst int
	AllowedOrigins    []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	productService *service.ProductService,
	checkoutService *service.CheckoutService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.AllowedOrigins
		// The cart cookie must survive cross-origin requests from the web client.
		corsCfg.AllowCredentials = true
	}
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cartService, logger, cfg.Currency)
	productHandler := NewProductHandler(productService, logger, cfg.Currency)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	webhookHandler := NewWebhookHandler(checkoutService, cfg.WebhookSecret, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(CartToken)

			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{itemId}/increase", cartHandler.IncreaseItem)
			r.Post("/items/{itemId}/decrease", cartHandler.DecreaseItem)
			r.Delete("/items/{itemId}", cartHandler.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{slug}", productHandler.GetProduct)
		})

		r.Route("/checkout/sessions", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(CartToken)

			r.With(middleware.RateLimit(cfg.CheckoutRateRPS, cfg.CheckoutRateBurst, logger)).
				Post("/", checkoutHandler.CreateSession)
			r.Get("/{sessionId}", checkoutHandler.GetSession)
		})

		r.Get("/orders/{orderId}", checkoutHandler.GetOrder)

		// Raw-body route: no JSON enforcement ahead of signature verification.
		r.Post("/webhooks/payment", webhookHandler.HandleWebhook)
	})

	return r
}
