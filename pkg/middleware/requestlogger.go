package middleware

import (
	"log/slog"
	"net/http"

	"github.com/storefront-go/storefront/pkg/logger"
)

// cartCookieName is the cookie carrying the opaque cart token.
// Kept in sync with the handler package's cookie middleware.
const cartCookieName = "cart_id"

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, cart_id, trace_id, and span_id, then stores it in
// context via logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// This middleware should be mounted AFTER RequestLogging (which sets
// correlation_id).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// The cart token cookie is the only client identity there is.
			if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
				ctx = logger.WithCartID(ctx, c.Value)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
