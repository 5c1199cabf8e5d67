package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront-go/storefront/pkg/httputil"
	"github.com/storefront-go/storefront/pkg/logger"
)

// CartCookieName is the cookie carrying the client's cart id. The id is an
// unguessable capability: whoever holds it owns the cart.
const CartCookieName = "cart_id"

// cartCookieMaxAge keeps an idle cart addressable for 30 days.
const cartCookieMaxAge = 30 * 24 * time.Hour

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const cartIDKey contextKey = "cart_id"

// CartToken is middleware that reads the cart id cookie, minting a fresh
// UUID cookie when absent, and stores the id in the request context. The
// cookie is HttpOnly so page scripts cannot read it.
func CartToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID string
		if c, err := r.Cookie(CartCookieName); err == nil && c.Value != "" {
			cartID = c.Value
		} else {
			cartID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     CartCookieName,
				Value:    cartID,
				Path:     "/",
				MaxAge:   int(cartCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		ctx = logger.WithCartID(ctx, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cartIDFromContext extracts the cart id set by CartToken.
func cartIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cartIDKey).(string)
	return id, ok && id != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
