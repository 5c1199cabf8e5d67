package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/pkg/httputil"
)

// maxWebhookBody bounds webhook payload reads at 1 MiB.
const maxWebhookBody = 1 << 20

// WebhookHandler receives payment provider webhooks. Signature verification
// happens against the raw body before any JSON parsing.
type WebhookHandler struct {
	service *service.CheckoutService
	secret  string
	logger  *slog.Logger
}

// NewWebhookHandler creates a new webhook HTTP handler.
func NewWebhookHandler(svc *service.CheckoutService, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: svc,
		secret:  secret,
		logger:  logger,
	}
}

// HandleWebhook handles POST /api/v1/webhooks/payment
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to read request body"},
		})
		return
	}

	event, err := payment.ConstructEvent(body, r.Header.Get(payment.SignatureHeader), h.secret, payment.DefaultTolerance)
	if err != nil {
		if errors.Is(err, payment.ErrSignatureInvalid) {
			h.logger.WarnContext(r.Context(), "webhook signature verification failed",
				slog.String("remote_addr", r.RemoteAddr),
			)
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.HandleEvent(r.Context(), event); err != nil {
		// Non-2xx tells the provider to retry the delivery.
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"received": "true"}})
}
