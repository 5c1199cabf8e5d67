package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/pkg/httputil"
	"github.com/storefront-go/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service  *service.CartService
	logger   *slog.Logger
	currency string
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger, currency string) *CartHandler {
	return &CartHandler{
		service:  svc,
		logger:   logger,
		currency: currency,
	}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "cart id is required"},
		})
		return
	}

	cart, err := h.service.GetCart(r.Context(), cartID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, h.currency)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "cart id is required"},
		})
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), cartID, service.AddItemInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, h.currency)})
}

// IncreaseItem handles POST /api/v1/cart/items/{itemId}/increase
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.service.IncreaseItem)
}

// DecreaseItem handles POST /api/v1/cart/items/{itemId}/decrease
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.service.DecreaseItem)
}

// RemoveItem handles DELETE /api/v1/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.service.RemoveItem)
}

// mutateItem factors the shared shape of the single-item mutations: resolve
// the cart and item ids, run the operation, render the recomputed cart.
func (h *CartHandler) mutateItem(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, cartID, itemID string) (*domain.Cart, error),
) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "cart id is required"},
		})
		return
	}

	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "itemId is required"},
		})
		return
	}

	cart, err := op(r.Context(), cartID, itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart, h.currency)})
}
