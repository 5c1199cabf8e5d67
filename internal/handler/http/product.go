package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/pkg/httputil"
)

// ProductHandler handles HTTP requests for the read-only catalog.
type ProductHandler struct {
	service  *service.ProductService
	logger   *slog.Logger
	currency string
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger, currency string) *ProductHandler {
	return &ProductHandler{
		service:  svc,
		logger:   logger,
		currency: currency,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = service.DefaultPerPage
	}

	products, total, err := h.service.ListProducts(r.Context(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = newProductView(&products[i], h.currency)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(views, total, page, perPage))
}

// GetProduct handles GET /api/v1/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newProductView(product, h.currency)})
}
