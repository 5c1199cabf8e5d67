package http

import (
	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/pkg/money"
)

// CartItemView is the rendered form of one cart line.
type CartItemView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Quantity    int         `json:"quantity"`
	UnitTotal   money.Money `json:"unit_total"`
	LineTotal   money.Money `json:"line_total"`
}

// CartView is the rendered cart with recomputed aggregates. Totals are always
// derived from the item rows on read, never stored.
type CartView struct {
	ID         string         `json:"id"`
	TotalItems int            `json:"total_items"`
	Items      []CartItemView `json:"items"`
	SubTotal   money.Money    `json:"sub_total"`
}

func newCartView(cart *domain.Cart, currency string) CartView {
	items := make([]CartItemView, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemView{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Image:       item.Image,
			Quantity:    item.Quantity,
			UnitTotal:   money.New(item.Price, currency),
			LineTotal:   money.New(item.Price*int64(item.Quantity), currency),
		}
	}

	return CartView{
		ID:         cart.ID,
		TotalItems: cart.TotalItems(),
		Items:      items,
		SubTotal:   money.New(cart.SubtotalAmount(), currency),
	}
}

// ProductView is the rendered form of a catalog entry.
type ProductView struct {
	ID    string      `json:"id"`
	Slug  string      `json:"slug"`
	Title string      `json:"title"`
	Price money.Money `json:"price"`
	Src   string      `json:"src,omitempty"`
	Body  string      `json:"body,omitempty"`
}

func newProductView(p *domain.Product, currency string) ProductView {
	return ProductView{
		ID:    p.ID,
		Slug:  p.Slug,
		Title: p.Title,
		Price: money.New(p.Price, currency),
		Src:   p.Src,
		Body:  p.Body,
	}
}

// SessionView is the rendered checkout session. The URL is where the client
// redirects the shopper to pay.
type SessionView struct {
	ID          string      `json:"id"`
	URL         string      `json:"url,omitempty"`
	Status      string      `json:"status"`
	AmountTotal money.Money `json:"amount_total"`
}

func newSessionView(s *payment.Session) SessionView {
	return SessionView{
		ID:          s.ID,
		URL:         s.URL,
		Status:      s.Status,
		AmountTotal: money.New(s.AmountTotal, s.Currency),
	}
}

// OrderView is the rendered fulfillment record.
type OrderView struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"session_id"`
	Status      string      `json:"status"`
	AmountTotal money.Money `json:"amount_total"`
}

func newOrderView(o *domain.Order) OrderView {
	return OrderView{
		ID:          o.ID,
		SessionID:   o.SessionID,
		Status:      o.Status,
		AmountTotal: money.New(o.AmountTotal, o.Currency),
	}
}
