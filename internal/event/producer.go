package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront-go/storefront/internal/domain"
	pkgkafka "github.com/storefront-go/storefront/pkg/kafka"
	"github.com/storefront-go/storefront/pkg/logger"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated    = "storefront.cart.updated"
	TopicOrderFulfilled = "storefront.order.fulfilled"
)

// Aggregate types.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID         string         `json:"cart_id"`
	Items          []CartItemData `json:"items"`
	TotalItems     int            `json:"total_items"`
	SubtotalAmount int64          `json:"subtotal_amount"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderFulfilledData is the payload for an order.fulfilled event.
type OrderFulfilledData struct {
	OrderID     string `json:"order_id"`
	CartID      string `json:"cart_id"`
	SessionID   string `json:"session_id"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
}

// Publisher is the subset of the Kafka producer the event layer needs.
// Satisfied by pkgkafka.Producer; mocked in service tests.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	data := CartUpdatedData{
		CartID:         cart.ID,
		Items:          items,
		TotalItems:     cart.TotalItems(),
		SubtotalAmount: cart.SubtotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ID, AggregateTypeCart, Source, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cart.ID),
		slog.Int("total_items", cart.TotalItems()),
	)

	return nil
}

// PublishOrderFulfilled publishes an order.fulfilled event.
func (p *Producer) PublishOrderFulfilled(ctx context.Context, order *domain.Order) error {
	data := OrderFulfilledData{
		OrderID:     order.ID,
		CartID:      order.CartID,
		SessionID:   order.SessionID,
		AmountTotal: order.AmountTotal,
		Currency:    order.Currency,
	}

	event, err := pkgkafka.NewEvent(TopicOrderFulfilled, order.ID, AggregateTypeOrder, Source, data)
	if err != nil {
		return fmt.Errorf("create order.fulfilled event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicOrderFulfilled, event); err != nil {
		return fmt.Errorf("publish order.fulfilled event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.fulfilled event",
		slog.String("order_id", order.ID),
		slog.String("session_id", order.SessionID),
	)

	return nil
}
