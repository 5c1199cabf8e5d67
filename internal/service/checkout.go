package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/event"
	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/internal/repository"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/idempotency"
)

// Checkout domain errors. The message strings are part of the external
// contract: clients branch on exact text to choose remediation.
var (
	ErrInvalidCart = apperrors.New("INVALID_CART", "invalid cart", http.StatusNotFound)
	ErrEmptyCart   = apperrors.New("EMPTY_CART", "cart is empty", http.StatusBadRequest)
)

// errItemNotInInventory builds the tamper/staleness rejection for one item id.
func errItemNotInInventory(itemID string) *apperrors.AppError {
	return apperrors.New("ITEM_NOT_IN_INVENTORY", "item not in inventory: "+itemID, http.StatusBadRequest)
}

// CheckoutConfig holds the checkout flow settings.
type CheckoutConfig struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}

// CheckoutService orchestrates checkout session creation and webhook
// fulfillment. Session state is owned entirely by the provider; the only
// local write is the order row on fulfillment.
type CheckoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	provider payment.Provider
	dedupe   idempotency.Store
	producer *event.Producer
	logger   *slog.Logger
	cfg      CheckoutConfig
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	provider payment.Provider,
	dedupe idempotency.Store,
	producer *event.Producer,
	logger *slog.Logger,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		products: products,
		orders:   orders,
		provider: provider,
		dedupe:   dedupe,
		producer: producer,
		logger:   logger,
		cfg:      cfg,
	}
}

// ValidateCartItems cross-checks cart items against the trusted inventory and
// produces provider line items. Unknown item ids are rejected outright, and
// the unit price always comes from the inventory record so a tampered or
// stale client-supplied price is never charged. Display metadata stays with
// the cart item for freshness.
func ValidateCartItems(inventory []domain.Product, items []domain.CartItem) ([]payment.LineItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	byID := make(map[string]*domain.Product, len(inventory))
	for i := range inventory {
		byID[inventory[i].ID] = &inventory[i]
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ID]
		if !ok {
			return nil, errItemNotInInventory(item.ID)
		}

		lineItems = append(lineItems, payment.LineItem{
			Name:        item.Name,
			Description: item.Description,
			Image:       item.Image,
			UnitAmount:  product.Price,
			Quantity:    item.Quantity,
		})
	}

	return lineItems, nil
}

// CreateCheckoutSession loads the cart, validates its items against the
// catalog, and creates a hosted session with the cart id embedded as
// metadata. No local storage side effects: the provider owns session state.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, cartID string) (*payment.Session, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCart
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ID
	}

	inventory, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	lineItems, err := ValidateCartItems(inventory, cart.Items)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateSession(ctx, &payment.CreateSessionInput{
		LineItems:  lineItems,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Metadata:   map[string]string{"cart_id": cartID},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("cart_id", cartID),
		slog.String("session_id", session.ID),
	)

	return session, nil
}

// GetCheckoutSession reads a session back from the provider (confirmation page).
func (s *CheckoutService) GetCheckoutSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	return session, nil
}

// GetOrder returns a fulfillment record by id.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// HandleEvent processes a verified provider webhook event. Completion events
// are fulfilled exactly once: duplicates are filtered first by the event-id
// dedupe store, then by the orders table's unique session constraint. All
// other event types are acknowledged and ignored.
func (s *CheckoutService) HandleEvent(ctx context.Context, evt *payment.Event) error {
	if evt.Type != payment.EventTypeSessionCompleted {
		s.logger.DebugContext(ctx, "ignoring webhook event",
			slog.String("event_id", evt.ID),
			slog.String("event_type", evt.Type),
		)
		return nil
	}

	if evt.ID != "" {
		seen, err := s.dedupe.Contains(ctx, evt.ID)
		if err != nil {
			// On store failure, fall through to the orders-table constraint
			// rather than dropping the event.
			s.logger.WarnContext(ctx, "dedupe store lookup failed, processing anyway",
				slog.String("event_id", evt.ID),
				slog.String("error", err.Error()),
			)
		} else if seen {
			s.logger.DebugContext(ctx, "skipping duplicate webhook event",
				slog.String("event_id", evt.ID),
			)
			return nil
		}
	}

	session := evt.Data.Object

	order := &domain.Order{
		ID:          uuid.New().String(),
		CartID:      session.Metadata["cart_id"],
		SessionID:   session.ID,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
		Status:      domain.OrderStatusFulfilled,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return fmt.Errorf("persist order: %w", err)
	}

	if created {
		if err := s.producer.PublishOrderFulfilled(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.fulfilled event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}

		s.logger.InfoContext(ctx, "order fulfilled",
			slog.String("order_id", order.ID),
			slog.String("cart_id", order.CartID),
			slog.String("session_id", order.SessionID),
		)
	} else {
		s.logger.InfoContext(ctx, "order already fulfilled for session",
			slog.String("session_id", order.SessionID),
		)
	}

	if evt.ID != "" {
		if err := s.dedupe.Add(ctx, evt.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to record event id in dedupe store",
				slog.String("event_id", evt.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
