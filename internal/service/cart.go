package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/event"
	"github.com/storefront-go/storefront/internal/repository"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerAdd is the maximum quantity allowed in a single addItem call.
	MaxQuantityPerAdd = 100
	// MaxPriceCents is the maximum price in minor units (100,000.00) allowed per item.
	MaxPriceCents = 100_000_00
)

// AddItemInput holds the parameters for adding an item to a cart. Quantity
// defaults to 1 when omitted.
type AddItemInput struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// CartService implements the business logic for cart operations. Every
// mutation returns the recomputed parent cart so the caller can re-render
// totals.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart returns the cart with the given id, creating it if absent.
// Absence is never an error here; it is the creation trigger.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.repo.GetOrCreate(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	return cart, nil
}

// AddItem upserts an item into the cart. A repeated add for the same item id
// merges by adding quantities; price and descriptive fields keep their
// first-write values.
func (s *CartService) AddItem(ctx context.Context, cartID string, input AddItemInput) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if input.ID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("item name is required")
	}
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be greater than 0")
	}
	if input.Price > MaxPriceCents {
		return nil, apperrors.InvalidInput(fmt.Sprintf("price must not exceed %d cents", MaxPriceCents))
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity > MaxQuantityPerAdd {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerAdd))
	}

	if _, err := s.repo.GetOrCreate(ctx, cartID); err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	item := domain.CartItem{
		ID:          input.ID,
		CartID:      cartID,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		Quantity:    input.Quantity,
	}

	if err := s.repo.UpsertItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	cart, err := s.reloadAndPublish(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cartID),
		slog.String("item_id", input.ID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// IncreaseItem increments the item's quantity by exactly 1.
func (s *CartService) IncreaseItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	if err := validateItemRef(cartID, itemID); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}

	cart, err := s.reloadAndPublish(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item increased",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
	)

	return cart, nil
}

// DecreaseItem decrements the item's quantity by exactly 1, clamped at zero.
// Decreasing past the floor is a no-op, not an error.
func (s *CartService) DecreaseItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	if err := validateItemRef(cartID, itemID); err != nil {
		return nil, err
	}

	if err := s.repo.DecrementItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}

	cart, err := s.reloadAndPublish(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item decreased",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
	)

	return cart, nil
}

// RemoveItem deletes the item row outright. Removing a nonexistent item is a
// not-found error, never a silent success.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	if err := validateItemRef(cartID, itemID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, cartID, itemID); err != nil {
		return nil, err
	}

	cart, err := s.reloadAndPublish(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
	)

	return cart, nil
}

func validateItemRef(cartID, itemID string) error {
	if cartID == "" {
		return apperrors.InvalidInput("cart id is required")
	}
	if itemID == "" {
		return apperrors.InvalidInput("item id is required")
	}
	return nil
}

// reloadAndPublish re-reads the cart after a mutation and publishes a
// cart.updated event. Publish failures are logged, not surfaced: the mutation
// already committed.
func (s *CartService) reloadAndPublish(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("reload cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	return cart, nil
}
