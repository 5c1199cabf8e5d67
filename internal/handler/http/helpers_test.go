package http

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/event"
	"github.com/storefront-go/storefront/internal/payment"
	"github.com/storefront-go/storefront/internal/service"
	"github.com/storefront-go/storefront/pkg/idempotency"
	pkgkafka "github.com/storefront-go/storefront/pkg/kafka"
)

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) GetOrCreate(ctx context.Context, id string) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Get(ctx context.Context, id string) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) UpsertItem(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCartRepository) IncrementItem(ctx context.Context, cartID, itemID string) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

func (m *mockCartRepository) DecrementItem(ctx context.Context, cartID, itemID string) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockProductRepository) Seed(ctx context.Context, products []domain.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) Name() string { return "mock" }

func (m *mockPaymentProvider) CreateSession(ctx context.Context, input *payment.CreateSessionInput) (*payment.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *mockPaymentProvider) RetrieveSession(ctx context.Context, id string) (*payment.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

type stubPublisher struct {
	mu     sync.Mutex
	events int
}

func (s *stubPublisher) Publish(_ context.Context, _ string, _ *pkgkafka.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	return event.NewProducer(&stubPublisher{}, testLogger())
}

func testCartService(repo *mockCartRepository) *service.CartService {
	return service.NewCartService(repo, testEventProducer(), testLogger())
}

func testCheckoutService(
	carts *mockCartRepository,
	products *mockProductRepository,
	orders *mockOrderRepository,
	provider *mockPaymentProvider,
) *service.CheckoutService {
	return service.NewCheckoutService(
		carts, products, orders, provider,
		idempotency.NewMemoryStore(time.Hour),
		testEventProducer(), testLogger(),
		service.CheckoutConfig{
			SuccessURL: "http://localhost:3000/thankyou",
			CancelURL:  "http://localhost:3000/cart",
			Currency:   "USD",
		},
	)
}

