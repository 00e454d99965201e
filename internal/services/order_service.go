package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCheckoutKeyLen = 100

// OrderService turns a user's cart into an order and serves the user's
// order history.
type OrderService struct {
	orders    repository.OrderRepository
	carts     *CartService
	gate      *AccessGate
	publisher rabbit.PublisherInterface
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(r repository.OrderRepository, carts *CartService, gate *AccessGate, pub rabbit.PublisherInterface, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:    r,
		carts:     carts,
		gate:      gate,
		publisher: pub,
		log:       log,
		now:       time.Now,
	}
}

// Checkout places an order for everything in the caller's cart and empties
// the cart in the same transaction. A repeated key returns the order the key
// first produced.
func (s *OrderService) Checkout(ctx context.Context, caller *domain.Identity, key string) (*domain.Order, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	if len(key) > maxCheckoutKeyLen {
		return nil, domain.NewValidationError("idempotencyKey", fmt.Sprintf("must be at most %d characters", maxCheckoutKeyLen))
	}

	if key != "" {
		existing, err := s.orders.FindByCheckoutKey(ctx, caller.UserID, key)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("checkout: %w", err)
		}
	}

	cart, err := s.carts.load(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if missing := cart.Unavailable(); len(missing) > 0 {
		return nil, fmt.Errorf("product %s: %w", missing[0].ProductID, domain.ErrNotFound)
	}

	order := domain.NewOrderFromCart(cart, s.now())
	if key != "" {
		order.CheckoutKey = &key
	}

	placed, created, err := s.orders.PlaceOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if created {
		s.log.Info("order placed",
			zap.String("order_id", placed.ID.String()),
			zap.String("user_id", placed.UserID.String()),
			zap.String("total", placed.TotalAmount.StringFixed(2)),
			zap.Int("items", len(placed.Items)))

		publishEvent(ctx, s.publisher, s.log, domain.EventOrderCreated, domain.OrderCreatedEvent{
			OrderID:     placed.ID,
			UserID:      placed.UserID,
			TotalAmount: placed.TotalAmount,
			ItemCount:   len(placed.Items),
			CreatedAt:   placed.CreatedAt,
		})
	}
	return placed, nil
}

// ListMyOrders returns one page of the caller's orders, newest first. Paging
// follows the same defaults and caps as the admin listing.
func (s *OrderService) ListMyOrders(ctx context.Context, caller *domain.Identity, page, limit int) (*domain.OrderPage, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return nil, err
	}

	filter := pageFilter(page, limit)
	orders, total, err := s.orders.ListByUser(ctx, caller.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return domain.NewOrderPage(orders, filter, total), nil
}

// GetOrder returns an order the caller owns, or any order for an admin.
// Other users' orders read as not found.
func (s *OrderService) GetOrder(ctx context.Context, caller *domain.Identity, id uuid.UUID) (*domain.Order, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	if err := s.gate.RequireOwnerOrAdmin(ctx, caller, order.UserID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}
