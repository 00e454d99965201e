package repository

import (
	"context"

	"storefront-service/internal/domain"

	"github.com/google/uuid"
)

type OrderRepository interface {
	// PlaceOrder writes the order with its items and empties the owner's cart in
	// one transaction. When order.CheckoutKey matches an earlier order of the same
	// user, that order is returned with created=false and nothing is written.
	PlaceOrder(ctx context.Context, order *domain.Order) (placed *domain.Order, created bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByCheckoutKey(ctx context.Context, userID uuid.UUID, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.OrderFilter) ([]domain.Order, int64, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}
