package repository

import (
	"context"

	"storefront-service/internal/domain"

	"github.com/google/uuid"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
	// Increment adds delta to the (user, product) line, creating it when absent.
	// It is a single upsert statement.
	Increment(ctx context.Context, userID, productID uuid.UUID, delta int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
