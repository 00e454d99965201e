package gormrepo

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr("cart.list", err)
	}
	return out, nil
}

// Increment relies on the (user_id, product_id) unique index; the conflict branch
// adds to the stored quantity so concurrent adds are never lost.
func (r *cartRepo) Increment(ctx context.Context, userID, productID uuid.UUID, delta int) error {
	item := domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  delta,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
	return storeErr("cart.increment", err)
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return storeErr("cart.set_quantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line for product %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error
	return storeErr("cart.remove", err)
}

func (r *cartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
	return storeErr("cart.clear", err)
}
