package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// withProducts preloads order items and their products, including soft-deleted ones,
// so historical lines always resolve.
func withProducts(db *gorm.DB) *gorm.DB {
	return db.Preload("Items.Product", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

func (r *orderRepo) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, bool, error) {
	var (
		placed  *domain.Order
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.CheckoutKey != nil {
			var existing domain.Order
			err := withProducts(tx).
				Where("user_id = ? AND checkout_key = ?", order.UserID, *order.CheckoutKey).
				First(&existing).Error
			if err == nil {
				placed = &existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if len(order.Items) == 0 {
			return errors.New("order has no items")
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := tx.Where("user_id = ?", order.UserID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		placed, created = order, true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) && order.CheckoutKey != nil {
		// A concurrent checkout with the same key committed first.
		existing, findErr := r.FindByCheckoutKey(ctx, order.UserID, *order.CheckoutKey)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, storeErr("orders.place", err)
	}
	return placed, created, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	err := withProducts(r.db.WithContext(ctx)).
		Preload("Customer").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, storeErr("orders.find", err)
	}
	return &o, nil
}

func (r *orderRepo) FindByCheckoutKey(ctx context.Context, userID uuid.UUID, key string) (*domain.Order, error) {
	var o domain.Order
	err := withProducts(r.db.WithContext(ctx)).
		Where("user_id = ? AND checkout_key = ?", userID, key).
		First(&o).Error
	if err != nil {
		return nil, storeErr("orders.find_by_checkout_key", err)
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	var (
		out   []domain.Order
		total int64
	)

	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, storeErr("orders.count_by_user", err)
	}
	if total == 0 {
		return []domain.Order{}, 0, nil
	}

	err = withProducts(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, storeErr("orders.list_by_user", err)
	}
	return out, total, nil
}

func (r *orderRepo) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	var (
		out   []domain.Order
		total int64
	)

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Order{})
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, storeErr("orders.count", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	err := withProducts(scoped()).
		Preload("Customer").
		Offset(offset).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, 0, storeErr("orders.list", err)
	}
	return out, total, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return storeErr("orders.update_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
