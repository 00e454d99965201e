package services

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderAdminService lets admins see every order and move it through the
// kitchen's statuses.
type OrderAdminService struct {
	orders    repository.OrderRepository
	gate      *AccessGate
	publisher rabbit.PublisherInterface
	log       *zap.Logger
	now       func() time.Time

	// strict limits status changes to a single forward step.
	strict bool
}

func NewOrderAdminService(r repository.OrderRepository, gate *AccessGate, pub rabbit.PublisherInterface, log *zap.Logger, strict bool) *OrderAdminService {
	return &OrderAdminService{
		orders:    r,
		gate:      gate,
		publisher: pub,
		log:       log,
		now:       time.Now,
		strict:    strict,
	}
}

func (s *OrderAdminService) ListOrders(ctx context.Context, caller *domain.Identity, status string, page, limit int) (*domain.OrderPage, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	filter := pageFilter(page, limit)
	if status != "" {
		st, err := domain.ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return domain.NewOrderPage(orders, filter, total), nil
}

// pageFilter clamps caller-supplied paging to page >= 1 and
// 1 <= limit <= maxPageLimit.
func pageFilter(page, limit int) domain.OrderFilter {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return domain.OrderFilter{Page: page, Limit: limit}
}

func (s *OrderAdminService) SetStatus(ctx context.Context, caller *domain.Identity, id uuid.UUID, status string) (*domain.Order, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	to, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	from := order.Status
	if from == to {
		return order, nil
	}
	if s.strict && !from.CanAdvance(to) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot move order from %s to %s", from, to))
	}

	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = to

	s.log.Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("admin_id", caller.UserID.String()))

	publishEvent(ctx, s.publisher, s.log, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   id,
		From:      from,
		To:        to,
		ChangedBy: caller.UserID,
		ChangedAt: s.now(),
	})
	return order, nil
}
