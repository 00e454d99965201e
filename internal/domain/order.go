package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// orderFlow is the kitchen's forward sequence.
var orderFlow = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", NewValidationError("status", fmt.Sprintf("must be one of %v, got %q", orderFlow, s))
	}
	return st, nil
}

func (s OrderStatus) Valid() bool {
	for _, st := range orderFlow {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the status that follows s, false once delivered.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range orderFlow {
		if st == s && i+1 < len(orderFlow) {
			return orderFlow[i+1], true
		}
	}
	return "", false
}

// CanAdvance reports whether to is exactly one forward step from s.
func (s OrderStatus) CanAdvance(to OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

type Order struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index;uniqueIndex:idx_orders_user_checkout_key"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CheckoutKey *string         `json:"-" gorm:"type:varchar(100);uniqueIndex:idx_orders_user_checkout_key"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer    *Profile        `json:"customer,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem is immutable once written. Price is the unit price copied at checkout.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID   uuid.UUID       `json:"orderId" gorm:"type:char(36);not null;index"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:char(36);not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderFromCart snapshots the cart into a pending order. The total is fixed here
// and never recomputed.
func NewOrderFromCart(cart Cart, now time.Time) *Order {
	order := &Order{
		ID:          uuid.New(),
		UserID:      cart.UserID,
		TotalAmount: cart.Total(),
		Status:      StatusPending,
		CreatedAt:   now,
		Items:       make([]OrderItem, 0, len(cart.Lines)),
	}
	for _, l := range cart.Lines {
		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}
	return order
}

type OrderFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

// NewOrderPage wraps one page of results with its paging metadata. filter
// must already carry a positive Page and Limit.
func NewOrderPage(orders []Order, filter OrderFilter, total int64) *OrderPage {
	if orders == nil {
		orders = []Order{}
	}
	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	return &OrderPage{
		Orders:     orders,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    int64(filter.Page) < totalPages,
	}
}

type OrderPage struct {
	Orders     []Order `json:"orders"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int64   `json:"total"`
	TotalPages int64   `json:"totalPages"`
	HasMore    bool    `json:"hasMore"`
}
