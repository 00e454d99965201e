package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UnknownProductName = "Unknown Product"

	// MaxLineQuantity bounds a single cart line.
	MaxLineQuantity = 999
)

// CartItem is the persisted row; unique per (user, product) and quantity >= 1.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CartLine is a cart row joined with its product. Available is false when the
// product no longer exists in the catalog; such a line is priced at zero.
type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Available bool            `json:"available"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an in-memory snapshot of one user's cart.
type Cart struct {
	UserID uuid.UUID  `json:"userId"`
	Lines  []CartLine `json:"lines"`
}

// BuildCart joins cart rows with the catalog by product id, keeping row order.
func BuildCart(userID uuid.UUID, items []CartItem, products map[uuid.UUID]Product) Cart {
	cart := Cart{UserID: userID, Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		line := CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      UnknownProductName,
			UnitPrice: decimal.Zero,
			Quantity:  it.Quantity,
		}
		if p, ok := products[it.ProductID]; ok {
			line.Name = p.Name
			line.ImageURL = p.ImageURL
			line.Category = p.Category
			line.UnitPrice = p.Price
			line.Available = true
		}
		cart.Lines = append(cart.Lines, line)
	}
	return cart
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Unavailable() []CartLine {
	var out []CartLine
	for _, l := range c.Lines {
		if !l.Available {
			out = append(out, l)
		}
	}
	return out
}
