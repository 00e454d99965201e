package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"imageUrl" gorm:"type:varchar(500)"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null;index"`
	Featured    bool            `json:"featured" gorm:"not null;default:false;index"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

type ProductFilter struct {
	Featured *bool
	Category string
}

// ProductInput carries the admin-editable attributes of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Featured    bool
}

func (in ProductInput) Normalize() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}

// Validate checks name, price and category, in that order.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if !in.Price.IsPositive() {
		return NewValidationError("price", "must be greater than zero")
	}
	if strings.TrimSpace(in.Category) == "" {
		return NewValidationError("category", "must not be empty")
	}
	return nil
}

func (p *Product) Apply(in ProductInput) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.Category = in.Category
	p.Featured = in.Featured
}
