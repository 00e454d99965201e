package http

import (
	"storefront-service/internal/domain"

	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
}

func (r ProductRequest) toInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Featured:    r.Featured,
	}
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type CartResponse struct {
	domain.Cart
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func newCartResponse(c domain.Cart) CartResponse {
	if c.Lines == nil {
		c.Lines = []domain.CartLine{}
	}
	return CartResponse{Cart: c, Total: c.Total(), Count: c.Count()}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
