package repository

import (
	"context"

	"storefront-service/internal/domain"

	"github.com/google/uuid"
)

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TestimonialRepository interface {
	List(ctx context.Context) ([]domain.Testimonial, error)
}
