package gormrepo

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var out []domain.Product
	if err := query.Order("category ASC, name ASC").Find(&out).Error; err != nil {
		return nil, storeErr("products.list", err)
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, storeErr("products.find", err)
	}
	return &p, nil
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &out).Error
	if err != nil {
		return nil, storeErr("products.categories", err)
	}
	return out, nil
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	return storeErr("products.create", r.db.WithContext(ctx).Create(p).Error)
}

// Update writes every editable column, including zero values such as featured=false.
func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Select("name", "description", "price", "image_url", "category", "featured", "updated_at").
		Updates(p)
	if res.Error != nil {
		return storeErr("products.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete is a soft delete; order history keeps resolving the product.
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return storeErr("products.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type testimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) repository.TestimonialRepository {
	return &testimonialRepo{db: db}
}

func (r *testimonialRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, storeErr("testimonials.list", err)
	}
	return out, nil
}
