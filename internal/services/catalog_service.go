package services

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService is the read side of the catalog: products, categories and
// testimonials. Product lists are served through the catalog cache.
type CatalogService struct {
	products     repository.ProductRepository
	testimonials repository.TestimonialRepository
	cache        cache.CatalogCache
	log          *zap.Logger
}

func NewCatalogService(p repository.ProductRepository, t repository.TestimonialRepository, c cache.CatalogCache, log *zap.Logger) *CatalogService {
	return &CatalogService{
		products:     p,
		testimonials: t,
		cache:        c,
		log:          log,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)

	if cached, ok := s.cache.GetProducts(ctx, filter); ok {
		return cached, nil
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	s.cache.SetProducts(ctx, filter, products)
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}
	return p, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

func (s *CatalogService) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	out, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	if out == nil {
		out = []domain.Testimonial{}
	}
	return out, nil
}
