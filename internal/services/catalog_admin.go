package services

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	rabbit "storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogAdminService manages products on behalf of admins. Every mutation
// drops the cached product lists.
type CatalogAdminService struct {
	products  repository.ProductRepository
	cache     cache.CatalogCache
	gate      *AccessGate
	publisher rabbit.PublisherInterface
	log       *zap.Logger
	now       func() time.Time
}

func NewCatalogAdminService(p repository.ProductRepository, c cache.CatalogCache, gate *AccessGate, pub rabbit.PublisherInterface, log *zap.Logger) *CatalogAdminService {
	return &CatalogAdminService{
		products:  p,
		cache:     c,
		gate:      gate,
		publisher: pub,
		log:       log,
		now:       time.Now,
	}
}

func (s *CatalogAdminService) CreateProduct(ctx context.Context, caller *domain.Identity, in domain.ProductInput) (*domain.Product, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &domain.Product{ID: uuid.New()}
	p.Apply(in)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.afterChange(ctx, caller, domain.EventProductCreated, p.ID, p.Name)
	return p, nil
}

func (s *CatalogAdminService) UpdateProduct(ctx context.Context, caller *domain.Identity, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, err)
	}

	p.Apply(in)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.afterChange(ctx, caller, domain.EventProductUpdated, p.ID, p.Name)
	return p, nil
}

// DeleteProduct removes the product from the catalog. Confirmation is the
// caller's concern.
func (s *CatalogAdminService) DeleteProduct(ctx context.Context, caller *domain.Identity, id uuid.UUID) error {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.afterChange(ctx, caller, domain.EventProductDeleted, id, "")
	return nil
}

// ExportProducts returns the whole catalog for the spreadsheet export.
func (s *CatalogAdminService) ExportProducts(ctx context.Context, caller *domain.Identity) ([]domain.Product, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	return products, nil
}

func (s *CatalogAdminService) afterChange(ctx context.Context, caller *domain.Identity, event string, id uuid.UUID, name string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}

	s.log.Info("catalog changed",
		zap.String("event", event),
		zap.String("product_id", id.String()),
		zap.String("admin_id", caller.UserID.String()))

	publishEvent(ctx, s.publisher, s.log, event, domain.ProductChangedEvent{
		ProductID: id,
		Name:      name,
		ChangedBy: caller.UserID,
		ChangedAt: s.now(),
	})
}
