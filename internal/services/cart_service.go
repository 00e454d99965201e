package services

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CartService keeps one cart per user. Every mutation returns the reloaded cart.
// Carts are priced from the product store, never from the catalog cache, so
// the cart and the order it becomes carry the current price.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	gate     *AccessGate
	log      *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, gate *AccessGate, log *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		gate:     gate,
		log:      log,
	}
}

func (s *CartService) Load(ctx context.Context, caller *domain.Identity) (domain.Cart, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return domain.Cart{}, err
	}
	return s.load(ctx, caller.UserID)
}

// load reads the cart rows and the live catalog concurrently and joins them.
func (s *CartService) load(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var (
		items    []domain.CartItem
		products []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.carts.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx, domain.ProductFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := domain.BuildCart(userID, items, byID)
	if missing := cart.Unavailable(); len(missing) > 0 {
		s.log.Warn("cart references products missing from catalog",
			zap.String("user_id", userID.String()),
			zap.Int("lines", len(missing)))
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, caller *domain.Identity, productID uuid.UUID) (domain.Cart, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return domain.Cart{}, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return domain.Cart{}, fmt.Errorf("product %s: %w", productID, err)
	}

	if err := s.carts.Increment(ctx, caller.UserID, productID, 1); err != nil {
		return domain.Cart{}, fmt.Errorf("add to cart: %w", err)
	}
	return s.load(ctx, caller.UserID)
}

// UpdateQuantity sets the line's quantity; zero or less removes the line.
// A missing line is ErrNotFound.
func (s *CartService) UpdateQuantity(ctx context.Context, caller *domain.Identity, productID uuid.UUID, quantity int) (domain.Cart, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return domain.Cart{}, err
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, caller, productID)
	}
	if quantity > domain.MaxLineQuantity {
		return domain.Cart{}, domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxLineQuantity))
	}

	if err := s.carts.SetQuantity(ctx, caller.UserID, productID, quantity); err != nil {
		return domain.Cart{}, fmt.Errorf("update quantity: %w", err)
	}
	return s.load(ctx, caller.UserID)
}

func (s *CartService) RemoveItem(ctx context.Context, caller *domain.Identity, productID uuid.UUID) (domain.Cart, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return domain.Cart{}, err
	}

	if err := s.carts.Remove(ctx, caller.UserID, productID); err != nil {
		return domain.Cart{}, fmt.Errorf("remove from cart: %w", err)
	}
	return s.load(ctx, caller.UserID)
}

func (s *CartService) Clear(ctx context.Context, caller *domain.Identity) (domain.Cart, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return domain.Cart{}, err
	}

	if err := s.carts.Clear(ctx, caller.UserID); err != nil {
		return domain.Cart{}, fmt.Errorf("clear cart: %w", err)
	}
	return s.load(ctx, caller.UserID)
}
