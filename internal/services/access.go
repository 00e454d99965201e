package services

import (
	"context"
	"errors"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

// AccessGate answers "is this caller an admin" from the caller's profile role.
// Row ownership is still enforced by the store; these checks keep the service
// from issuing requests it knows will be refused.
type AccessGate struct {
	profiles repository.ProfileRepository
}

func NewAccessGate(profiles repository.ProfileRepository) *AccessGate {
	return &AccessGate{profiles: profiles}
}

func (g *AccessGate) RequireUser(caller *domain.Identity) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}

// IsAdmin treats a caller without a profile as an ordinary user.
func (g *AccessGate) IsAdmin(ctx context.Context, caller *domain.Identity) (bool, error) {
	if err := g.RequireUser(caller); err != nil {
		return false, err
	}

	p, err := g.profiles.FindByID(ctx, caller.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsAdmin(), nil
}

func (g *AccessGate) RequireAdmin(ctx context.Context, caller *domain.Identity) error {
	ok, err := g.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func (g *AccessGate) RequireOwnerOrAdmin(ctx context.Context, caller *domain.Identity, ownerID uuid.UUID) error {
	if err := g.RequireUser(caller); err != nil {
		return err
	}
	if caller.UserID == ownerID {
		return nil
	}
	return g.RequireAdmin(ctx, caller)
}
