package repository

import (
	"context"

	"storefront-service/internal/domain"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// FirstOrCreate returns the stored profile for p.ID, inserting p when none exists.
	FirstOrCreate(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
}
