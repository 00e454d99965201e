package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, storeErr("profiles.find", err)
	}
	return &p, nil
}

func (r *profileRepo) FirstOrCreate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	var out domain.Profile
	err := r.db.WithContext(ctx).
		Where(domain.Profile{ID: p.ID}).
		Attrs(domain.Profile{Email: p.Email, FullName: p.FullName, Role: p.Role}).
		FirstOrCreate(&out).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// another request created it first
		return r.FindByID(ctx, p.ID)
	}
	if err != nil {
		return nil, storeErr("profiles.first_or_create", err)
	}
	return &out, nil
}

func (r *profileRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return storeErr("profiles.update_role", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
