package services

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService struct {
	profiles repository.ProfileRepository
	gate     *AccessGate
	log      *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, gate *AccessGate, log *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, gate: gate, log: log}
}

// Ensure returns the caller's profile, creating it with role user on first sight.
func (s *ProfileService) Ensure(ctx context.Context, caller *domain.Identity) (*domain.Profile, error) {
	if err := s.gate.RequireUser(caller); err != nil {
		return nil, err
	}

	p, err := s.profiles.FirstOrCreate(ctx, &domain.Profile{
		ID:       caller.UserID,
		Email:    caller.Email,
		FullName: caller.FullName,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) SetRole(ctx context.Context, caller *domain.Identity, userID uuid.UUID, role string) (*domain.Profile, error) {
	if err := s.gate.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if caller.UserID == userID && r != domain.RoleAdmin {
		return nil, domain.NewValidationError("role", "admins cannot demote themselves")
	}

	if err := s.profiles.UpdateRole(ctx, userID, r); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	s.log.Info("profile role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(r)),
		zap.String("changed_by", caller.UserID.String()))

	return s.profiles.FindByID(ctx, userID)
}
