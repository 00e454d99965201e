package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAccessGate(t *testing.T) {
	profiles := new(mocks.MockProfileRepository)
	expectRoles(profiles)
	profiles.On("FindByID", mock.Anything, TestOtherID).Return(nil, domain.ErrNotFound)
	brokenID := uuid.New()
	profiles.On("FindByID", mock.Anything, brokenID).Return(nil, &domain.StoreError{Op: "find profile", Err: errors.New("timeout")})

	gate := NewAccessGate(profiles)
	ctx := context.Background()

	assert.ErrorIs(t, gate.RequireUser(nil), domain.ErrUnauthorized)
	assert.ErrorIs(t, gate.RequireUser(&domain.Identity{}), domain.ErrUnauthorized)
	assert.NoError(t, gate.RequireUser(userIdentity()))

	assert.NoError(t, gate.RequireAdmin(ctx, adminIdentity()))
	assert.ErrorIs(t, gate.RequireAdmin(ctx, userIdentity()), domain.ErrForbidden)
	assert.ErrorIs(t, gate.RequireAdmin(ctx, &domain.Identity{UserID: TestOtherID}), domain.ErrForbidden)
	assert.ErrorIs(t, gate.RequireAdmin(ctx, nil), domain.ErrUnauthorized)
	assert.True(t, domain.IsStore(gate.RequireAdmin(ctx, &domain.Identity{UserID: brokenID})))

	assert.NoError(t, gate.RequireOwnerOrAdmin(ctx, userIdentity(), TestUserID))
	assert.NoError(t, gate.RequireOwnerOrAdmin(ctx, adminIdentity(), TestUserID))
	assert.ErrorIs(t, gate.RequireOwnerOrAdmin(ctx, userIdentity(), TestOtherID), domain.ErrForbidden)
}
