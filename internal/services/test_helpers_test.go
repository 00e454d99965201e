package services

import (
	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var (
	TestUserID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	TestAdminID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	TestOtherID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	TestBurgerID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	TestFriesID   = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	TestMissingID = uuid.MustParse("aaaaaaaa-0000-0000-0000-0000000000ff")
)

func createTestProduct(id uuid.UUID, name, price, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func sampleMenu() []domain.Product {
	return []domain.Product{
		createTestProduct(TestBurgerID, "Smash Burger", "16.99", "burgers"),
		createTestProduct(TestFriesID, "Loaded Fries", "8.99", "sides"),
	}
}

func createTestCartItem(userID, productID uuid.UUID, qty int) domain.CartItem {
	return domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
}

func userIdentity() *domain.Identity {
	return &domain.Identity{UserID: TestUserID, Email: "user@example.com"}
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{UserID: TestAdminID, Email: "admin@example.com"}
}

// expectRoles registers profile lookups for the standard test user and admin.
func expectRoles(profiles *mocks.MockProfileRepository) {
	profiles.On("FindByID", mock.Anything, TestAdminID).Return(&domain.Profile{ID: TestAdminID, Role: domain.RoleAdmin}, nil).Maybe()
	profiles.On("FindByID", mock.Anything, TestUserID).Return(&domain.Profile{ID: TestUserID, Role: domain.RoleUser}, nil).Maybe()
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
