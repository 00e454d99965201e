package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogAdminFixture struct {
	products  *mocks.MockProductRepository
	cache     *mocks.MockCatalogCache
	profiles  *mocks.MockProfileRepository
	publisher *mocks.MockPublisher
	service   *CatalogAdminService
}

func newCatalogAdminFixture() *catalogAdminFixture {
	f := &catalogAdminFixture{
		products:  new(mocks.MockProductRepository),
		cache:     new(mocks.MockCatalogCache),
		profiles:  new(mocks.MockProfileRepository),
		publisher: new(mocks.MockPublisher),
	}
	expectRoles(f.profiles)
	f.service = NewCatalogAdminService(f.products, f.cache, NewAccessGate(f.profiles), f.publisher, testLogger())
	return f
}

func (f *catalogAdminFixture) assertNoMutation(t *testing.T) {
	t.Helper()
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func validInput() domain.ProductInput {
	return domain.ProductInput{
		Name:     "Veggie Wrap",
		Price:    decimal.RequireFromString("11.50"),
		Category: "wraps",
	}
}

func TestCatalogAdminService_CreateProduct(t *testing.T) {
	tests := []struct {
		name          string
		caller        *domain.Identity
		input         func() domain.ProductInput
		setupMocks    func(*catalogAdminFixture)
		expectedError error
		expectedField string
	}{
		{
			name:   "admin creates product",
			caller: adminIdentity(),
			input:  validInput,
			setupMocks: func(f *catalogAdminFixture) {
				f.products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
					return p.Name == "Veggie Wrap" && p.Category == "wraps"
				})).Return(nil)
				f.cache.On("Invalidate", mock.Anything).Return(nil)
				f.publisher.On("Publish", mock.Anything, domain.EventProductCreated, mock.AnythingOfType("domain.ProductChangedEvent")).Return(nil)
			},
		},
		{
			name:   "cache invalidation failure is tolerated",
			caller: adminIdentity(),
			input:  validInput,
			setupMocks: func(f *catalogAdminFixture) {
				f.products.On("Create", mock.Anything, mock.Anything).Return(nil)
				f.cache.On("Invalidate", mock.Anything).Return(errors.New("redis down"))
				f.publisher.On("Publish", mock.Anything, domain.EventProductCreated, mock.Anything).Return(nil)
			},
		},
		{
			name:          "non-admin",
			caller:        userIdentity(),
			input:         validInput,
			setupMocks:    func(f *catalogAdminFixture) {},
			expectedError: domain.ErrForbidden,
		},
		{
			name:   "caller without profile",
			caller: userIdentity(),
			input:  validInput,
			setupMocks: func(f *catalogAdminFixture) {
				f.profiles.ExpectedCalls = nil
				f.profiles.On("FindByID", mock.Anything, TestUserID).Return(nil, domain.ErrNotFound)
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:   "zero price",
			caller: adminIdentity(),
			input: func() domain.ProductInput {
				in := validInput()
				in.Price = decimal.Zero
				return in
			},
			setupMocks:    func(f *catalogAdminFixture) {},
			expectedField: "price",
		},
		{
			name:   "blank name",
			caller: adminIdentity(),
			input: func() domain.ProductInput {
				in := validInput()
				in.Name = "   "
				return in
			},
			setupMocks:    func(f *catalogAdminFixture) {},
			expectedField: "name",
		},
		{
			name:   "empty category",
			caller: adminIdentity(),
			input: func() domain.ProductInput {
				in := validInput()
				in.Category = ""
				return in
			},
			setupMocks:    func(f *catalogAdminFixture) {},
			expectedField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogAdminFixture()
			tt.setupMocks(f)

			p, err := f.service.CreateProduct(context.Background(), tt.caller, tt.input())

			if tt.expectedError != nil || tt.expectedField != "" {
				require.Error(t, err)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					var ve *domain.ValidationError
					require.ErrorAs(t, err, &ve)
					assert.Equal(t, tt.expectedField, ve.Field)
				}
				assert.Nil(t, p)
				f.assertNoMutation(t)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, "", p.ID.String())
			f.products.AssertExpectations(t)
			f.cache.AssertExpectations(t)
			f.publisher.AssertExpectations(t)
		})
	}
}

func TestCatalogAdminService_UpdateProduct(t *testing.T) {
	t.Run("applies fields", func(t *testing.T) {
		f := newCatalogAdminFixture()
		burger := sampleMenu()[0]
		f.products.On("FindByID", mock.Anything, TestBurgerID).Return(&burger, nil)
		f.products.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
		f.cache.On("Invalidate", mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, domain.EventProductUpdated, mock.Anything).Return(nil)

		p, err := f.service.UpdateProduct(context.Background(), adminIdentity(), TestBurgerID, validInput())

		require.NoError(t, err)
		assert.Equal(t, TestBurgerID, p.ID)
		assert.Equal(t, "Veggie Wrap", p.Name)
		assert.True(t, decimal.RequireFromString("11.50").Equal(p.Price))
	})

	t.Run("missing product", func(t *testing.T) {
		f := newCatalogAdminFixture()
		f.products.On("FindByID", mock.Anything, TestMissingID).Return(nil, domain.ErrNotFound)

		_, err := f.service.UpdateProduct(context.Background(), adminIdentity(), TestMissingID, validInput())

		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.assertNoMutation(t)
	})

	t.Run("non-admin", func(t *testing.T) {
		f := newCatalogAdminFixture()

		_, err := f.service.UpdateProduct(context.Background(), userIdentity(), TestBurgerID, validInput())

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.assertNoMutation(t)
	})
}

func TestCatalogAdminService_DeleteProduct(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		f := newCatalogAdminFixture()
		f.products.On("Delete", mock.Anything, TestBurgerID).Return(nil)
		f.cache.On("Invalidate", mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, domain.EventProductDeleted, mock.Anything).Return(nil)

		require.NoError(t, f.service.DeleteProduct(context.Background(), adminIdentity(), TestBurgerID))
		f.products.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("non-admin", func(t *testing.T) {
		f := newCatalogAdminFixture()

		err := f.service.DeleteProduct(context.Background(), userIdentity(), TestBurgerID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.assertNoMutation(t)
	})

	t.Run("already gone", func(t *testing.T) {
		f := newCatalogAdminFixture()
		f.products.On("Delete", mock.Anything, TestMissingID).Return(domain.ErrNotFound)

		err := f.service.DeleteProduct(context.Background(), adminIdentity(), TestMissingID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

func TestCatalogAdminService_ExportProducts(t *testing.T) {
	f := newCatalogAdminFixture()
	f.products.On("List", mock.Anything, domain.ProductFilter{}).Return(sampleMenu(), nil)

	products, err := f.service.ExportProducts(context.Background(), adminIdentity())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = f.service.ExportProducts(context.Background(), userIdentity())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
