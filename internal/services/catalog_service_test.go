package services

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListProducts(t *testing.T) {
	featured := true

	tests := []struct {
		name          string
		filter        domain.ProductFilter
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockCatalogCache)
		expectedCount int
		expectedError string
	}{
		{
			name:   "cache hit skips the store",
			filter: domain.ProductFilter{Featured: &featured},
			setupMocks: func(repo *mocks.MockProductRepository, c *mocks.MockCatalogCache) {
				c.On("GetProducts", mock.Anything, domain.ProductFilter{Featured: &featured}).Return(sampleMenu()[:1], true)
			},
			expectedCount: 1,
		},
		{
			name:   "cache miss fills the cache",
			filter: domain.ProductFilter{Category: "  burgers "},
			setupMocks: func(repo *mocks.MockProductRepository, c *mocks.MockCatalogCache) {
				want := domain.ProductFilter{Category: "burgers"}
				c.On("GetProducts", mock.Anything, want).Return(nil, false)
				repo.On("List", mock.Anything, want).Return(sampleMenu()[:1], nil)
				c.On("SetProducts", mock.Anything, want, sampleMenu()[:1]).Return()
			},
			expectedCount: 1,
		},
		{
			name: "nothing matches",
			setupMocks: func(repo *mocks.MockProductRepository, c *mocks.MockCatalogCache) {
				c.On("GetProducts", mock.Anything, domain.ProductFilter{}).Return(nil, false)
				repo.On("List", mock.Anything, domain.ProductFilter{}).Return(nil, nil)
				c.On("SetProducts", mock.Anything, domain.ProductFilter{}, []domain.Product{}).Return()
			},
			expectedCount: 0,
		},
		{
			name: "store error",
			setupMocks: func(repo *mocks.MockProductRepository, c *mocks.MockCatalogCache) {
				c.On("GetProducts", mock.Anything, domain.ProductFilter{}).Return(nil, false)
				repo.On("List", mock.Anything, domain.ProductFilter{}).Return(nil, errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockProductRepository)
			c := new(mocks.MockCatalogCache)
			tt.setupMocks(repo, c)

			svc := NewCatalogService(repo, new(mocks.MockTestimonialRepository), c, testLogger())
			products, err := svc.ListProducts(context.Background(), tt.filter)

			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				c.AssertNotCalled(t, "SetProducts", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Len(t, products, tt.expectedCount)
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestCatalogService_GetProduct(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	burger := sampleMenu()[0]
	repo.On("FindByID", mock.Anything, TestBurgerID).Return(&burger, nil)
	repo.On("FindByID", mock.Anything, TestMissingID).Return(nil, domain.ErrNotFound)

	svc := NewCatalogService(repo, new(mocks.MockTestimonialRepository), new(mocks.MockCatalogCache), testLogger())

	p, err := svc.GetProduct(context.Background(), TestBurgerID)
	require.NoError(t, err)
	assert.Equal(t, "Smash Burger", p.Name)

	_, err = svc.GetProduct(context.Background(), TestMissingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_CategoriesAndTestimonials(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	testimonials := new(mocks.MockTestimonialRepository)
	repo.On("Categories", mock.Anything).Return([]string{"burgers", "sides"}, nil)
	testimonials.On("List", mock.Anything).Return(nil, nil)

	svc := NewCatalogService(repo, testimonials, new(mocks.MockCatalogCache), testLogger())

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"burgers", "sides"}, cats)

	ts, err := svc.ListTestimonials(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ts)
	assert.Empty(t, ts)
}
