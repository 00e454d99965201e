package gormrepo_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository/gormrepo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepo_IncrementAddsToExistingLine(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := gormrepo.NewCartRepository(gormDB)

	userID, productID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `cart_items`") + ".*" +
		regexp.QuoteMeta("ON DUPLICATE KEY UPDATE `quantity`=cart_items.quantity + ?,`updated_at`=?")).
		WithArgs(sqlmock.AnyArg(), userID.String(), productID.String(), 2, sqlmock.AnyArg(), sqlmock.AnyArg(), 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Increment(context.Background(), userID, productID, 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_IncrementAddsToExistingLinePostgres(t *testing.T) {
	gormDB, mock := setupPostgresMockDB(t)
	repo := gormrepo.NewCartRepository(gormDB)

	userID, productID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "cart_items"`) + ".*" +
		regexp.QuoteMeta(`ON CONFLICT ("user_id","product_id") DO UPDATE SET "quantity"=cart_items.quantity + $7,"updated_at"=$8`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Increment(context.Background(), userID, productID, 1)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_SetQuantityMissingLineIsNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := gormrepo.NewCartRepository(gormDB)

	userID, productID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `cart_items` SET `quantity`=?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetQuantity(context.Background(), userID, productID, 4)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_ConnectionFailureIsStoreError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := gormrepo.NewCartRepository(gormDB)

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `cart_items` WHERE user_id = ?")).
		WithArgs(userID.String()).
		WillReturnError(errors.New("connection refused"))

	items, err := repo.ListByUser(context.Background(), userID)

	assert.Nil(t, items)
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "cart.list", storeErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepo_ClearDeletesEveryLine(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := gormrepo.NewCartRepository(gormDB)

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `cart_items` WHERE user_id = ?")).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.Clear(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
