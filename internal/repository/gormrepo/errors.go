package gormrepo

import (
	"errors"
	"fmt"

	"storefront-service/internal/domain"

	"gorm.io/gorm"
)

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return &domain.StoreError{Op: op, Err: err}
}
