package costestimate

import (
	"errors"

	costestimateerrors "go-procurement/internal/costestimate/errors"

	"gorm.io/gorm"
)

func mapEstimateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return costestimateerrors.ErrCostEstimateNotFound
	}
	return err
}

func mapLineItemError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return costestimateerrors.ErrLineItemNotFound
	}
	return err
}

func mapPurchaseOrderError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return costestimateerrors.ErrPurchaseOrderNotFound
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
