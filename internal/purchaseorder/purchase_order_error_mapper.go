package purchaseorder

import (
	"errors"

	purchaseordererrors "go-procurement/internal/purchaseorder/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return purchaseordererrors.ErrPurchaseOrderNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_purchase_orders_po_number" {
		return purchaseordererrors.ErrPONumberTaken
	}

	return err
}
