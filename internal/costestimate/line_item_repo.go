package costestimate

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=line_item_repo.go -destination=mock/line_item_repo_mock.go -package=mock
type LineItemRepository interface {
	WithTx(tx *gorm.DB) LineItemRepository
	Create(ctx context.Context, item *LineItem) error
	FindByID(ctx context.Context, id int64) (*LineItem, error)
	FindByEstimate(ctx context.Context, estimateID int64) ([]LineItem, error)
	Totals(ctx context.Context, estimateID int64) (ItemTotals, error)
	Update(ctx context.Context, item *LineItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByEstimate(ctx context.Context, estimateID int64) error
}

type lineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) WithTx(tx *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: tx}
}

func (r *lineItemRepository) Create(ctx context.Context, item *LineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *lineItemRepository) FindByID(ctx context.Context, id int64) (*LineItem, error) {
	var item LineItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lineItemRepository) FindByEstimate(ctx context.Context, estimateID int64) ([]LineItem, error) {
	var items []LineItem
	err := r.db.WithContext(ctx).
		Where("cost_estimate_id = ?", estimateID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Totals sums total_price over every item of the estimate.
func (r *lineItemRepository) Totals(ctx context.Context, estimateID int64) (ItemTotals, error) {
	var totals ItemTotals
	err := r.db.WithContext(ctx).Raw(`
SELECT COALESCE(SUM(total_price), 0) AS sum, COUNT(*) AS count
FROM cost_estimate_line_items
WHERE cost_estimate_id = ?
`, estimateID).Scan(&totals).Error
	return totals, err
}

func (r *lineItemRepository) Update(ctx context.Context, item *LineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *lineItemRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&LineItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lineItemRepository) DeleteByEstimate(ctx context.Context, estimateID int64) error {
	return r.db.WithContext(ctx).
		Where("cost_estimate_id = ?", estimateID).
		Delete(&LineItem{}).Error
}
