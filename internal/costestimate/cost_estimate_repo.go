package costestimate

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Status          Status
	PurchaseOrderID int64
}

//go:generate mockgen -source=cost_estimate_repo.go -destination=mock/cost_estimate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ce *CostEstimate) error
	FindByID(ctx context.Context, id int64) (*CostEstimate, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*CostEstimate, error)
	FindAll(ctx context.Context, filter ListFilter) ([]CostEstimate, error)
	Update(ctx context.Context, ce *CostEstimate) error
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ce *CostEstimate) error {
	return r.db.WithContext(ctx).Create(ce).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*CostEstimate, error) {
	var ce CostEstimate
	if err := r.db.WithContext(ctx).First(&ce, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ce, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id int64) (*CostEstimate, error) {
	var ce CostEstimate
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ce, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]CostEstimate, error) {
	q := r.db.WithContext(ctx).Model(&CostEstimate{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PurchaseOrderID > 0 {
		q = q.Where("purchase_order_id = ?", filter.PurchaseOrderID)
	}

	var estimates []CostEstimate
	err := q.Order("created_at DESC").Order("id DESC").Find(&estimates).Error
	return estimates, err
}

func (r *repository) Update(ctx context.Context, ce *CostEstimate) error {
	return r.db.WithContext(ctx).Save(ce).Error
}

func (r *repository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&CostEstimate{}).
		Where("id = ?", id).
		Update("total_cost", total).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&CostEstimate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
