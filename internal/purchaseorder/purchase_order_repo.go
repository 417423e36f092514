package purchaseorder

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=purchase_order_repo.go -destination=mock/purchase_order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, po *PurchaseOrder) error
	FindByID(ctx context.Context, id int64) (*PurchaseOrder, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*PurchaseOrder, error)
	FindAll(ctx context.Context, status Status) ([]PurchaseOrder, error)
	Update(ctx context.Context, po *PurchaseOrder) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
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

func (r *repository) Create(ctx context.Context, po *PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := r.db.WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id int64) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&po, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// FindAll returns every order, newest first. An empty status means no filter.
func (r *repository) FindAll(ctx context.Context, status Status) ([]PurchaseOrder, error) {
	q := r.db.WithContext(ctx).Model(&PurchaseOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []PurchaseOrder
	err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *repository) Update(ctx context.Context, po *PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res := r.db.WithContext(ctx).
		Model(&PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&PurchaseOrder{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
