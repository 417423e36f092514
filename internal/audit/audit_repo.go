package audit

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	// Create reports false when a row with the same event_id already exists.
	Create(ctx context.Context, entry *AuditLog) (bool, error)
	FindAll(ctx context.Context, filter ListFilter) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID > 0 {
		q = q.Where("entity_id = ?", filter.EntityID)
	}

	var logs []AuditLog
	err := q.Order("occurred_at ASC").Order("id ASC").Find(&logs).Error
	return logs, err
}
