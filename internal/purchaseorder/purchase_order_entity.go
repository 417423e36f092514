package purchaseorder

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusProgress        Status = "PROGRESS"
	StatusCompleted       Status = "COMPLETED"
	StatusRejected        Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusProgress, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

type PurchaseOrder struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PONumber    string          `gorm:"column:po_number;type:varchar(50);not null;uniqueIndex:uq_purchase_orders_po_number"`
	Title       string          `gorm:"column:title;type:varchar(200);not null"`
	Description *string         `gorm:"column:description;type:text"`
	RequestedBy int64           `gorm:"column:requested_by;not null;index"`
	ApprovedBy  *int64          `gorm:"column:approved_by"`
	Status      Status          `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(15,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
