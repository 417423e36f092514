package costestimate

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type CostEstimate struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PurchaseOrderID int64           `gorm:"column:purchase_order_id;not null;index"`
	Title           string          `gorm:"column:title;type:varchar(200);not null"`
	Description     *string         `gorm:"column:description;type:text"`
	CreatedBy       int64           `gorm:"column:created_by;not null;index"`
	ApprovedBy      *int64          `gorm:"column:approved_by"`
	Status          Status          `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`
	TotalCost       decimal.Decimal `gorm:"column:total_cost;type:numeric(15,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CostEstimate) TableName() string {
	return "cost_estimates"
}

// LineItem is one row of an estimate's bill of quantities.
type LineItem struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CostEstimateID int64           `gorm:"column:cost_estimate_id;not null;index"`
	Description    string          `gorm:"column:description;type:varchar(200);not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(15,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"column:total_price;type:numeric(15,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (LineItem) TableName() string {
	return "cost_estimate_line_items"
}
