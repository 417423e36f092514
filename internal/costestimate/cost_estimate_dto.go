package costestimate

import (
	"go-procurement/internal/shared/money"

	"github.com/shopspring/decimal"
)

type CreateCostEstimateRequest struct {
	PurchaseOrderID int64            `json:"purchase_order_id" binding:"required,gt=0"`
	Title           string           `json:"title" binding:"required,min=1,max=200"`
	Description     *string          `json:"description"`
	TotalCost       *decimal.Decimal `json:"total_cost" binding:"required"`
}

// UpdateCostEstimateRequest leaves nil fields untouched; a nil TotalCost is
// resolved from the line items by the configured totals policy.
type UpdateCostEstimateRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	TotalCost   *decimal.Decimal `json:"total_cost"`
}

type ApproveCostEstimateRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type CostEstimateResponse struct {
	ID              int64        `json:"id"`
	PurchaseOrderID int64        `json:"purchase_order_id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description"`
	CreatedBy       int64        `json:"created_by"`
	ApprovedBy      *int64       `json:"approved_by"`
	Status          Status       `json:"status"`
	TotalCost       money.Amount `json:"total_cost"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

type CreateLineItemRequest struct {
	Description string           `json:"description" binding:"required,min=1,max=200"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
}

type UpdateLineItemRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=200"`
	Quantity    *int             `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

type LineItemResponse struct {
	ID             int64        `json:"id"`
	CostEstimateID int64        `json:"cost_estimate_id"`
	Description    string       `json:"description"`
	Quantity       int          `json:"quantity"`
	UnitPrice      money.Amount `json:"unit_price"`
	TotalPrice     money.Amount `json:"total_price"`
	CreatedAt      string       `json:"created_at"`
}

func mapToResponse(ce CostEstimate) CostEstimateResponse {
	return CostEstimateResponse{
		ID:              ce.ID,
		PurchaseOrderID: ce.PurchaseOrderID,
		Title:           ce.Title,
		Description:     ce.Description,
		CreatedBy:       ce.CreatedBy,
		ApprovedBy:      ce.ApprovedBy,
		Status:          ce.Status,
		TotalCost:       money.NewAmount(ce.TotalCost),
		CreatedAt:       ce.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       ce.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapLineItemToResponse(item LineItem) LineItemResponse {
	return LineItemResponse{
		ID:             item.ID,
		CostEstimateID: item.CostEstimateID,
		Description:    item.Description,
		Quantity:       item.Quantity,
		UnitPrice:      money.NewAmount(item.UnitPrice),
		TotalPrice:     money.NewAmount(item.TotalPrice),
		CreatedAt:      item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
