package purchaseorder

import (
	"go-procurement/internal/shared/money"

	"github.com/shopspring/decimal"
)

type CreatePurchaseOrderRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Description *string          `json:"description"`
	TotalAmount *decimal.Decimal `json:"total_amount" binding:"required"`
}

type UpdatePurchaseOrderRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

type ApprovePurchaseOrderRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type PurchaseOrderResponse struct {
	ID          int64        `json:"id"`
	PONumber    string       `json:"po_number"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	RequestedBy int64        `json:"requested_by"`
	ApprovedBy  *int64       `json:"approved_by"`
	Status      Status       `json:"status"`
	TotalAmount money.Amount `json:"total_amount"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

func mapToResponse(po PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:          po.ID,
		PONumber:    po.PONumber,
		Title:       po.Title,
		Description: po.Description,
		RequestedBy: po.RequestedBy,
		ApprovedBy:  po.ApprovedBy,
		Status:      po.Status,
		TotalAmount: money.NewAmount(po.TotalAmount),
		CreatedAt:   po.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   po.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
