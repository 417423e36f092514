package events

import "time"

const WorkflowTopic = "procurement.workflow.v1"

const (
	EntityPurchaseOrder = "purchase_order"
	EntityCostEstimate  = "cost_estimate"
	EntityLineItem      = "line_item"
)

const (
	PurchaseOrderCreated    = "purchase_order.created"
	PurchaseOrderUpdated    = "purchase_order.updated"
	PurchaseOrderSubmitted  = "purchase_order.submitted"
	PurchaseOrderApproved   = "purchase_order.approved"
	PurchaseOrderRejected   = "purchase_order.rejected"
	PurchaseOrderProgressed = "purchase_order.progressed"
	PurchaseOrderCompleted  = "purchase_order.completed"
	PurchaseOrderDeleted    = "purchase_order.deleted"

	CostEstimateCreated   = "cost_estimate.created"
	CostEstimateUpdated   = "cost_estimate.updated"
	CostEstimateSubmitted = "cost_estimate.submitted"
	CostEstimateApproved  = "cost_estimate.approved"
	CostEstimateRejected  = "cost_estimate.rejected"
	CostEstimateDeleted   = "cost_estimate.deleted"

	LineItemCreated = "line_item.created"
	LineItemUpdated = "line_item.updated"
	LineItemDeleted = "line_item.deleted"
)

// WorkflowEvent describes one state change of a purchase order, cost
// estimate or line item. ParentID points at the owning entity when there is one.
type WorkflowEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	ParentID   *int64    `json:"parent_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	ActorID    int64     `json:"actor_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
