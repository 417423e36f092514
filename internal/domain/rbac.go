package domain

// Resources guarded by the authorization policy.
const (
	ResourceUser          = "user"
	ResourcePurchaseOrder = "purchase_order"
	ResourceCostEstimate  = "cost_estimate"
	ResourceLineItem      = "line_item"
	ResourceAudit         = "audit"
)

const (
	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionSubmit   = "submit"
	ActionApprove  = "approve"
	ActionComplete = "complete"
	// ActionUpdateAny lifts the DRAFT/owner restriction on purchase order edits.
	ActionUpdateAny = "update_any"
)

//go:generate mockgen -source=rbac.go -destination=mock/authorizer_mock.go -package=mock

// Authorizer decides whether an actor may perform action on resource.
// Implementations return a forbidden AppError when the answer is no.
type Authorizer interface {
	Authorize(actor Actor, resource, action string) error
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type RolePermissionsResponse struct {
	Role        string               `json:"role"`
	Inherits    []string             `json:"inherits"`
	Permissions []PermissionResponse `json:"permissions"`
}
