package purchaseorder

import (
	"fmt"
	"time"

	"go-procurement/internal/events"
)

// CanTransitionTo reports whether the regular workflow allows moving from s
// to next. Cost estimate approval forces PROGRESS without consulting it.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingApproval
	case StatusPendingApproval:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusProgress
	case StatusProgress:
		return next == StatusCompleted
	case StatusCompleted, StatusRejected:
		return false
	default:
		return false
	}
}

// IsEditableBy reports whether a requester without update_any may still
// change or remove the order.
func (po *PurchaseOrder) IsEditableBy(userID int64) bool {
	return po.Status == StatusDraft && po.RequestedBy == userID
}

func transitionEventType(to Status) string {
	switch to {
	case StatusPendingApproval:
		return events.PurchaseOrderSubmitted
	case StatusApproved:
		return events.PurchaseOrderApproved
	case StatusRejected:
		return events.PurchaseOrderRejected
	case StatusProgress:
		return events.PurchaseOrderProgressed
	case StatusCompleted:
		return events.PurchaseOrderCompleted
	default:
		return events.PurchaseOrderUpdated
	}
}

// FormatPONumber renders PO-<year>-<6 digit sequence>.
func FormatPONumber(at time.Time, seq int64) string {
	return fmt.Sprintf("PO-%d-%06d", at.Year(), seq)
}
