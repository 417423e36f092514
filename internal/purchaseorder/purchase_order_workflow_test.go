package purchaseorder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []Status{StatusDraft, StatusPendingApproval, StatusApproved, StatusProgress, StatusCompleted, StatusRejected}
	allowed := map[Status][]Status{
		StatusDraft:           {StatusPendingApproval},
		StatusPendingApproval: {StatusApproved, StatusRejected},
		StatusApproved:        {StatusProgress},
		StatusProgress:        {StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, Status("ARCHIVED").CanTransitionTo(StatusDraft))
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusProgress.Valid())
	assert.False(t, Status("draft").Valid())
}

func TestFormatPONumber(t *testing.T) {
	at := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "PO-2025-000001", FormatPONumber(at, 1))
	assert.Equal(t, "PO-2025-123456", FormatPONumber(at, 123456))
}

func TestPurchaseOrder_IsEditableBy(t *testing.T) {
	po := &PurchaseOrder{RequestedBy: 10, Status: StatusDraft}
	assert.True(t, po.IsEditableBy(10))
	assert.False(t, po.IsEditableBy(11))

	po.Status = StatusPendingApproval
	assert.False(t, po.IsEditableBy(10))
}
