package costestimate

import "go-procurement/internal/events"

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingApproval
	case StatusPendingApproval:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	default:
		return false
	}
}

// IsMutable reports whether the estimate and its line items may still change.
func (ce *CostEstimate) IsMutable() bool {
	return ce.Status == StatusDraft
}

func transitionEventType(to Status) string {
	switch to {
	case StatusPendingApproval:
		return events.CostEstimateSubmitted
	case StatusApproved:
		return events.CostEstimateApproved
	case StatusRejected:
		return events.CostEstimateRejected
	default:
		return events.CostEstimateUpdated
	}
}
