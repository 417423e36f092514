package audit

type AuditLogResponse struct {
	ID         int64  `json:"id"`
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	ParentID   *int64 `json:"parent_id,omitempty"`
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`
	ActorID    int64  `json:"actor_id"`
	RequestID  string `json:"request_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type ListFilter struct {
	EntityType string
	EntityID   int64
}

func mapToResponse(l AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		EventID:    l.EventID,
		EventType:  l.EventType,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		ParentID:   l.ParentID,
		FromStatus: l.FromStatus,
		ToStatus:   l.ToStatus,
		ActorID:    l.ActorID,
		RequestID:  l.RequestID,
		OccurredAt: l.OccurredAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
