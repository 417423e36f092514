package audit

import "time"

// AuditLog is the persisted copy of one workflow event. EventID is unique so
// a redelivered message is stored once.
type AuditLog struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	EventID    string    `gorm:"column:event_id;type:uuid;not null;uniqueIndex:uq_audit_logs_event_id"`
	EventType  string    `gorm:"column:event_type;type:varchar(100);not null"`
	EntityType string    `gorm:"column:entity_type;type:varchar(50);not null;index:idx_audit_logs_entity"`
	EntityID   int64     `gorm:"column:entity_id;not null;index:idx_audit_logs_entity"`
	ParentID   *int64    `gorm:"column:parent_id"`
	FromStatus string    `gorm:"column:from_status;type:varchar(30)"`
	ToStatus   string    `gorm:"column:to_status;type:varchar(30)"`
	ActorID    int64     `gorm:"column:actor_id;not null"`
	RequestID  string    `gorm:"column:request_id;type:varchar(64)"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
