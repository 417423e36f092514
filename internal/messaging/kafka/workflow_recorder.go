package kafka

import (
	"context"

	"go-procurement/internal/events"
	"go-procurement/internal/shared/contextutil"

	"gorm.io/gorm"
)

// WorkflowRecorder writes workflow events into the outbox as part of the
// caller's transaction, so an event exists exactly when its state change does.
type WorkflowRecorder struct {
	repo  OutboxRepository
	topic string
}

func NewWorkflowRecorder(repo OutboxRepository, topic string) *WorkflowRecorder {
	if topic == "" {
		topic = events.WorkflowTopic
	}
	return &WorkflowRecorder{repo: repo, topic: topic}
}

func (r *WorkflowRecorder) Record(ctx context.Context, tx *gorm.DB, evt events.WorkflowEvent) error {
	if evt.RequestID == "" {
		evt.RequestID = contextutil.GetRequestID(ctx)
	}

	row, err := NewWorkflowOutboxEvent(r.topic, evt)
	if err != nil {
		return err
	}
	return r.repo.WithTx(tx).Create(ctx, row)
}
