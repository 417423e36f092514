package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-procurement/internal/audit"
	auditerrors "go-procurement/internal/audit/errors"
	"go-procurement/internal/events"
	"go-procurement/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Back-off between attempts to store the same event, growing linearly.
var (
	retryDelay    = time.Second
	maxRetryDelay = 30 * time.Second
)

// ConsumeWorkflowEvents copies every workflow event into the audit log until
// ctx is cancelled. An event whose store fails is retried in place, so the
// offset is committed only after the event is stored, already present or
// undecodable.
func ConsumeWorkflowEvents(
	ctx context.Context,
	reader MessageReader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.workflow_audit")
	log.Info("workflow audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("workflow audit consumer stopped")
				return
			}
			log.Error("fetch workflow message failed", zap.Error(err))
			continue
		}

		for attempt := 1; !handleMessage(ctx, msg, auditService, log); attempt++ {
			delay := min(time.Duration(attempt)*retryDelay, maxRetryDelay)
			log.Warn("retrying workflow event",
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
			)
			select {
			case <-ctx.Done():
				log.Info("workflow audit consumer stopped")
				return
			case <-time.After(delay):
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit workflow message failed", zap.Error(err))
		}
	}
}

// handleMessage reports whether msg may be committed.
func handleMessage(ctx context.Context, msg kafkago.Message, auditService audit.Service, log *zap.Logger) bool {
	var event events.WorkflowEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode workflow event failed",
			zap.Int64("offset", msg.Offset),
			zap.Int("partition", msg.Partition),
			zap.Error(err),
		)
		return true
	}

	if event.RequestID == "" {
		event.RequestID = headerValue(msg, "request_id")
	}
	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}

	inserted, err := auditService.Record(ctx, event, msg.Value)
	if err != nil {
		if errors.Is(err, auditerrors.ErrMalformedEvent) {
			log.Warn("skipping malformed workflow event",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
			)
			return true
		}
		log.Error("record audit log failed",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return false
	}

	if !inserted {
		log.Warn("workflow event already audited, skipping", zap.String("event_id", event.EventID))
		return true
	}

	log.Info("workflow event audited",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Int64("entity_id", event.EntityID),
	)
	return true
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
