package audit

import (
	"context"
	"strings"

	auditerrors "go-procurement/internal/audit/errors"
	"go-procurement/internal/events"
	"go-procurement/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, evt events.WorkflowEvent, payload []byte) (bool, error)
	GetAll(ctx context.Context, entityType string, entityID int64) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Record stores evt once. It returns false for an event that was already
// recorded.
func (s *service) Record(ctx context.Context, evt events.WorkflowEvent, payload []byte) (bool, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if evt.EventID == "" || evt.EventType == "" || !validEntityType(evt.EntityType) || evt.EntityID <= 0 {
		return false, auditerrors.ErrMalformedEvent
	}

	entry := &AuditLog{
		EventID:    evt.EventID,
		EventType:  evt.EventType,
		EntityType: evt.EntityType,
		EntityID:   evt.EntityID,
		ParentID:   evt.ParentID,
		FromStatus: evt.FromStatus,
		ToStatus:   evt.ToStatus,
		ActorID:    evt.ActorID,
		RequestID:  evt.RequestID,
		OccurredAt: evt.OccurredAt,
		Payload:    payload,
	}

	inserted, err := s.repo.Create(ctx, entry)
	if err != nil {
		l.Error("failed to record audit log", zap.String("event_id", evt.EventID), zap.Error(err))
		return false, err
	}
	if !inserted {
		l.Debug("audit log already recorded", zap.String("event_id", evt.EventID))
	}
	return inserted, nil
}

func (s *service) GetAll(ctx context.Context, entityType string, entityID int64) ([]AuditLogResponse, error) {
	entityType = strings.ToLower(strings.TrimSpace(entityType))
	if entityType != "" && !validEntityType(entityType) {
		return nil, auditerrors.ErrInvalidEntityType
	}
	if entityType == "" && entityID > 0 {
		return nil, auditerrors.ErrEntityIDWithoutType
	}

	logs, err := s.repo.FindAll(ctx, ListFilter{EntityType: entityType, EntityID: entityID})
	if err != nil {
		return nil, err
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, entry := range logs {
		resp[i] = mapToResponse(entry)
	}
	return resp, nil
}

func validEntityType(t string) bool {
	switch t {
	case events.EntityPurchaseOrder, events.EntityCostEstimate, events.EntityLineItem:
		return true
	default:
		return false
	}
}
