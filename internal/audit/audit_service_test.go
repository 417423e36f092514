package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-procurement/internal/audit"
	auditerrors "go-procurement/internal/audit/errors"
	"go-procurement/internal/audit/mock"
	"go-procurement/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func approvedEvent() events.WorkflowEvent {
	return events.WorkflowEvent{
		EventID:    "5f0c7c55-8c8e-4a43-a1a4-8d0f1b2f9e11",
		EventType:  events.PurchaseOrderApproved,
		EntityType: events.EntityPurchaseOrder,
		EntityID:   12,
		FromStatus: "PENDING_APPROVAL",
		ToStatus:   "APPROVED",
		ActorID:    3,
		RequestID:  "req-1",
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	evt := approvedEvent()
	payload := []byte(`{"event_id":"x"}`)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *audit.AuditLog) (bool, error) {
			assert.Equal(t, evt.EventID, entry.EventID)
			assert.Equal(t, int64(12), entry.EntityID)
			assert.Equal(t, "APPROVED", entry.ToStatus)
			assert.Equal(t, "req-1", entry.RequestID)
			assert.Equal(t, payload, entry.Payload)
			return true, nil
		})

	inserted, err := svc.Record(context.Background(), evt, payload)
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestService_Record_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil)

	inserted, err := svc.Record(context.Background(), approvedEvent(), nil)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestService_Record_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	cases := map[string]func(e *events.WorkflowEvent){
		"no event id":    func(e *events.WorkflowEvent) { e.EventID = "" },
		"no event type":  func(e *events.WorkflowEvent) { e.EventType = "" },
		"unknown entity": func(e *events.WorkflowEvent) { e.EntityType = "invoice" },
		"no entity id":   func(e *events.WorkflowEvent) { e.EntityID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			evt := approvedEvent()
			mutate(&evt)
			_, err := svc.Record(context.Background(), evt, nil)
			assert.ErrorIs(t, err, auditerrors.ErrMalformedEvent)
		})
	}
}

func TestService_Record_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	boom := errors.New("db down")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, boom)

	_, err := svc.Record(context.Background(), approvedEvent(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.EXPECT().
		FindAll(gomock.Any(), audit.ListFilter{EntityType: events.EntityCostEstimate, EntityID: 4}).
		Return([]audit.AuditLog{
			{ID: 1, EventID: "a", EventType: events.CostEstimateCreated, EntityType: events.EntityCostEstimate, EntityID: 4, ToStatus: "DRAFT", OccurredAt: at},
			{ID: 2, EventID: "b", EventType: events.CostEstimateSubmitted, EntityType: events.EntityCostEstimate, EntityID: 4, FromStatus: "DRAFT", ToStatus: "PENDING_APPROVAL", OccurredAt: at.Add(time.Minute)},
		}, nil)

	resp, err := svc.GetAll(context.Background(), " Cost_Estimate ", 4)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "2026-03-01T10:00:00Z", resp[0].OccurredAt)
	assert.Equal(t, "PENDING_APPROVAL", resp[1].ToStatus)
}

func TestService_GetAll_InvalidFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := audit.NewService(repo, zap.NewNop())

	_, err := svc.GetAll(context.Background(), "invoice", 0)
	assert.ErrorIs(t, err, auditerrors.ErrInvalidEntityType)

	_, err = svc.GetAll(context.Background(), "", 5)
	assert.ErrorIs(t, err, auditerrors.ErrEntityIDWithoutType)
}
