package costestimate

import (
	"context"
	"strings"

	"go-procurement/internal/config"
	costestimateerrors "go-procurement/internal/costestimate/errors"
	"go-procurement/internal/domain"
	"go-procurement/internal/events"
	"go-procurement/internal/messaging/kafka"
	"go-procurement/internal/purchaseorder"
	"go-procurement/internal/shared/contextutil"
	"go-procurement/internal/shared/metrics"
	"go-procurement/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=cost_estimate_service.go -destination=mock/cost_estimate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateCostEstimateRequest) (CostEstimateResponse, error)
	GetAll(ctx context.Context, status string, purchaseOrderID int64) ([]CostEstimateResponse, error)
	GetByID(ctx context.Context, id int64) (CostEstimateResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req UpdateCostEstimateRequest) (CostEstimateResponse, error)
	Submit(ctx context.Context, actor domain.Actor, id int64) (CostEstimateResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id int64, approved bool) (CostEstimateResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	items    LineItemRepository
	orders   purchaseorder.Repository
	recorder *kafka.WorkflowRecorder
	authz    domain.Authorizer
	workflow config.WorkflowConfig
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	items LineItemRepository,
	orders purchaseorder.Repository,
	recorder *kafka.WorkflowRecorder,
	authz domain.Authorizer,
	workflow config.WorkflowConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("cost_estimate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cost_estimate.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		items:    items,
		orders:   orders,
		recorder: recorder,
		authz:    authz,
		workflow: workflow,
		logger:   l,
	}
}

// Create opens a DRAFT estimate under an APPROVED purchase order.
func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateCostEstimateRequest) (CostEstimateResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create cost estimate",
		zap.Int64("actor_id", actor.UserID),
		zap.Int64("purchase_order_id", req.PurchaseOrderID),
	)

	if err := s.authz.Authorize(actor, domain.ResourceCostEstimate, domain.ActionCreate); err != nil {
		return CostEstimateResponse{}, err
	}
	if req.TotalCost == nil {
		return CostEstimateResponse{}, costestimateerrors.ErrInvalidTotalCost
	}
	totalCost, ok := money.NormalizePositive(*req.TotalCost)
	if !ok {
		return CostEstimateResponse{}, costestimateerrors.ErrInvalidTotalCost
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CostEstimateResponse{}, tx.Error
	}
	defer tx.Rollback()

	po, err := s.orders.WithTx(tx).FindByID(ctx, req.PurchaseOrderID)
	if err != nil {
		return CostEstimateResponse{}, mapPurchaseOrderError(err)
	}
	if po.Status != purchaseorder.StatusApproved {
		l.Warn("create cost estimate rejected: purchase order not approved",
			zap.Int64("purchase_order_id", po.ID),
			zap.String("status", string(po.Status)),
		)
		return CostEstimateResponse{}, costestimateerrors.ErrPurchaseOrderNotApproved
	}

	ce := &CostEstimate{
		PurchaseOrderID: po.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		CreatedBy:       actor.UserID,
		Status:          StatusDraft,
		TotalCost:       totalCost,
	}

	if err := s.repo.WithTx(tx).Create(ctx, ce); err != nil {
		l.Error("failed to create cost estimate", zap.Error(err))
		return CostEstimateResponse{}, err
	}

	if err := s.recordEvent(ctx, tx, actor, ce, events.CostEstimateCreated, "", StatusDraft); err != nil {
		return CostEstimateResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CostEstimateResponse{}, err
	}

	l.Info("cost estimate created", zap.Int64("cost_estimate_id", ce.ID), zap.Int64("purchase_order_id", po.ID))
	return mapToResponse(*ce), nil
}

func (s *service) GetAll(ctx context.Context, status string, purchaseOrderID int64) ([]CostEstimateResponse, error) {
	filter := ListFilter{
		Status:          Status(strings.ToUpper(strings.TrimSpace(status))),
		PurchaseOrderID: purchaseOrderID,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, costestimateerrors.ErrInvalidStatus
	}

	estimates, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]CostEstimateResponse, len(estimates))
	for i, ce := range estimates {
		resp[i] = mapToResponse(ce)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (CostEstimateResponse, error) {
	ce, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CostEstimateResponse{}, mapEstimateError(err)
	}
	return mapToResponse(*ce), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateCostEstimateRequest) (CostEstimateResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceCostEstimate, domain.ActionUpdate); err != nil {
		return CostEstimateResponse{}, err
	}
	var totalCost decimal.Decimal
	if req.TotalCost != nil {
		var ok bool
		if totalCost, ok = money.NormalizePositive(*req.TotalCost); !ok {
			return CostEstimateResponse{}, costestimateerrors.ErrInvalidTotalCost
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CostEstimateResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ce, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return CostEstimateResponse{}, mapEstimateError(err)
	}
	if !ce.IsMutable() {
		l.Warn("update cost estimate rejected: not draft",
			zap.Int64("cost_estimate_id", id),
			zap.String("status", string(ce.Status)),
		)
		return CostEstimateResponse{}, costestimateerrors.ErrNotDraft
	}

	if req.Title != nil {
		ce.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		ce.Description = req.Description
	}
	if req.TotalCost != nil {
		ce.TotalCost = totalCost
	} else {
		totals, err := s.items.WithTx(tx).Totals(ctx, id)
		if err != nil {
			l.Error("failed to aggregate line items", zap.Int64("cost_estimate_id", id), zap.Error(err))
			return CostEstimateResponse{}, err
		}
		ce.TotalCost = ResolveOmittedTotal(s.workflow.EstimateTotalPolicy, ce.TotalCost, totals)
		if !money.Fits(ce.TotalCost) {
			return CostEstimateResponse{}, costestimateerrors.ErrTotalOutOfRange
		}
	}

	if err := qtx.Update(ctx, ce); err != nil {
		l.Error("failed to update cost estimate", zap.Int64("cost_estimate_id", id), zap.Error(err))
		return CostEstimateResponse{}, err
	}

	if err := s.recordEvent(ctx, tx, actor, ce, events.CostEstimateUpdated, ce.Status, ce.Status); err != nil {
		return CostEstimateResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CostEstimateResponse{}, err
	}

	l.Info("cost estimate updated", zap.Int64("cost_estimate_id", id), zap.String("total_cost", ce.TotalCost.StringFixed(money.Scale)))
	return mapToResponse(*ce), nil
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, id int64) (CostEstimateResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceCostEstimate, domain.ActionSubmit); err != nil {
		return CostEstimateResponse{}, err
	}

	return s.transition(ctx, actor, id, StatusPendingApproval, func(ce *CostEstimate) error {
		if !ce.Status.CanTransitionTo(StatusPendingApproval) {
			return costestimateerrors.ErrNotDraft
		}
		return nil
	}, nil)
}

// Approve decides a PENDING_APPROVAL estimate. Approval also moves the
// parent purchase order to PROGRESS in the same transaction, whatever its
// current status.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id int64, approved bool) (CostEstimateResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourceCostEstimate, domain.ActionApprove); err != nil {
		return CostEstimateResponse{}, err
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}

	guard := func(ce *CostEstimate) error {
		if !ce.Status.CanTransitionTo(next) {
			return costestimateerrors.ErrNotPendingApproval
		}
		approver := actor.UserID
		ce.ApprovedBy = &approver
		return nil
	}

	var after func(tx *gorm.DB, ce *CostEstimate) (func(), error)
	if approved {
		after = func(tx *gorm.DB, ce *CostEstimate) (func(), error) {
			return s.progressPurchaseOrder(ctx, tx, actor, ce)
		}
	}

	return s.transition(ctx, actor, id, next, guard, after)
}

func (s *service) progressPurchaseOrder(ctx context.Context, tx *gorm.DB, actor domain.Actor, ce *CostEstimate) (func(), error) {
	orders := s.orders.WithTx(tx)

	po, err := orders.FindByIDForUpdate(ctx, ce.PurchaseOrderID)
	if err != nil {
		return nil, mapPurchaseOrderError(err)
	}

	from := po.Status
	if err := orders.UpdateStatus(ctx, po.ID, purchaseorder.StatusProgress); err != nil {
		return nil, mapPurchaseOrderError(err)
	}

	err = s.recorder.Record(ctx, tx, events.WorkflowEvent{
		EventType:  events.PurchaseOrderProgressed,
		EntityType: events.EntityPurchaseOrder,
		EntityID:   po.ID,
		FromStatus: string(from),
		ToStatus:   string(purchaseorder.StatusProgress),
		ActorID:    actor.UserID,
	})
	if err != nil {
		return nil, err
	}

	return func() {
		metrics.RecordTransition(events.EntityPurchaseOrder, string(from), string(purchaseorder.StatusProgress))
	}, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceCostEstimate, domain.ActionDelete); err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ce, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return mapEstimateError(err)
	}
	if !ce.IsMutable() {
		l.Warn("delete cost estimate rejected: not draft",
			zap.Int64("cost_estimate_id", id),
			zap.String("status", string(ce.Status)),
		)
		return costestimateerrors.ErrNotDraft
	}

	if err := s.items.WithTx(tx).DeleteByEstimate(ctx, id); err != nil {
		l.Error("failed to delete line items", zap.Int64("cost_estimate_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		l.Error("failed to delete cost estimate", zap.Int64("cost_estimate_id", id), zap.Error(err))
		return mapEstimateError(err)
	}

	if err := s.recordEvent(ctx, tx, actor, ce, events.CostEstimateDeleted, ce.Status, ""); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	l.Info("cost estimate deleted", zap.Int64("cost_estimate_id", id))
	return nil
}

// transition locks the estimate, runs guard, persists the new status with its
// event and then runs after, if any, inside the same transaction. after may
// return a callback that only runs once the commit succeeded.
func (s *service) transition(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	next Status,
	guard func(ce *CostEstimate) error,
	after func(tx *gorm.DB, ce *CostEstimate) (func(), error),
) (CostEstimateResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CostEstimateResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ce, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return CostEstimateResponse{}, mapEstimateError(err)
	}

	from := ce.Status
	if err := guard(ce); err != nil {
		l.Warn("cost estimate transition rejected",
			zap.Int64("cost_estimate_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(next)),
			zap.Error(err),
		)
		return CostEstimateResponse{}, err
	}

	ce.Status = next
	if err := qtx.Update(ctx, ce); err != nil {
		l.Error("failed to persist cost estimate transition", zap.Int64("cost_estimate_id", id), zap.Error(err))
		return CostEstimateResponse{}, err
	}

	if err := s.recordEvent(ctx, tx, actor, ce, transitionEventType(next), from, next); err != nil {
		return CostEstimateResponse{}, err
	}

	var onCommit func()
	if after != nil {
		onCommit, err = after(tx, ce)
		if err != nil {
			l.Error("cost estimate transition side effect failed", zap.Int64("cost_estimate_id", id), zap.Error(err))
			return CostEstimateResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return CostEstimateResponse{}, err
	}

	metrics.RecordTransition(events.EntityCostEstimate, string(from), string(next))
	if onCommit != nil {
		onCommit()
	}
	l.Info("cost estimate transitioned",
		zap.Int64("cost_estimate_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.Int64("actor_id", actor.UserID),
	)
	return mapToResponse(*ce), nil
}

func (s *service) recordEvent(
	ctx context.Context,
	tx *gorm.DB,
	actor domain.Actor,
	ce *CostEstimate,
	eventType string,
	from, to Status,
) error {
	parent := ce.PurchaseOrderID
	return s.recorder.Record(ctx, tx, events.WorkflowEvent{
		EventType:  eventType,
		EntityType: events.EntityCostEstimate,
		EntityID:   ce.ID,
		ParentID:   &parent,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actor.UserID,
	})
}
