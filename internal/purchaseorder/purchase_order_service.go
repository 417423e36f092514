package purchaseorder

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-procurement/internal/domain"
	"go-procurement/internal/events"
	"go-procurement/internal/messaging/kafka"
	purchaseordererrors "go-procurement/internal/purchaseorder/errors"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/contextutil"
	"go-procurement/internal/shared/counter"
	"go-procurement/internal/shared/metrics"
	"go-procurement/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=purchase_order_service.go -destination=mock/purchase_order_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePurchaseOrderRequest) (PurchaseOrderResponse, error)
	GetAll(ctx context.Context, status string) ([]PurchaseOrderResponse, error)
	GetByID(ctx context.Context, id int64) (PurchaseOrderResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req UpdatePurchaseOrderRequest) (PurchaseOrderResponse, error)
	Submit(ctx context.Context, actor domain.Actor, id int64) (PurchaseOrderResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id int64, approved bool) (PurchaseOrderResponse, error)
	Complete(ctx context.Context, actor domain.Actor, id int64) (PurchaseOrderResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type service struct {
	db          *gorm.DB
	repo        Repository
	counterRepo counter.Repository
	recorder    *kafka.WorkflowRecorder
	authz       domain.Authorizer
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counterRepo counter.Repository,
	recorder *kafka.WorkflowRecorder,
	authz domain.Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("purchase_order.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("purchase_order.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counterRepo: counterRepo,
		recorder:    recorder,
		authz:       authz,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreatePurchaseOrderRequest) (PurchaseOrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create purchase order", zap.Int64("actor_id", actor.UserID), zap.String("title", req.Title))

	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionCreate); err != nil {
		return PurchaseOrderResponse{}, err
	}
	if req.TotalAmount == nil {
		return PurchaseOrderResponse{}, purchaseordererrors.ErrInvalidAmount
	}
	totalAmount, ok := money.NormalizePositive(*req.TotalAmount)
	if !ok {
		return PurchaseOrderResponse{}, purchaseordererrors.ErrInvalidAmount
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PurchaseOrderResponse{}, tx.Error
	}
	defer tx.Rollback()

	seq, err := s.counterRepo.WithTx(tx).GetNextValue(ctx, counter.PurchaseOrderNumber)
	if err != nil {
		l.Error("failed to generate po number", zap.Error(err))
		return PurchaseOrderResponse{}, err
	}

	po := &PurchaseOrder{
		PONumber:    FormatPONumber(s.now(), seq),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		RequestedBy: actor.UserID,
		Status:      StatusDraft,
		TotalAmount: totalAmount,
	}

	if err := s.repo.WithTx(tx).Create(ctx, po); err != nil {
		l.Error("failed to create purchase order", zap.Error(err))
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}

	if err := s.recordEvent(ctx, tx, actor, po, events.PurchaseOrderCreated, "", StatusDraft); err != nil {
		l.Error("failed to write outbox event", zap.Error(err))
		return PurchaseOrderResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return PurchaseOrderResponse{}, err
	}

	l.Info("purchase order created", zap.Int64("purchase_order_id", po.ID), zap.String("po_number", po.PONumber))
	return mapToResponse(*po), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]PurchaseOrderResponse, error) {
	filter := Status(strings.ToUpper(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, purchaseordererrors.ErrInvalidStatus
	}

	orders, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]PurchaseOrderResponse, len(orders))
	for i, po := range orders {
		resp[i] = mapToResponse(po)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*po), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdatePurchaseOrderRequest) (PurchaseOrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionUpdate); err != nil {
		return PurchaseOrderResponse{}, err
	}
	var totalAmount decimal.Decimal
	if req.TotalAmount != nil {
		var ok bool
		if totalAmount, ok = money.NormalizePositive(*req.TotalAmount); !ok {
			return PurchaseOrderResponse{}, purchaseordererrors.ErrInvalidAmount
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PurchaseOrderResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	po, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}

	if err := s.checkOwnership(actor, po); err != nil {
		l.Warn("update purchase order rejected",
			zap.Int64("purchase_order_id", id),
			zap.String("status", string(po.Status)),
			zap.Error(err),
		)
		return PurchaseOrderResponse{}, err
	}

	if req.Title != nil {
		po.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		po.Description = req.Description
	}
	if req.TotalAmount != nil {
		po.TotalAmount = totalAmount
	}

	if err := qtx.Update(ctx, po); err != nil {
		l.Error("failed to update purchase order", zap.Int64("purchase_order_id", id), zap.Error(err))
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}

	if err := s.recordEvent(ctx, tx, actor, po, events.PurchaseOrderUpdated, po.Status, po.Status); err != nil {
		return PurchaseOrderResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return PurchaseOrderResponse{}, err
	}

	l.Info("purchase order updated", zap.Int64("purchase_order_id", id))
	return mapToResponse(*po), nil
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, id int64) (PurchaseOrderResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionSubmit); err != nil {
		return PurchaseOrderResponse{}, err
	}

	return s.transition(ctx, actor, id, StatusPendingApproval, func(po *PurchaseOrder) error {
		if po.Status != StatusDraft {
			return purchaseordererrors.ErrNotDraft
		}
		return s.checkOwnership(actor, po)
	})
}

// Approve moves a PENDING_APPROVAL order to APPROVED, or REJECTED when
// approved is false, and records the approver.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id int64, approved bool) (PurchaseOrderResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionApprove); err != nil {
		return PurchaseOrderResponse{}, err
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}

	return s.transition(ctx, actor, id, next, func(po *PurchaseOrder) error {
		if !po.Status.CanTransitionTo(next) {
			return purchaseordererrors.ErrNotPendingApproval
		}
		approver := actor.UserID
		po.ApprovedBy = &approver
		return nil
	})
}

func (s *service) Complete(ctx context.Context, actor domain.Actor, id int64) (PurchaseOrderResponse, error) {
	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionComplete); err != nil {
		return PurchaseOrderResponse{}, err
	}

	return s.transition(ctx, actor, id, StatusCompleted, func(po *PurchaseOrder) error {
		if !po.Status.CanTransitionTo(StatusCompleted) {
			return purchaseordererrors.ErrNotInProgress
		}
		return nil
	})
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionDelete); err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	po, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if po.Status != StatusDraft {
		l.Warn("delete purchase order rejected: not draft",
			zap.Int64("purchase_order_id", id),
			zap.String("status", string(po.Status)),
		)
		return purchaseordererrors.ErrNotDraft
	}
	if err := s.checkOwnership(actor, po); err != nil {
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		l.Error("failed to delete purchase order", zap.Int64("purchase_order_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.recordEvent(ctx, tx, actor, po, events.PurchaseOrderDeleted, po.Status, ""); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	l.Info("purchase order deleted", zap.Int64("purchase_order_id", id))
	return nil
}

// transition loads the order under lock, lets guard validate and adjust it,
// then persists the new status together with its outbox event.
func (s *service) transition(
	ctx context.Context,
	actor domain.Actor,
	id int64,
	next Status,
	guard func(po *PurchaseOrder) error,
) (PurchaseOrderResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PurchaseOrderResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	po, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}

	from := po.Status
	if err := guard(po); err != nil {
		l.Warn("purchase order transition rejected",
			zap.Int64("purchase_order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(next)),
			zap.Error(err),
		)
		return PurchaseOrderResponse{}, err
	}

	po.Status = next
	if err := qtx.Update(ctx, po); err != nil {
		l.Error("failed to persist purchase order transition", zap.Int64("purchase_order_id", id), zap.Error(err))
		return PurchaseOrderResponse{}, mapRepositoryError(err)
	}

	if err := s.recordEvent(ctx, tx, actor, po, transitionEventType(next), from, next); err != nil {
		l.Error("failed to write outbox event", zap.Error(err))
		return PurchaseOrderResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return PurchaseOrderResponse{}, err
	}

	metrics.RecordTransition(events.EntityPurchaseOrder, string(from), string(next))
	l.Info("purchase order transitioned",
		zap.Int64("purchase_order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.Int64("actor_id", actor.UserID),
	)
	return mapToResponse(*po), nil
}

// checkOwnership applies the requester rule: a DRAFT order belongs to its
// requester, everything else needs purchase_order:update_any.
func (s *service) checkOwnership(actor domain.Actor, po *PurchaseOrder) error {
	if po.IsEditableBy(actor.UserID) {
		return nil
	}

	err := s.authz.Authorize(actor, domain.ResourcePurchaseOrder, domain.ActionUpdateAny)
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeForbidden {
		return err
	}
	if po.Status != StatusDraft {
		return purchaseordererrors.ErrNotDraft
	}
	return purchaseordererrors.ErrNotRequester
}

func (s *service) recordEvent(
	ctx context.Context,
	tx *gorm.DB,
	actor domain.Actor,
	po *PurchaseOrder,
	eventType string,
	from, to Status,
) error {
	return s.recorder.Record(ctx, tx, events.WorkflowEvent{
		EventType:  eventType,
		EntityType: events.EntityPurchaseOrder,
		EntityID:   po.ID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actor.UserID,
	})
}
