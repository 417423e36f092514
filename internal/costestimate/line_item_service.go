package costestimate

import (
	"context"
	"strings"

	"go-procurement/internal/config"
	costestimateerrors "go-procurement/internal/costestimate/errors"
	"go-procurement/internal/domain"
	"go-procurement/internal/events"
	"go-procurement/internal/messaging/kafka"
	"go-procurement/internal/shared/contextutil"
	"go-procurement/internal/shared/money"
	"go-procurement/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=line_item_service.go -destination=mock/line_item_service_mock.go -package=mock
type LineItemService interface {
	Create(ctx context.Context, actor domain.Actor, estimateID int64, req CreateLineItemRequest) (LineItemResponse, error)
	ListByEstimate(ctx context.Context, estimateID int64) ([]LineItemResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req UpdateLineItemRequest) (LineItemResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type lineItemService struct {
	db        *gorm.DB
	estimates Repository
	items     LineItemRepository
	users     user.Repository
	recorder  *kafka.WorkflowRecorder
	authz     domain.Authorizer
	workflow  config.WorkflowConfig
	logger    *zap.Logger
}

func NewLineItemService(
	db *gorm.DB,
	estimates Repository,
	items LineItemRepository,
	users user.Repository,
	recorder *kafka.WorkflowRecorder,
	authz domain.Authorizer,
	workflow config.WorkflowConfig,
	logger ...*zap.Logger,
) LineItemService {
	l := zap.L().Named("line_item.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("line_item.service")
	}
	return &lineItemService{
		db:        db,
		estimates: estimates,
		items:     items,
		users:     users,
		recorder:  recorder,
		authz:     authz,
		workflow:  workflow,
		logger:    l,
	}
}

// Create adds an item and raises the estimate total by the item's total
// price. Unlike Update and Delete it does not re-aggregate, so a total that
// was set by hand keeps its offset.
func (s *lineItemService) Create(ctx context.Context, actor domain.Actor, estimateID int64, req CreateLineItemRequest) (LineItemResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("create line item", zap.Int64("cost_estimate_id", estimateID), zap.Int("quantity", req.Quantity))

	if err := s.authz.Authorize(actor, domain.ResourceLineItem, domain.ActionCreate); err != nil {
		return LineItemResponse{}, err
	}
	if req.UnitPrice == nil {
		return LineItemResponse{}, costestimateerrors.ErrInvalidUnitPrice
	}
	unitPrice, ok := money.NormalizePositive(*req.UnitPrice)
	if !ok {
		return LineItemResponse{}, costestimateerrors.ErrInvalidUnitPrice
	}
	if req.Quantity <= 0 {
		return LineItemResponse{}, costestimateerrors.ErrInvalidQuantity
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LineItemResponse{}, tx.Error
	}
	defer tx.Rollback()

	estimates := s.estimates.WithTx(tx)
	ce, err := estimates.FindByIDForUpdate(ctx, estimateID)
	if err != nil {
		return LineItemResponse{}, mapEstimateError(err)
	}
	if s.workflow.LineItemCreateRequiresDraft && !ce.IsMutable() {
		l.Warn("create line item rejected: estimate not draft",
			zap.Int64("cost_estimate_id", estimateID),
			zap.String("status", string(ce.Status)),
		)
		return LineItemResponse{}, costestimateerrors.ErrNotDraft
	}

	item := &LineItem{
		CostEstimateID: ce.ID,
		Description:    strings.TrimSpace(req.Description),
		Quantity:       req.Quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     money.LineTotal(req.Quantity, unitPrice),
	}

	newTotal := AddLineTotal(ce.TotalCost, item.TotalPrice)
	if !money.Fits(item.TotalPrice) || !money.Fits(newTotal) {
		return LineItemResponse{}, costestimateerrors.ErrTotalOutOfRange
	}

	if err := s.items.WithTx(tx).Create(ctx, item); err != nil {
		l.Error("failed to create line item", zap.Error(err))
		return LineItemResponse{}, err
	}

	if err := estimates.UpdateTotal(ctx, ce.ID, newTotal); err != nil {
		l.Error("failed to update estimate total", zap.Int64("cost_estimate_id", ce.ID), zap.Error(err))
		return LineItemResponse{}, err
	}

	if err := s.recordEvent(ctx, tx, actor, item, events.LineItemCreated); err != nil {
		return LineItemResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LineItemResponse{}, err
	}

	l.Info("line item created",
		zap.Int64("line_item_id", item.ID),
		zap.Int64("cost_estimate_id", ce.ID),
		zap.String("total_cost", newTotal.StringFixed(money.Scale)),
	)
	return mapLineItemToResponse(*item), nil
}

func (s *lineItemService) ListByEstimate(ctx context.Context, estimateID int64) ([]LineItemResponse, error) {
	if _, err := s.estimates.FindByID(ctx, estimateID); err != nil {
		return nil, mapEstimateError(err)
	}

	items, err := s.items.FindByEstimate(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	resp := make([]LineItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapLineItemToResponse(item)
	}
	return resp, nil
}

// Update recomputes the item's total price and then re-aggregates the
// estimate total from all of its items.
func (s *lineItemService) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateLineItemRequest) (LineItemResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceLineItem, domain.ActionUpdate); err != nil {
		return LineItemResponse{}, err
	}
	var unitPrice decimal.Decimal
	if req.UnitPrice != nil {
		var ok bool
		if unitPrice, ok = money.NormalizePositive(*req.UnitPrice); !ok {
			return LineItemResponse{}, costestimateerrors.ErrInvalidUnitPrice
		}
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return LineItemResponse{}, costestimateerrors.ErrInvalidQuantity
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LineItemResponse{}, tx.Error
	}
	defer tx.Rollback()

	items := s.items.WithTx(tx)
	item, ce, err := s.loadForChange(ctx, tx, id)
	if err != nil {
		l.Warn("update line item rejected", zap.Int64("line_item_id", id), zap.Error(err))
		return LineItemResponse{}, err
	}

	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = unitPrice
	}
	item.TotalPrice = money.LineTotal(item.Quantity, item.UnitPrice)
	if !money.Fits(item.TotalPrice) {
		return LineItemResponse{}, costestimateerrors.ErrTotalOutOfRange
	}

	if err := items.Update(ctx, item); err != nil {
		l.Error("failed to update line item", zap.Int64("line_item_id", id), zap.Error(err))
		return LineItemResponse{}, err
	}
	if err := s.reaggregate(ctx, tx, ce.ID); err != nil {
		return LineItemResponse{}, err
	}

	if err := s.recordEvent(ctx, tx, actor, item, events.LineItemUpdated); err != nil {
		return LineItemResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LineItemResponse{}, err
	}

	l.Info("line item updated", zap.Int64("line_item_id", id), zap.Int64("cost_estimate_id", ce.ID))
	return mapLineItemToResponse(*item), nil
}

// Delete removes an item from a DRAFT estimate. Only estimates created by a
// BSP user accept removals.
func (s *lineItemService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceLineItem, domain.ActionDelete); err != nil {
		return err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	item, ce, err := s.loadForChange(ctx, tx, id)
	if err != nil {
		l.Warn("delete line item rejected", zap.Int64("line_item_id", id), zap.Error(err))
		return err
	}

	creator, err := s.users.WithTx(tx).FindByID(ctx, ce.CreatedBy)
	if err != nil {
		if isNotFound(err) {
			l.Warn("delete line item rejected: estimate creator not found",
				zap.Int64("line_item_id", id),
				zap.Int64("created_by", ce.CreatedBy),
			)
			return costestimateerrors.ErrCreatorNotFound
		}
		return err
	}
	if creator.Role != domain.RoleBSP {
		l.Warn("delete line item rejected: estimate creator is not BSP",
			zap.Int64("line_item_id", id),
			zap.Int64("created_by", ce.CreatedBy),
		)
		return costestimateerrors.ErrCreatorNotBSP
	}

	if err := s.items.WithTx(tx).Delete(ctx, id); err != nil {
		l.Error("failed to delete line item", zap.Int64("line_item_id", id), zap.Error(err))
		return mapLineItemError(err)
	}
	if err := s.reaggregate(ctx, tx, ce.ID); err != nil {
		return err
	}

	if err := s.recordEvent(ctx, tx, actor, item, events.LineItemDeleted); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	l.Info("line item deleted", zap.Int64("line_item_id", id), zap.Int64("cost_estimate_id", ce.ID))
	return nil
}

// loadForChange fetches the item and locks its estimate, failing unless the
// estimate is still DRAFT.
func (s *lineItemService) loadForChange(ctx context.Context, tx *gorm.DB, id int64) (*LineItem, *CostEstimate, error) {
	item, err := s.items.WithTx(tx).FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapLineItemError(err)
	}

	ce, err := s.estimates.WithTx(tx).FindByIDForUpdate(ctx, item.CostEstimateID)
	if err != nil {
		return nil, nil, mapEstimateError(err)
	}
	if !ce.IsMutable() {
		return nil, nil, costestimateerrors.ErrNotDraft
	}
	return item, ce, nil
}

func (s *lineItemService) reaggregate(ctx context.Context, tx *gorm.DB, estimateID int64) error {
	totals, err := s.items.WithTx(tx).Totals(ctx, estimateID)
	if err != nil {
		s.logger.Error("failed to aggregate line items", zap.Int64("cost_estimate_id", estimateID), zap.Error(err))
		return err
	}
	total := money.Round(totals.Sum)
	if !money.Fits(total) {
		return costestimateerrors.ErrTotalOutOfRange
	}
	return s.estimates.WithTx(tx).UpdateTotal(ctx, estimateID, total)
}

func (s *lineItemService) recordEvent(ctx context.Context, tx *gorm.DB, actor domain.Actor, item *LineItem, eventType string) error {
	parent := item.CostEstimateID
	return s.recorder.Record(ctx, tx, events.WorkflowEvent{
		EventType:  eventType,
		EntityType: events.EntityLineItem,
		EntityID:   item.ID,
		ParentID:   &parent,
		ActorID:    actor.UserID,
	})
}
