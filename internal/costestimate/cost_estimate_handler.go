package costestimate

import (
	"net/http"
	"strconv"

	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/contextutil"
	"go-procurement/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc       Service
	lineItems LineItemService
	logger    *zap.Logger
}

func NewHandler(service Service, lineItems LineItemService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("cost_estimate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cost_estimate.handler")
	}
	return &Handler{svc: service, lineItems: lineItems, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorAndID(c *gin.Context) (domain.Actor, int64, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return domain.Actor{}, 0, false
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		writeServiceError(c, err)
		return domain.Actor{}, 0, false
	}
	return actor, id, true
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := contextutil.GetLogger(ctx, h.logger)

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req CreateCostEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Debug("create cost estimate bind failed", zap.Error(err))
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Create(ctx, actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll accepts optional ?status and ?purchase_order_id filters.
func (h *Handler) GetAll(c *gin.Context) {
	var poID int64
	if raw := c.Query("purchase_order_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeServiceError(c, apperror.InvalidField("purchase_order_id"))
			return
		}
		poID = parsed
	}

	resp, err := h.svc.GetAll(c.Request.Context(), c.Query("status"), poID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req UpdateCostEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req ApproveCostEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Approve(c.Request.Context(), actor, id, *req.Approved)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true}, nil)
}

func (h *Handler) ListLineItems(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.lineItems.ListByEstimate(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateLineItem(c *gin.Context) {
	actor, estimateID, ok := actorAndID(c)
	if !ok {
		return
	}

	var req CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.lineItems.Create(c.Request.Context(), actor, estimateID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateLineItem(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.lineItems.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteLineItem(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	if err := h.lineItems.Delete(c.Request.Context(), actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true}, nil)
}
