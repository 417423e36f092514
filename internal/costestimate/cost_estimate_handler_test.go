package costestimate

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	costestimateerrors "go-procurement/internal/costestimate/errors"
	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"
	"go-procurement/internal/shared/money"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn  func(ctx context.Context, actor domain.Actor, req CreateCostEstimateRequest) (CostEstimateResponse, error)
	getAllFn  func(ctx context.Context, status string, purchaseOrderID int64) ([]CostEstimateResponse, error)
	approveFn func(ctx context.Context, actor domain.Actor, id int64, approved bool) (CostEstimateResponse, error)
}

func (f *fakeService) Create(ctx context.Context, actor domain.Actor, req CreateCostEstimateRequest) (CostEstimateResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeService) GetAll(ctx context.Context, status string, purchaseOrderID int64) ([]CostEstimateResponse, error) {
	return f.getAllFn(ctx, status, purchaseOrderID)
}

func (f *fakeService) GetByID(context.Context, int64) (CostEstimateResponse, error) {
	return CostEstimateResponse{}, costestimateerrors.ErrCostEstimateNotFound
}

func (f *fakeService) Update(context.Context, domain.Actor, int64, UpdateCostEstimateRequest) (CostEstimateResponse, error) {
	return CostEstimateResponse{}, nil
}

func (f *fakeService) Submit(context.Context, domain.Actor, int64) (CostEstimateResponse, error) {
	return CostEstimateResponse{}, nil
}

func (f *fakeService) Approve(ctx context.Context, actor domain.Actor, id int64, approved bool) (CostEstimateResponse, error) {
	return f.approveFn(ctx, actor, id, approved)
}

func (f *fakeService) Delete(context.Context, domain.Actor, int64) error {
	return costestimateerrors.ErrNotDraft
}

type fakeLineItemService struct {
	createFn func(ctx context.Context, actor domain.Actor, estimateID int64, req CreateLineItemRequest) (LineItemResponse, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id int64) error
}

func (f *fakeLineItemService) Create(ctx context.Context, actor domain.Actor, estimateID int64, req CreateLineItemRequest) (LineItemResponse, error) {
	return f.createFn(ctx, actor, estimateID, req)
}

func (f *fakeLineItemService) ListByEstimate(context.Context, int64) ([]LineItemResponse, error) {
	return []LineItemResponse{}, nil
}

func (f *fakeLineItemService) Update(context.Context, domain.Actor, int64, UpdateLineItemRequest) (LineItemResponse, error) {
	return LineItemResponse{}, nil
}

func (f *fakeLineItemService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return f.deleteFn(ctx, actor, id)
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, domain.Actor{UserID: 30, Role: domain.RoleBSP})
		c.Next()
	})
	r.POST("/cost-estimates", h.Create)
	r.GET("/cost-estimates", h.GetAll)
	r.GET("/cost-estimates/:id", h.GetByID)
	r.POST("/cost-estimates/:id/approve", h.Approve)
	r.DELETE("/cost-estimates/:id", h.Delete)
	r.POST("/cost-estimates/:id/line-items", h.CreateLineItem)
	r.DELETE("/line-items/:id", h.DeleteLineItem)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create_PreconditionFailed(t *testing.T) {
	h := NewHandler(&fakeService{
		createFn: func(context.Context, domain.Actor, CreateCostEstimateRequest) (CostEstimateResponse, error) {
			return CostEstimateResponse{}, costestimateerrors.ErrPurchaseOrderNotApproved
		},
	}, &fakeLineItemService{})

	w := postJSON(newTestRouter(h), "/cost-estimates", `{"purchase_order_id":2,"title":"Fit-out","total_cost":25000}`)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "PRECONDITION_FAILED")
}

func TestHandler_Create_Validation(t *testing.T) {
	h := NewHandler(&fakeService{}, &fakeLineItemService{})

	w := postJSON(newTestRouter(h), "/cost-estimates", `{"title":"Fit-out","total_cost":25000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAll_Filters(t *testing.T) {
	var gotStatus string
	var gotPO int64
	h := NewHandler(&fakeService{
		getAllFn: func(_ context.Context, status string, poID int64) ([]CostEstimateResponse, error) {
			gotStatus, gotPO = status, poID
			return []CostEstimateResponse{}, nil
		},
	}, &fakeLineItemService{})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cost-estimates?status=DRAFT&purchase_order_id=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DRAFT", gotStatus)
	assert.Equal(t, int64(2), gotPO)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cost-estimates?purchase_order_id=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	h := NewHandler(&fakeService{}, &fakeLineItemService{})

	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cost-estimates/77", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Approve(t *testing.T) {
	var gotApproved bool
	h := NewHandler(&fakeService{
		approveFn: func(_ context.Context, _ domain.Actor, id int64, approved bool) (CostEstimateResponse, error) {
			gotApproved = approved
			return CostEstimateResponse{ID: id, Status: StatusApproved}, nil
		},
	}, &fakeLineItemService{})

	w := postJSON(newTestRouter(h), "/cost-estimates/4/approve", `{"approved":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotApproved)
}

func TestHandler_Delete_NotDraft(t *testing.T) {
	h := NewHandler(&fakeService{}, &fakeLineItemService{})

	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cost-estimates/4", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_CreateLineItem(t *testing.T) {
	var gotEstimate int64
	h := NewHandler(&fakeService{}, &fakeLineItemService{
		createFn: func(_ context.Context, _ domain.Actor, estimateID int64, req CreateLineItemRequest) (LineItemResponse, error) {
			gotEstimate = estimateID
			price := money.Round(*req.UnitPrice)
			return LineItemResponse{
				ID:             11,
				CostEstimateID: estimateID,
				Quantity:       req.Quantity,
				UnitPrice:      money.NewAmount(price),
				TotalPrice:     money.NewAmount(money.LineTotal(req.Quantity, price)),
			}, nil
		},
	})
	r := newTestRouter(h)

	w := postJSON(r, "/cost-estimates/1/line-items", `{"description":"Steel shelving","quantity":50,"unit_price":"120.00"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), gotEstimate)
	assert.Contains(t, w.Body.String(), `"total_price":6000.00`)

	w = postJSON(r, "/cost-estimates/1/line-items", `{"description":"Steel shelving","quantity":0,"unit_price":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_DeleteLineItem_Forbidden(t *testing.T) {
	h := NewHandler(&fakeService{}, &fakeLineItemService{
		deleteFn: func(context.Context, domain.Actor, int64) error {
			return costestimateerrors.ErrCreatorNotBSP
		},
	})

	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/line-items/11", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
