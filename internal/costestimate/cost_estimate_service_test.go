package costestimate_test

import (
	"context"
	"testing"

	"go-procurement/internal/config"
	"go-procurement/internal/costestimate"
	costestimateerrors "go-procurement/internal/costestimate/errors"
	ceMock "go-procurement/internal/costestimate/mock"
	"go-procurement/internal/domain"
	"go-procurement/internal/events"
	"go-procurement/internal/messaging/kafka"
	kafkaMock "go-procurement/internal/messaging/kafka/mock"
	"go-procurement/internal/purchaseorder"
	poMock "go-procurement/internal/purchaseorder/mock"
	"go-procurement/internal/rbac/rbactest"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/dbtest"
	"go-procurement/internal/shared/money"
	userMock "go-procurement/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	bsp       = domain.Actor{UserID: 30, Role: domain.RoleBSP}
	dau       = domain.Actor{UserID: 20, Role: domain.RoleDAU}
	unitKerja = domain.Actor{UserID: 10, Role: domain.RoleUnitKerja}
)

type fixture struct {
	estimates *ceMock.MockRepository
	items     *ceMock.MockLineItemRepository
	orders    *poMock.MockRepository
	users     *userMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	sql       sqlmock.Sqlmock
	db        *gorm.DB
	recorded  []kafka.OutboxEvent
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	db, sqlMock := dbtest.New(t)

	f := &fixture{
		estimates: ceMock.NewMockRepository(ctrl),
		items:     ceMock.NewMockLineItemRepository(ctrl),
		orders:    poMock.NewMockRepository(ctrl),
		users:     userMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		sql:       sqlMock,
		db:        db,
	}

	f.estimates.EXPECT().WithTx(gomock.Any()).Return(f.estimates).AnyTimes()
	f.items.EXPECT().WithTx(gomock.Any()).Return(f.items).AnyTimes()
	f.orders.EXPECT().WithTx(gomock.Any()).Return(f.orders).AnyTimes()
	f.users.EXPECT().WithTx(gomock.Any()).Return(f.users).AnyTimes()
	f.outbox.EXPECT().WithTx(gomock.Any()).Return(f.outbox).AnyTimes()
	f.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
		f.recorded = append(f.recorded, ev)
		return nil
	}).AnyTimes()

	return f
}

func (f *fixture) service(t *testing.T, wf config.WorkflowConfig) costestimate.Service {
	return costestimate.NewService(f.db, f.estimates, f.items, f.orders, kafka.NewWorkflowRecorder(f.outbox, ""), rbactest.New(t), wf)
}

func (f *fixture) lineItems(t *testing.T, wf config.WorkflowConfig) costestimate.LineItemService {
	return costestimate.NewLineItemService(f.db, f.estimates, f.items, f.users, kafka.NewWorkflowRecorder(f.outbox, ""), rbactest.New(t), wf)
}

func (f *fixture) eventTypes() []string {
	types := make([]string, len(f.recorded))
	for i, ev := range f.recorded {
		types[i] = ev.EventType
	}
	return types
}

func dec(s string) *decimal.Decimal {
	d := money.MustParse(s)
	return &d
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Approved Purchase Order", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, true)

		f.orders.EXPECT().FindByID(ctx, int64(2)).
			Return(&purchaseorder.PurchaseOrder{ID: 2, Status: purchaseorder.StatusApproved}, nil)
		f.estimates.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ce *costestimate.CostEstimate) error {
			ce.ID = 1
			return nil
		})

		resp, err := svc.Create(ctx, bsp, costestimate.CreateCostEstimateRequest{
			PurchaseOrderID: 2,
			Title:           "Renovation",
			TotalCost:       dec("25000.00"),
		})

		require.NoError(t, err)
		assert.Equal(t, costestimate.StatusDraft, resp.Status)
		assert.Equal(t, int64(30), resp.CreatedBy)
		assert.Equal(t, "25000.00", resp.TotalCost.StringFixed(2))
		assert.Equal(t, []string{events.CostEstimateCreated}, f.eventTypes())
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Missing Purchase Order", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		f.orders.EXPECT().FindByID(ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, bsp, costestimate.CreateCostEstimateRequest{
			PurchaseOrderID: 9, Title: "x", TotalCost: dec("1"),
		})
		assert.ErrorIs(t, err, costestimateerrors.ErrPurchaseOrderNotFound)
		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})

	t.Run("Purchase Order Not Approved", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		f.orders.EXPECT().FindByID(ctx, int64(3)).
			Return(&purchaseorder.PurchaseOrder{ID: 3, Status: purchaseorder.StatusPendingApproval}, nil)

		_, err := svc.Create(ctx, bsp, costestimate.CreateCostEstimateRequest{
			PurchaseOrderID: 3, Title: "x", TotalCost: dec("1"),
		})
		assert.ErrorIs(t, err, costestimateerrors.ErrPurchaseOrderNotApproved)
		assert.Equal(t, 412, apperror.ToHTTP(err).Status)
		assert.Empty(t, f.recorded)
	})

	t.Run("Role Cannot Create", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())

		_, err := svc.Create(ctx, unitKerja, costestimate.CreateCostEstimateRequest{
			PurchaseOrderID: 2, Title: "x", TotalCost: dec("1"),
		})
		assert.Equal(t, 403, apperror.ToHTTP(err).Status)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Approval Moves Purchase Order To Progress", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, true)

		ce := &costestimate.CostEstimate{ID: 4, PurchaseOrderID: 2, Status: costestimate.StatusPendingApproval}
		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(4)).Return(ce, nil)
		f.estimates.EXPECT().Update(ctx, ce).Return(nil)
		f.orders.EXPECT().FindByIDForUpdate(ctx, int64(2)).
			Return(&purchaseorder.PurchaseOrder{ID: 2, Status: purchaseorder.StatusApproved}, nil)
		f.orders.EXPECT().UpdateStatus(ctx, int64(2), purchaseorder.StatusProgress).Return(nil)

		resp, err := svc.Approve(ctx, dau, 4, true)

		require.NoError(t, err)
		assert.Equal(t, costestimate.StatusApproved, resp.Status)
		assert.Equal(t, int64(20), *resp.ApprovedBy)
		assert.Equal(t, []string{events.CostEstimateApproved, events.PurchaseOrderProgressed}, f.eventTypes())
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Rejection Leaves Purchase Order Alone", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, true)

		ce := &costestimate.CostEstimate{ID: 4, PurchaseOrderID: 2, Status: costestimate.StatusPendingApproval}
		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(4)).Return(ce, nil)
		f.estimates.EXPECT().Update(ctx, ce).Return(nil)

		resp, err := svc.Approve(ctx, dau, 4, false)

		require.NoError(t, err)
		assert.Equal(t, costestimate.StatusRejected, resp.Status)
		assert.Equal(t, []string{events.CostEstimateRejected}, f.eventTypes())
	})

	t.Run("Purchase Order Failure Rolls Back Both", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		ce := &costestimate.CostEstimate{ID: 4, PurchaseOrderID: 2, Status: costestimate.StatusPendingApproval}
		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(4)).Return(ce, nil)
		f.estimates.EXPECT().Update(ctx, ce).Return(nil)
		f.orders.EXPECT().FindByIDForUpdate(ctx, int64(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Approve(ctx, dau, 4, true)
		assert.ErrorIs(t, err, costestimateerrors.ErrPurchaseOrderNotFound)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Draft Is Invalid State", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(4)).
			Return(&costestimate.CostEstimate{ID: 4, Status: costestimate.StatusDraft}, nil)

		_, err := svc.Approve(ctx, dau, 4, true)
		assert.ErrorIs(t, err, costestimateerrors.ErrNotPendingApproval)
		assert.Empty(t, f.recorded)
	})

	t.Run("BSP Cannot Approve", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())

		_, err := svc.Approve(ctx, bsp, 4, true)
		assert.Equal(t, 403, apperror.ToHTTP(err).Status)
	})
}

func TestService_Update_TotalPolicy(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		policy config.TotalPolicy
		totals costestimate.ItemTotals
		want   string
	}{
		{"preserve without items", config.PreserveWhenEmpty, costestimate.ItemTotals{Sum: decimal.Zero}, "25000.00"},
		{"preserve with items", config.PreserveWhenEmpty, costestimate.ItemTotals{Sum: money.MustParse("6000.00"), Count: 1}, "6000.00"},
		{"recompute without items", config.Recompute, costestimate.ItemTotals{Sum: decimal.Zero}, "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.service(t, config.WorkflowConfig{EstimateTotalPolicy: tc.policy, LineItemCreateRequiresDraft: true})
			dbtest.ExpectTx(f.sql, true)

			ce := &costestimate.CostEstimate{ID: 1, Title: "Old", Status: costestimate.StatusDraft, TotalCost: money.MustParse("25000.00")}
			f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(1)).Return(ce, nil)
			f.items.EXPECT().Totals(ctx, int64(1)).Return(tc.totals, nil)
			f.estimates.EXPECT().Update(ctx, ce).Return(nil)

			title := "New"
			resp, err := svc.Update(ctx, bsp, 1, costestimate.UpdateCostEstimateRequest{Title: &title})

			require.NoError(t, err)
			assert.Equal(t, "New", resp.Title)
			assert.Equal(t, tc.want, resp.TotalCost.StringFixed(2))
		})
	}

	t.Run("Explicit Total Skips Aggregation", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, true)

		ce := &costestimate.CostEstimate{ID: 1, Status: costestimate.StatusDraft, TotalCost: money.MustParse("25000.00")}
		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(1)).Return(ce, nil)
		f.estimates.EXPECT().Update(ctx, ce).Return(nil)

		resp, err := svc.Update(ctx, bsp, 1, costestimate.UpdateCostEstimateRequest{TotalCost: dec("30000")})
		require.NoError(t, err)
		assert.Equal(t, "30000.00", resp.TotalCost.StringFixed(2))
	})

	t.Run("Not Draft", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(1)).
			Return(&costestimate.CostEstimate{ID: 1, Status: costestimate.StatusApproved}, nil)

		_, err := svc.Update(ctx, bsp, 1, costestimate.UpdateCostEstimateRequest{TotalCost: dec("1")})
		assert.ErrorIs(t, err, costestimateerrors.ErrNotDraft)
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.service(t, config.DefaultWorkflow())
	dbtest.ExpectTx(f.sql, true)

	ce := &costestimate.CostEstimate{ID: 6, PurchaseOrderID: 2, Status: costestimate.StatusDraft}
	f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(6)).Return(ce, nil)
	f.estimates.EXPECT().Update(ctx, ce).Return(nil)

	resp, err := svc.Submit(ctx, bsp, 6)
	require.NoError(t, err)
	assert.Equal(t, costestimate.StatusPendingApproval, resp.Status)
	assert.Equal(t, []string{events.CostEstimateSubmitted}, f.eventTypes())
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft Cascades Line Items", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, true)

		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(5)).
			Return(&costestimate.CostEstimate{ID: 5, Status: costestimate.StatusDraft}, nil)
		gomock.InOrder(
			f.items.EXPECT().DeleteByEstimate(ctx, int64(5)).Return(nil),
			f.estimates.EXPECT().Delete(ctx, int64(5)).Return(nil),
		)

		assert.NoError(t, svc.Delete(ctx, bsp, 5))
		assert.Equal(t, []string{events.CostEstimateDeleted}, f.eventTypes())
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Non Draft Writes Nothing", func(t *testing.T) {
		f := newFixture(t)
		svc := f.service(t, config.DefaultWorkflow())
		dbtest.ExpectTx(f.sql, false)

		f.estimates.EXPECT().FindByIDForUpdate(ctx, int64(5)).
			Return(&costestimate.CostEstimate{ID: 5, Status: costestimate.StatusPendingApproval}, nil)

		err := svc.Delete(ctx, bsp, 5)
		assert.ErrorIs(t, err, costestimateerrors.ErrNotDraft)
		assert.Empty(t, f.recorded)
	})
}

func TestService_RejectsSubCentTotalCost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.service(t, config.DefaultWorkflow())

	_, err := svc.Create(ctx, bsp, costestimate.CreateCostEstimateRequest{
		PurchaseOrderID: 2, Title: "Renovation", TotalCost: dec("0.004"),
	})
	assert.ErrorIs(t, err, costestimateerrors.ErrInvalidTotalCost)

	_, err = svc.Update(ctx, bsp, 1, costestimate.UpdateCostEstimateRequest{TotalCost: dec("0.004")})
	assert.ErrorIs(t, err, costestimateerrors.ErrInvalidTotalCost)
	assert.Equal(t, 400, apperror.ToHTTP(err).Status)
	assert.Empty(t, f.recorded)
}
