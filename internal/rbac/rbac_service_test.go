package rbac

import (
	"errors"
	"net/http"
	"testing"

	"go-procurement/internal/domain"
	"go-procurement/internal/rbac/infra"
	"go-procurement/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)

	svc, err := NewService(enforcer, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role     domain.Role
		resource string
		action   string
		want     bool
	}{
		{domain.RoleUnitKerja, domain.ResourcePurchaseOrder, domain.ActionCreate, true},
		{domain.RoleUnitKerja, domain.ResourcePurchaseOrder, domain.ActionApprove, false},
		{domain.RoleBSP, domain.ResourcePurchaseOrder, domain.ActionApprove, true},
		{domain.RoleDAU, domain.ResourcePurchaseOrder, domain.ActionApprove, true},
		{domain.RoleKKF, domain.ResourcePurchaseOrder, domain.ActionApprove, false},
		{domain.RoleBSP, domain.ResourceCostEstimate, domain.ActionCreate, true},
		{domain.RoleDAU, domain.ResourceCostEstimate, domain.ActionCreate, false},
		{domain.RoleDAU, domain.ResourceCostEstimate, domain.ActionApprove, true},
		{domain.RoleBSP, domain.ResourceCostEstimate, domain.ActionApprove, false},
		{domain.RoleAdmin, domain.ResourceCostEstimate, domain.ActionApprove, false},
		{domain.RoleAdmin, domain.ResourcePurchaseOrder, domain.ActionUpdateAny, true},
		{domain.RoleSuperAdmin, domain.ResourcePurchaseOrder, domain.ActionUpdateAny, true},
		{domain.RoleAdmin, domain.ResourceUser, domain.ActionCreate, false},
		{domain.RoleSuperAdmin, domain.ResourceUser, domain.ActionCreate, true},
		{domain.RoleKKF, domain.ResourceLineItem, domain.ActionCreate, false},
		{domain.RoleKKF, domain.ResourceAudit, domain.ActionRead, true},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(domain.EnforceRequest{Role: string(tc.role), Resource: tc.resource, Action: tc.action})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_Authorize(t *testing.T) {
	svc := newTestService(t)

	t.Run("allowed", func(t *testing.T) {
		err := svc.Authorize(domain.Actor{UserID: 1, Role: domain.RoleDAU}, domain.ResourceCostEstimate, domain.ActionApprove)
		assert.NoError(t, err)
	})

	t.Run("forbidden", func(t *testing.T) {
		err := svc.Authorize(domain.Actor{UserID: 1, Role: domain.RoleKKF}, domain.ResourceCostEstimate, domain.ActionApprove)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
	})

	t.Run("anonymous", func(t *testing.T) {
		err := svc.Authorize(domain.Actor{}, domain.ResourcePurchaseOrder, domain.ActionRead)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestRBACService_Permissions(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Permissions(domain.RoleSuperAdmin)
	require.NoError(t, err)

	assert.Equal(t, "SUPERADMIN", resp.Role)
	assert.Contains(t, resp.Inherits, "ADMIN")
	assert.Contains(t, resp.Inherits, roleMember)
	assert.Contains(t, resp.Permissions, domain.PermissionResponse{Resource: domain.ResourceUser, Action: domain.ActionDelete})
	assert.Contains(t, resp.Permissions, domain.PermissionResponse{Resource: domain.ResourcePurchaseOrder, Action: domain.ActionRead})

	_, err = svc.Permissions("GUEST")
	assert.Error(t, err)
}
