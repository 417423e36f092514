// Package rbactest builds the production policy for service tests.
package rbactest

import (
	"testing"

	"go-procurement/internal/rbac"
	"go-procurement/internal/rbac/infra"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func New(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)

	svc, err := rbac.NewService(enforcer, zap.NewNop())
	require.NoError(t, err)
	return svc
}
