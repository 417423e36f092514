package rbac

import (
	"sort"
	"sync"

	"go-procurement/internal/domain"
	"go-procurement/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Authorize(actor domain.Actor, resource, action string) error
	Permissions(role domain.Role) (domain.RolePermissionsResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the built-in role policy into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	if err := loadPolicy(enforcer); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Authorize(actor domain.Actor, resource, action string) error {
	if !actor.Valid() {
		return apperror.ErrUnauthorized
	}

	allowed, err := s.Enforce(domain.EnforceRequest{
		Role:     string(actor.Role),
		Resource: resource,
		Action:   action,
	})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "authorization check failed", apperror.ErrInternal.HTTPStatus)
	}
	if !allowed {
		s.logger.Warn("rbac denied",
			zap.Int64("user_id", actor.UserID),
			zap.String("role", string(actor.Role)),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return apperror.Forbidden(resource, action)
	}
	return nil
}

func (s *service) Permissions(role domain.Role) (domain.RolePermissionsResponse, error) {
	if !role.Valid() {
		return domain.RolePermissionsResponse{}, apperror.InvalidField("Role")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	inherits, err := s.enforcer.GetImplicitRolesForUser(string(role))
	if err != nil {
		return domain.RolePermissionsResponse{}, err
	}
	rules, err := s.enforcer.GetImplicitPermissionsForUser(string(role))
	if err != nil {
		return domain.RolePermissionsResponse{}, err
	}

	seen := make(map[string]struct{}, len(rules))
	perms := make([]domain.PermissionResponse, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		key := rule[1] + ":" + rule[2]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		perms = append(perms, domain.PermissionResponse{Resource: rule[1], Action: rule[2]})
	}
	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	sort.Strings(inherits)

	return domain.RolePermissionsResponse{
		Role:        string(role),
		Inherits:    inherits,
		Permissions: perms,
	}, nil
}
