package user

import (
	"context"
	"strings"

	"go-procurement/internal/domain"
	"go-procurement/internal/shared/contextutil"
	usererrors "go-procurement/internal/user/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type service struct {
	repo   Repository
	authz  domain.Authorizer
	logger *zap.Logger
}

func NewService(repo Repository, authz domain.Authorizer, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, authz: authz, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceUser, domain.ActionCreate); err != nil {
		return UserResponse{}, err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		l.Warn("create user rejected: invalid role", zap.String("role", req.Role))
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	u := &User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		FullName: strings.TrimSpace(req.FullName),
		Role:     role,
		IsActive: isActive,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		l.Error("failed to create user", zap.String("username", u.Username), zap.Error(err))
		return UserResponse{}, mapped
	}

	l.Info("user created", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceUser, domain.ActionUpdate); err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Username != nil {
		u.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			l.Warn("update user rejected: invalid role", zap.Int64("user_id", id), zap.String("role", *req.Role))
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.Int64("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user updated", zap.Int64("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authz.Authorize(actor, domain.ResourceUser, domain.ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			l.Error("failed to delete user", zap.Int64("user_id", id), zap.Error(err))
		}
		return mapped
	}

	l.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
