package user_test

import (
	"context"
	"errors"
	"testing"

	"go-procurement/internal/domain"
	domainMock "go-procurement/internal/domain/mock"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/user"
	usererrors "go-procurement/internal/user/errors"
	userMock "go-procurement/internal/user/mock"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	authz := domainMock.NewMockAuthorizer(ctrl)
	svc := user.NewService(mockRepo, authz)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionCreate).Return(nil)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "budi", u.Username)
			assert.Equal(t, "budi@example.com", u.Email)
			assert.Equal(t, domain.RoleBSP, u.Role)
			assert.True(t, u.IsActive)
			u.ID = 7
			return nil
		})

		resp, err := svc.Create(ctx, admin, user.CreateUserRequest{
			Username: " budi ",
			Email:    "Budi@Example.com",
			FullName: "Budi Santoso",
			Role:     "bsp",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "BSP", resp.Role)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionCreate).Return(nil)

		_, err := svc.Create(ctx, admin, user.CreateUserRequest{
			Username: "budi", Email: "b@example.com", FullName: "Budi", Role: "GUEST",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionCreate).Return(nil)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"})

		_, err := svc.Create(ctx, admin, user.CreateUserRequest{
			Username: "budi", Email: "b@example.com", FullName: "Budi", Role: "DAU",
		})
		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})

	t.Run("Forbidden", func(t *testing.T) {
		bsp := domain.Actor{UserID: 3, Role: domain.RoleBSP}
		authz.EXPECT().Authorize(bsp, domain.ResourceUser, domain.ActionCreate).
			Return(apperror.Forbidden(domain.ResourceUser, domain.ActionCreate))

		_, err := svc.Create(ctx, bsp, user.CreateUserRequest{Role: "DAU"})
		assert.Equal(t, 403, apperror.ToHTTP(err).Status)
	})
}

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	svc := user.NewService(mockRepo, domainMock.NewMockAuthorizer(ctrl))
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().FindByID(ctx, int64(2)).
			Return(&user.User{ID: 2, Username: "dau", Role: domain.RoleDAU, IsActive: true}, nil)

		resp, err := svc.GetByID(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, "dau", resp.Username)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, 99)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	authz := domainMock.NewMockAuthorizer(ctrl)
	svc := user.NewService(mockRepo, authz)
	ctx := context.Background()

	t.Run("Partial Update", func(t *testing.T) {
		name := "Siti Rahma"
		inactive := false
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionUpdate).Return(nil)
		mockRepo.EXPECT().FindByID(ctx, int64(4)).
			Return(&user.User{ID: 4, Username: "siti", Email: "siti@example.com", FullName: "Siti", Role: domain.RoleKKF, IsActive: true}, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "Siti Rahma", u.FullName)
			assert.Equal(t, "siti", u.Username)
			assert.False(t, u.IsActive)
			return nil
		})

		resp, err := svc.Update(ctx, admin, 4, user.UpdateUserRequest{FullName: &name, IsActive: &inactive})
		assert.NoError(t, err)
		assert.Equal(t, "Siti Rahma", resp.FullName)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		role := "OWNER"
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionUpdate).Return(nil)
		mockRepo.EXPECT().FindByID(ctx, int64(4)).Return(&user.User{ID: 4, Role: domain.RoleKKF}, nil)

		_, err := svc.Update(ctx, admin, 4, user.UpdateUserRequest{Role: &role})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	authz := domainMock.NewMockAuthorizer(ctrl)
	svc := user.NewService(mockRepo, authz)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionDelete).Return(nil)
		mockRepo.EXPECT().Delete(ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, admin, 5))
	})

	t.Run("Still Referenced", func(t *testing.T) {
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionDelete).Return(nil)
		mockRepo.EXPECT().Delete(ctx, int64(5)).Return(&pgconn.PgError{Code: "23503"})

		err := svc.Delete(ctx, admin, 5)
		assert.ErrorIs(t, err, usererrors.ErrUserInUse)
	})

	t.Run("Unexpected Error", func(t *testing.T) {
		boom := errors.New("connection reset")
		authz.EXPECT().Authorize(admin, domain.ResourceUser, domain.ActionDelete).Return(nil)
		mockRepo.EXPECT().Delete(ctx, int64(5)).Return(boom)

		err := svc.Delete(ctx, admin, 5)
		assert.ErrorIs(t, err, boom)
	})
}
