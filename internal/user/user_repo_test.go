package user

import (
	"context"
	"errors"
	"testing"

	"go-procurement/internal/shared/dbtest"
	usererrors "go-procurement/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRepository_FindByID(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "full_name", "role", "is_active"}).
			AddRow(3, "bsp01", "bsp01@example.com", "Bsp One", "BSP", true))

	u, err := repo.FindByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "bsp01", u.Username)
	assert.Equal(t, "BSP", string(u.Role))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NoRows(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapRepositoryError(t *testing.T) {
	other := errors.New("boom")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, usererrors.ErrUserNotFound},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_username"}, usererrors.ErrUsernameTaken},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}, usererrors.ErrEmailTaken},
		{"fk", &pgconn.PgError{Code: "23503"}, usererrors.ErrUserInUse},
		{"message fallback", errors.New(`ERROR: duplicate key value violates unique constraint "uq_users_email"`), usererrors.ErrEmailTaken},
		{"passthrough", other, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapRepositoryError(tc.in), tc.want)
		})
	}
	assert.Nil(t, mapRepositoryError(nil))
}
