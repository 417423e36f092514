package user

import (
	"errors"
	"strings"

	usererrors "go-procurement/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_users_username":
				return usererrors.ErrUsernameTaken
			case "uq_users_email":
				return usererrors.ErrEmailTaken
			}
		case "23503":
			return usererrors.ErrUserInUse
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_users_username"):
			return usererrors.ErrUsernameTaken
		case strings.Contains(errMsg, "uq_users_email"):
			return usererrors.ErrEmailTaken
		}
	}

	return err
}
