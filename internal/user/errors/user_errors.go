package usererrors

import (
	"net/http"

	"go-procurement/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username is already taken",
		http.StatusConflict,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrUserInUse = apperror.New(
		apperror.CodeConflict,
		"User is still referenced by purchase orders or cost estimates",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be one of SUPERADMIN, ADMIN, UNIT_KERJA, BSP, KKF, DAU",
		http.StatusBadRequest,
	)
)
