package purchaseordererrors

import (
	"net/http"

	"go-procurement/internal/shared/apperror"
)

var (
	ErrPurchaseOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Purchase order not found",
		http.StatusNotFound,
	)

	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft purchase orders can be changed",
		http.StatusConflict,
	)

	ErrNotPendingApproval = apperror.New(
		apperror.CodeInvalidState,
		"Purchase order is not pending approval",
		http.StatusConflict,
	)

	ErrNotInProgress = apperror.New(
		apperror.CodeInvalidState,
		"Purchase order is not in progress",
		http.StatusConflict,
	)

	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"Only the requester can change this purchase order",
		http.StatusForbidden,
	)

	ErrPONumberTaken = apperror.New(
		apperror.CodeConflict,
		"Purchase order number already exists",
		http.StatusConflict,
	)

	ErrInvalidAmount = apperror.New(
		apperror.CodeValidation,
		"total_amount must be between 0.01 and 9999999999999.99",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of DRAFT, PENDING_APPROVAL, APPROVED, PROGRESS, COMPLETED, REJECTED",
		http.StatusBadRequest,
	)
)
