package costestimateerrors

import (
	"net/http"

	"go-procurement/internal/shared/apperror"
)

var (
	ErrCostEstimateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cost estimate not found",
		http.StatusNotFound,
	)

	ErrLineItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Line item not found",
		http.StatusNotFound,
	)

	ErrPurchaseOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Purchase order not found",
		http.StatusNotFound,
	)

	ErrPurchaseOrderNotApproved = apperror.New(
		apperror.CodePreconditionFailed,
		"Cost estimates can only be created for approved purchase orders",
		http.StatusPreconditionFailed,
	)

	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft cost estimates can be changed",
		http.StatusConflict,
	)

	ErrNotPendingApproval = apperror.New(
		apperror.CodeInvalidState,
		"Cost estimate is not pending approval",
		http.StatusConflict,
	)

	ErrCreatorNotBSP = apperror.New(
		apperror.CodeForbidden,
		"Line items can only be removed from estimates created by BSP",
		http.StatusForbidden,
	)

	ErrInvalidTotalCost = apperror.New(
		apperror.CodeValidation,
		"total_cost must be between 0.01 and 9999999999999.99",
		http.StatusBadRequest,
	)

	ErrInvalidUnitPrice = apperror.New(
		apperror.CodeValidation,
		"unit_price must be between 0.01 and 9999999999999.99",
		http.StatusBadRequest,
	)

	ErrCreatorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cost estimate creator not found",
		http.StatusNotFound,
	)

	ErrTotalOutOfRange = apperror.New(
		apperror.CodeValidation,
		"total_price and total_cost cannot exceed 9999999999999.99",
		http.StatusBadRequest,
	)

	ErrInvalidQuantity = apperror.New(
		apperror.CodeValidation,
		"quantity must be greater than 0",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of DRAFT, PENDING_APPROVAL, APPROVED, REJECTED",
		http.StatusBadRequest,
	)
)
