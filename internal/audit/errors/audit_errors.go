package auditerrors

import (
	"net/http"

	"go-procurement/internal/shared/apperror"
)

var (
	ErrInvalidEntityType = apperror.New(
		apperror.CodeInvalidInput,
		"entity_type must be one of purchase_order, cost_estimate, line_item",
		http.StatusBadRequest,
	)

	ErrEntityIDWithoutType = apperror.New(
		apperror.CodeInvalidInput,
		"entity_id requires entity_type",
		http.StatusBadRequest,
	)

	ErrMalformedEvent = apperror.New(
		apperror.CodeInvalidInput,
		"workflow event is missing event_id, event_type or entity",
		http.StatusBadRequest,
	)
)
