package audit

import (
	"net/http"
	"strconv"

	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(service Service) *Handler {
	return &Handler{svc: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetAll lists the history of one entity (?entity_type&entity_id) or of a
// whole entity type.
func (h *Handler) GetAll(c *gin.Context) {
	var entityID int64
	if raw := c.Query("entity_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeServiceError(c, apperror.InvalidField("entity_id"))
			return
		}
		entityID = parsed
	}

	resp, err := h.svc.GetAll(c.Request.Context(), c.Query("entity_type"), entityID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, meta)
}
