package rbac

import (
	"net/http"
	"strings"

	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"
	"go-procurement/internal/shared/apperror"
	"go-procurement/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "role, resource and action are required", err.Error())
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "unknown role", req.Role)
		return
	}
	req.Role = string(role)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

// Permissions lists what a role may do; without ?role the caller's own role is used.
func (h *Handler) Permissions(c *gin.Context) {
	var role domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "unknown role", raw)
			return
		}
		role = parsed
	} else {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			writeServiceError(c, apperror.ErrUnauthorized)
			return
		}
		role = actor.Role
	}

	resp, err := h.service.Permissions(role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
