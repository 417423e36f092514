package audit

import (
	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz domain.Authorizer) {
	r.GET("/audit-logs", middleware.RBACAuthorize(authz, domain.ResourceAudit, domain.ActionRead), handler.GetAll)
}
