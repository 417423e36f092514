package user

import (
	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz domain.Authorizer) {
	users := r.Group("/users")
	{
		users.GET("", middleware.RBACAuthorize(authz, domain.ResourceUser, domain.ActionRead), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(authz, domain.ResourceUser, domain.ActionRead), handler.GetByID)
		users.POST("", handler.Create)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}
