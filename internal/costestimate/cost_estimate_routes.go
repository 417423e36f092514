package costestimate

import (
	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz domain.Authorizer, rdb *redis.Client) {
	estimates := r.Group("/cost-estimates")
	{
		estimates.GET("", middleware.RBACAuthorize(authz, domain.ResourceCostEstimate, domain.ActionRead), handler.GetAll)
		estimates.GET("/:id", middleware.RBACAuthorize(authz, domain.ResourceCostEstimate, domain.ActionRead), handler.GetByID)
		estimates.POST("", middleware.Idempotency(rdb), handler.Create)
		estimates.PUT("/:id", handler.Update)
		estimates.POST("/:id/submit", handler.Submit)
		estimates.POST("/:id/approve", handler.Approve)
		estimates.DELETE("/:id", handler.Delete)

		estimates.GET("/:id/line-items", middleware.RBACAuthorize(authz, domain.ResourceLineItem, domain.ActionRead), handler.ListLineItems)
		estimates.POST("/:id/line-items", middleware.Idempotency(rdb), handler.CreateLineItem)
	}

	items := r.Group("/line-items")
	{
		items.PUT("/:id", handler.UpdateLineItem)
		items.DELETE("/:id", handler.DeleteLineItem)
	}
}
