package purchaseorder

import (
	"go-procurement/internal/domain"
	"go-procurement/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz domain.Authorizer, rdb *redis.Client) {
	orders := r.Group("/purchase-orders")
	{
		orders.GET("", middleware.RBACAuthorize(authz, domain.ResourcePurchaseOrder, domain.ActionRead), handler.GetAll)
		orders.GET("/:id", middleware.RBACAuthorize(authz, domain.ResourcePurchaseOrder, domain.ActionRead), handler.GetByID)
		orders.POST("", middleware.Idempotency(rdb), handler.Create)
		orders.PUT("/:id", handler.Update)
		orders.POST("/:id/submit", handler.Submit)
		orders.POST("/:id/approve", handler.Approve)
		orders.POST("/:id/complete", handler.Complete)
		orders.DELETE("/:id", handler.Delete)
	}
}
