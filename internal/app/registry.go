package app

import (
	"go-procurement/internal/audit"
	"go-procurement/internal/config"
	"go-procurement/internal/costestimate"
	"go-procurement/internal/messaging/kafka"
	"go-procurement/internal/middleware"
	"go-procurement/internal/purchaseorder"
	"go-procurement/internal/rbac"
	"go-procurement/internal/rbac/infra"
	"go-procurement/internal/shared/counter"
	"go-procurement/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	purchaseOrderRepo := purchaseorder.NewRepository(gormDB)
	costEstimateRepo := costestimate.NewRepository(gormDB)
	lineItemRepo := costestimate.NewLineItemRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	recorder := kafka.NewWorkflowRecorder(outboxRepo, cfg.Kafka.WorkflowTopic)

	// --- Services ---
	userService := user.NewService(userRepo, rbacService, logger)
	purchaseOrderService := purchaseorder.NewService(gormDB, purchaseOrderRepo, counterRepo, recorder, rbacService, logger)
	costEstimateService := costestimate.NewService(gormDB, costEstimateRepo, lineItemRepo, purchaseOrderRepo, recorder, rbacService, cfg.Workflow, logger)
	lineItemService := costestimate.NewLineItemService(gormDB, costEstimateRepo, lineItemRepo, userRepo, recorder, rbacService, cfg.Workflow, logger)
	auditService := audit.NewService(auditRepo, logger)

	// --- Handlers ---
	userHandler := user.NewHandler(userService, logger)
	purchaseOrderHandler := purchaseorder.NewHandler(purchaseOrderService, logger)
	costEstimateHandler := costestimate.NewHandler(costEstimateService, lineItemService, logger)
	auditHandler := audit.NewHandler(auditService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)
	{
		user.RegisterRoutes(api, userHandler, rbacService)
		purchaseorder.RegisterRoutes(api, purchaseOrderHandler, rbacService, rdb)
		costestimate.RegisterRoutes(api, costEstimateHandler, rbacService, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
