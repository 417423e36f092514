package app

import (
	"net/http"

	"go-procurement/internal/config"
	"go-procurement/internal/shared/connection"
	"go-procurement/internal/shared/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return registerModules(router, cfg, gormDB, redisClient, logger)
}
