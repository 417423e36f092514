package main

import (
	"go-procurement/internal/app"
	"go-procurement/internal/bootstrap"
	"go-procurement/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.RunMigrate(cfg); err != nil {
		logger.Fatal("run migrate failed", zap.Error(err))
	}
}
