package bootstrap

import (
	"strings"

	"go-procurement/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds a JSON production logger when LOG_FORMAT=json and a
// console development logger otherwise, and installs it as the zap global.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(cfg.Format, "json") {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
