package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/config"
)

// New builds a zap logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
