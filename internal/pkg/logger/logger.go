// Package logger builds the process-wide zap logger.
package logger

import (
	"gymbooking/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger for prod-like environments and a
// colored console logger otherwise.
func New(env string) (*zap.Logger, error) {
	return newConfig(env).Build()
}

func newConfig(env string) zap.Config {
	if config.IsProdLike(env) {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
