// Package logging builds the zap logger used by the CLI and payroll.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taxit-dev/taxit/internal/config"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

// New creates a JSON logger writing to stderr. An empty level means info in
// production and debug in development.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if env == "" {
		env = EnvironmentProduction
	}

	var base zap.Config
	switch env {
	case EnvironmentProduction:
		base = zap.NewProductionConfig()
	case EnvironmentDevelopment:
		base = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid logging environment %q", cfg.Environment)
	}
	base.Encoding = "json"
	base.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	base.DisableStacktrace = true
	base.OutputPaths = []string{"stderr"}

	level, err := resolveLevel(cfg.Level, env)
	if err != nil {
		return nil, err
	}
	base.Level = level

	logger, err := base.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

func resolveLevel(level, env string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(level); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}
	if env == EnvironmentDevelopment {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}
