package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/taxit-dev/taxit/internal/config"
	"github.com/taxit-dev/taxit/internal/logging"
)

// defaultYear is used when no config file exists.
const defaultYear = 2021

// loadSettings reads .env, the config file and TAXIT_* overrides, in that order.
// A missing config file falls back to defaults.
func loadSettings(flags *globalFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default(defaultYear)
	case err != nil:
		return nil, err
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return logger, nil
}
