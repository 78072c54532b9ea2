package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override taxit.yaml.
const (
	EnvYear      = "TAXIT_YEAR"
	EnvLogLevel  = "TAXIT_LOG_LEVEL"
	EnvRatesFile = "TAXIT_RATES_FILE"
)

// LoadDotEnv loads variables from path into the process environment.
// Existing variables win. An empty path loads ./.env if it exists.
func LoadDotEnv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TAXIT_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvYear); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			return fmt.Errorf("invalid %s %q", EnvYear, v)
		}
		cfg.Year = year
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvRatesFile); v != "" {
		cfg.Rates.File = v
	}
	return nil
}
