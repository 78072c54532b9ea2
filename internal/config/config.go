// Package config reads and writes taxit.yaml.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/limits"
	"github.com/taxit-dev/taxit/internal/rates"
)

// FileName is the config file looked up by the CLI.
const FileName = "taxit.yaml"

// Config represents the top-level taxit.yaml configuration.
type Config struct {
	Year    int                  `yaml:"year"`
	Limits  map[int]LimitsConfig `yaml:"limits,omitempty"`
	Rates   RatesConfig          `yaml:"rates"`
	Logging LoggingConfig        `yaml:"logging"`
}

// LimitsConfig overrides the built-in contribution caps for one year.
type LimitsConfig struct {
	RetirementTotal    float64 `yaml:"retirement_total"`
	RetirementEmployee float64 `yaml:"retirement_employee"`
	DependentCare      float64 `yaml:"dependent_care"`
	MatchPercent       float64 `yaml:"match_percent"`
}

// RatesConfig points at extra bracket tables merged over the built-in ones.
type RatesConfig struct {
	File string `yaml:"file,omitempty"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"` // "production" or "development"
}

// Load reads a taxit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for year using the built-in caps and tables.
func Default(year int) *Config {
	return &Config{
		Year: year,
		Logging: LoggingConfig{
			Level:       "info",
			Environment: "production",
		},
	}
}

// Validate rejects values no run could use.
func (c *Config) Validate() error {
	var errs []error
	if c.Year <= 0 {
		errs = append(errs, fmt.Errorf("year must be positive, got %d", c.Year))
	}
	for year, l := range c.Limits {
		if l.RetirementTotal < 0 || l.RetirementEmployee < 0 || l.DependentCare < 0 {
			errs = append(errs, fmt.Errorf("limits %d: caps must not be negative", year))
		}
		if l.MatchPercent < 0 || l.MatchPercent > 100 {
			errs = append(errs, fmt.Errorf("limits %d: match_percent %v out of range", year, l.MatchPercent))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// CapsFor builds the caps table: built-in years overlaid by configured ones.
func (c *Config) CapsFor() (*limits.Table, error) {
	caps := limits.DefaultCaps()
	for year, l := range c.Limits {
		var yc limits.Caps
		for _, f := range []struct {
			dst *decimal.Decimal
			v   float64
		}{
			{&yc.RetirementTotal, l.RetirementTotal},
			{&yc.RetirementEmployee, l.RetirementEmployee},
			{&yc.DependentCare, l.DependentCare},
			{&yc.MatchPercent, l.MatchPercent},
		} {
			d, err := ledger.AmountFromFloat(f.v)
			if err != nil {
				return nil, fmt.Errorf("limits %d: %w", year, err)
			}
			*f.dst = d
		}
		caps[year] = yc
	}
	return limits.NewTable(caps), nil
}

// Book returns the built-in rate tables merged with the configured file, if any.
func (c *Config) Book() (*rates.Book, error) {
	book := rates.Default()
	if c.Rates.File == "" {
		return book, nil
	}
	extra, err := rates.LoadFile(c.Rates.File)
	if err != nil {
		return nil, err
	}
	return book.Merge(extra), nil
}
