package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/config"
	"github.com/taxit-dev/taxit/internal/scenario"
)

// ScenarioFileName is the sample scenario written by init.
const ScenarioFileName = "scenario.yaml"

func newInitCommand() *cobra.Command {
	var year int
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter config and sample scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, year, force); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Initialized taxit project at %s", absDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", defaultYear, "tax year")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func runInit(dir string, year int, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	configPath := filepath.Join(dir, config.FileName)
	scenarioPath := filepath.Join(dir, ScenarioFileName)
	if !force {
		for _, p := range []string{configPath, scenarioPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	cfg := config.Default(year)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(scenarioPath, []byte(scenario.Sample), 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
