package commands

import (
	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/buildinfo"
	"github.com/taxit-dev/taxit/internal/config"
)

type globalFlags struct {
	configPath string
	envFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "taxit",
		Short:   "Payroll tax and pretax contribution ledger",
		Version: buildinfo.Summary(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default ./.env when present)")

	rootCmd.AddCommand(
		newInitCommand(),
		newRunCommand(&flags),
		newRatesCommand(&flags),
		newTaxCommand(&flags),
		newVerifyCommand(),
	)

	return rootCmd
}
