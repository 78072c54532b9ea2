package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/scenario"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var journalPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print outcomes and balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(flags)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			book, err := cfg.Book()
			if err != nil {
				return err
			}
			caps, err := cfg.CapsFor()
			if err != nil {
				return err
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			res, runErr := scenario.Run(sc, scenario.Deps{
				Book:   book,
				Caps:   caps,
				Year:   cfg.Year,
				Logger: logger,
			}, strict)
			if res == nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if err := scenario.WriteReport(out, res); err != nil {
				return err
			}
			if journalPath != "" {
				if err := writeJournal(journalPath, res.Ledger); err != nil {
					return err
				}
				plain(out, "Journal written to %s", journalPath)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "write the ledger entries to this CSV file")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first rejected event and exit non-zero")

	return cmd
}

func writeJournal(path string, l *ledger.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	if err := ledger.WriteEntries(f, l.Entries()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing journal: %w", err)
	}
	return nil
}
