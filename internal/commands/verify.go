package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/model"
)

// journalAccounts accepts every account that appears as a posting account in
// the journal, so dangling counterparties are still reported.
type journalAccounts map[model.AccountID]bool

func (j journalAccounts) Exists(id model.AccountID) bool { return j[id] }

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <journal.csv>",
		Short: "Check a journal written by run --journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer f.Close()

			entries, err := ledger.ReadEntries(f)
			if err != nil {
				return err
			}
			accounts := make(journalAccounts)
			for _, e := range entries {
				accounts[e.AccountID] = true
			}

			out := cmd.OutOrStdout()
			errs := ledger.ValidateEntries(entries, accounts)
			if len(errs) == 0 {
				success(out, "%d entries, %d accounts: ok", len(entries), len(accounts))
				return nil
			}
			for _, e := range errs {
				failure(out, "%v", e)
			}
			return fmt.Errorf("journal has %d invariant violations", len(errs))
		},
	}
}
