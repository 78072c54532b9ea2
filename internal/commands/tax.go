package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/tax"
)

func newTaxCommand(flags *globalFlags) *cobra.Command {
	var tf tableFlags
	var already string

	cmd := &cobra.Command{
		Use:   "tax <amount>",
		Short: "Compute the marginal tax on an amount above what was already taxed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			alreadyTaxed, err := decimal.NewFromString(already)
			if err != nil {
				return fmt.Errorf("invalid --already %q: %w", already, err)
			}

			cfg, err := loadSettings(flags)
			if err != nil {
				return err
			}
			book, err := cfg.Book()
			if err != nil {
				return err
			}
			key, err := tf.key(cfg)
			if err != nil {
				return err
			}
			s, err := book.Schedule(key)
			if err != nil {
				return err
			}
			slices, err := tax.Apportion(s, amount, alreadyTaxed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			heading(out, key.String())
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "RATE %\tTAXABLE\tTAX\t")
			total := decimal.Zero
			for _, sl := range slices {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", sl.Bracket.Rate.String(), sl.Taxable.StringFixed(2), sl.Tax.StringFixed(2))
				total = total.Add(sl.Tax)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			plain(out, "Tax due: %s", total.StringFixed(2))
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().StringVar(&already, "already", "0", "amount already taxed under this table this period")

	return cmd
}
