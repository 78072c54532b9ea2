package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taxit-dev/taxit/internal/config"
	"github.com/taxit-dev/taxit/internal/model"
	"github.com/taxit-dev/taxit/internal/rates"
)

type tableFlags struct {
	jurisdiction string
	category     string
	status       string
	year         int
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jurisdiction, "jurisdiction", rates.Federal, "taxing jurisdiction")
	cmd.Flags().StringVar(&f.category, "category", string(model.CategoryIncome), "tax category")
	cmd.Flags().StringVar(&f.status, "status", "single", "filing status (single, married)")
	cmd.Flags().IntVar(&f.year, "year", 0, "tax year (default from config)")
}

// key parses the flags once; calculation never sees the raw strings.
func (f *tableFlags) key(cfg *config.Config) (rates.Key, error) {
	category, err := model.ParseCategory(f.category)
	if err != nil {
		return rates.Key{}, err
	}
	status, err := model.ParseFilingStatus(f.status)
	if err != nil {
		return rates.Key{}, err
	}
	year := f.year
	if year == 0 {
		year = cfg.Year
	}
	return rates.Key{Jurisdiction: f.jurisdiction, Category: category, Status: status, Year: year}, nil
}

func newRatesCommand(flags *globalFlags) *cobra.Command {
	var tf tableFlags
	var exportPath string

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show a bracket table, or export every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(flags)
			if err != nil {
				return err
			}
			book, err := cfg.Book()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if exportPath != "" {
				if err := rates.SaveFile(exportPath, book); err != nil {
					return err
				}
				success(out, "Exported %d tables to %s", book.Len(), exportPath)
				return nil
			}

			key, err := tf.key(cfg)
			if err != nil {
				return err
			}
			s, err := book.Schedule(key)
			if err != nil {
				return err
			}

			heading(out, key.String())
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "FROM\tTO\tRATE %\t")
			brackets := s.Brackets()
			for i, b := range brackets {
				upper := b.Upper.StringFixed(2)
				if i == len(brackets)-1 {
					upper = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", b.Lower.StringFixed(2), upper, b.Rate.String())
			}
			return tw.Flush()
		},
	}

	tf.register(cmd)
	cmd.Flags().StringVar(&exportPath, "export", "", "write every table to this YAML file")

	return cmd
}
