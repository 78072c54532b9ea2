package scenario

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/payroll"
)

var (
	okColor       = color.New(color.FgGreen)
	rejectedColor = color.New(color.FgRed)
	headingColor  = color.New(color.Bold)
)

// WriteReport prints each event's outcome followed by every account balance.
func WriteReport(w io.Writer, res *Result) error {
	headingColor.Fprintln(w, "Events")
	for _, o := range res.Outcomes {
		if !o.OK() {
			rejectedColor.Fprintf(w, "  %3d  %-8s", o.Index, "rejected")
			fmt.Fprintf(w, " %s: %v\n", o.Event, o.Err)
			continue
		}
		okColor.Fprintf(w, "  %3d  %-8s", o.Index, "ok")
		fmt.Fprintf(w, " %s", o.Event)
		if r := o.Receipt; r != nil {
			fmt.Fprintf(w, "  taxes %s  net %s", totalTaxes(r.Taxes).StringFixed(2), r.Net.StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	headingColor.Fprintln(w, "\nBalances")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ACCOUNT\tOWNER\tTAGS\tBALANCE\t")
	for _, a := range res.Ledger.Accounts() {
		if a.Len() == 0 {
			continue
		}
		tags := make([]string, len(a.Tags))
		for i, t := range a.Tags {
			tags[i] = string(t)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", a.ID, a.Owner, strings.Join(tags, ","), a.Value().StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d events, %d rejected, ledger total %s\n",
		len(res.Outcomes), res.Rejected(), res.Ledger.Total().StringFixed(2))
	return err
}

func totalTaxes(lines []payroll.TaxLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Amount)
	}
	return sum
}
