package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/spf13/cobra"
)

func newTrialBalanceCommand(a *app) *cobra.Command {
	var year, period int

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance of a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var periodPtr *int
			if cmd.Flags().Changed("period") {
				periodPtr = &period
			}
			ctx := cmd.Context()
			return a.withServices(ctx, func(svc *portssvc.ServiceContainer) error {
				tb, err := svc.Reporting.TrialBalance(ctx, a.workspaceID, year, periodPtr)
				if err != nil {
					return err
				}
				return writeTrialBalance(cmd.OutOrStdout(), tb)
			})
		},
	}
	a.addWorkspaceFlag(cmd)
	cmd.Flags().IntVarP(&year, "year", "y", 0, "fiscal year")
	cmd.Flags().IntVarP(&period, "period", "p", 0, "last period to include (1-12)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

// writeTrialBalance renders tb as an aligned table followed by its totals.
func writeTrialBalance(out io.Writer, tb *domain.TrialBalance) error {
	scope := fmt.Sprintf("%d", tb.FiscalYear)
	if tb.FiscalPeriod != nil {
		scope = fmt.Sprintf("%d up to period %d", tb.FiscalYear, *tb.FiscalPeriod)
	}
	fmt.Fprintf(out, "Trial balance %s (%d entries)\n\n", scope, tb.EntryCount)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Account\tLabel\tDebit\tCredit\tBalance\t\t")
	for _, row := range tb.Rows {
		side, net := accounting.NetSide(row.ClosingDebit, row.ClosingCredit)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.AccountNumber, row.AccountLabel, row.PeriodDebit, row.PeriodCredit, net, side)
	}
	fmt.Fprintf(w, "Total\t\t%s\t%s\t\t\t\n", tb.Totals.PeriodDebit, tb.Totals.PeriodCredit)
	if err := w.Flush(); err != nil {
		return err
	}

	if !tb.Totals.Balanced {
		fmt.Fprintln(out, "\nWARNING: debits and credits do not balance")
	}
	return nil
}
