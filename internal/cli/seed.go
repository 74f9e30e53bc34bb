package cli

import (
	"fmt"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newSeedCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default journals and chart of accounts in a workspace",
		Long:  "Create the default journals (VT, AC, BQ, CA, OD) and the standard chart of accounts. Running it again only fills in what is missing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withServices(ctx, func(svc *portssvc.ServiceContainer) error {
				journals, err := svc.Journal.InitializeDefaultJournals(ctx, a.workspaceID, a.userID)
				if err != nil {
					return err
				}
				chart, err := svc.Account.InitializeDefaultChart(ctx, a.workspaceID, a.userID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "journals: %d created, %d skipped\n", journals.Created, journals.Skipped)
				fmt.Fprintf(out, "accounts: %d created, %d skipped\n", chart.Created, chart.Skipped)
				return nil
			})
		},
	}
	a.addWorkspaceFlag(cmd)
	return cmd
}
