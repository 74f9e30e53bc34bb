package cli

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newEntryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Move journal entries through their lifecycle",
	}

	transitions := []struct {
		use   string
		short string
		apply func(portssvc.EntrySvcFacade, context.Context, string, string, string) (*domain.JournalEntry, error)
	}{
		{"post", "Post a draft entry", portssvc.EntrySvcFacade.PostEntry},
		{"validate", "Validate a posted entry (final)", portssvc.EntrySvcFacade.ValidateEntry},
		{"cancel", "Cancel a draft or posted entry", portssvc.EntrySvcFacade.CancelEntry},
	}

	for _, t := range transitions {
		sub := &cobra.Command{
			Use:   t.use + " <entry-id>",
			Short: t.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				return a.withServices(ctx, func(svc *portssvc.ServiceContainer) error {
					entry, err := t.apply(svc.Entry, ctx, a.workspaceID, args[0], a.userID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", entry.EntryNumber, entry.Status)
					return nil
				})
			},
		}
		a.addWorkspaceFlag(sub)
		cmd.AddCommand(sub)
	}
	return cmd
}
