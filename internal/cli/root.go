// Package cli implements ledgerctl, the operator command line for the ledger.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/platform/storage"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// opener returns the repositories a command works on and a release function.
type opener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	open   opener

	userID      string
	workspaceID string
}

func openConfigured(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	return storage.Open(ctx, cfg, logger, false)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openConfigured, nil)
}

// newRootCommand builds the command tree. A nil cfg is loaded from the
// environment before any subcommand runs.
func newRootCommand(open opener, cfg *config.Config) *cobra.Command {
	a := &app{open: open, cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the ledger: migrations, seeding, entry lifecycle and trial balances",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			slog.SetDefault(a.logger)
			if a.cfg != nil {
				return nil
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.userID, "user", "ledgerctl", "user ID recorded in audit fields")

	rootCmd.AddCommand(
		newMigrateCommand(a),
		newSeedCommand(a),
		newTrialBalanceCommand(a),
		newEntryCommand(a),
	)
	return rootCmd
}

// addWorkspaceFlag registers the required --workspace flag on cmd.
func (a *app) addWorkspaceFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.workspaceID, "workspace", "w", "", "workspace ID (UUID)")
	_ = cmd.MarkFlagRequired("workspace")
}

// withServices opens storage, builds the services and runs fn with them.
func (a *app) withServices(ctx context.Context, fn func(svc *portssvc.ServiceContainer) error) error {
	if a.workspaceID != "" {
		if _, err := uuid.Parse(a.workspaceID); err != nil {
			return fmt.Errorf("workspace ID must be a UUID: %w", err)
		}
	}
	repos, release, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer release()
	return fn(services.NewServiceContainer(a.cfg, repos))
}
