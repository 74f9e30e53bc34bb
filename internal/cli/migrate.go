package cli

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %s", config.StoragePostgres, a.cfg.StorageDriver)
			}
			applied, err := database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath, a.logger)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "schema already up to date")
			}
			return nil
		},
	}
}
