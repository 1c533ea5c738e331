// README: migrate commands over the embedded goose migrations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"motohub/internal/infra"
)

func newMigrateCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations (requires MOTOHUB_DB_DSN)",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				return infra.MigrateUp(cmd.Context(), pool, a.logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				return infra.MigrateDown(cmd.Context(), pool, a.logger)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := infra.MigrationStatus(cmd.Context(), pool); err != nil {
					return err
				}
				version, err := infra.MigrationVersion(cmd.Context(), pool)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
				return nil
			},
		},
	)
	return c
}
