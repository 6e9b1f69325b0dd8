package cli

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"recipes-be/internal/config"
	"recipes-be/internal/database"
	"recipes-be/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())
	return cmd
}

// withMigrator opens the configured database and hands a migrator to fn.
func withMigrator(cmd *cobra.Command, fn func(*database.Migrator, logging.Logger) error) error {
	ctx := cmd.Context()
	cfg, err := config.LoadTool()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	m, err := database.NewMigrator(cfg.Database.Driver, db)
	if err != nil {
		return err
	}
	return fn(m, log.With("driver", cfg.Database.Driver))
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withMigrator(cmd, func(m *database.Migrator, log logging.Logger) error {
				applied, err := m.Up(ctx)
				if err != nil {
					return err
				}
				log.Info(ctx, "migrations applied", "versions", applied)
				return nil
			})
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withMigrator(cmd, func(m *database.Migrator, log logging.Logger) error {
				version, err := m.Down(ctx)
				if err != nil {
					return err
				}
				log.Info(ctx, "migration rolled back", "version", version)
				return nil
			})
		},
	}
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withMigrator(cmd, func(m *database.Migrator, _ logging.Logger) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Path)
				}
				return w.Flush()
			})
		},
	}
}
