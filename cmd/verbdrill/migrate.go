package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/database"
	"github.com/at-ishikawa/verbdrill/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the db history backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations, "migrations")
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return nil
			}
			for _, version := range applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", version)
			}
			return nil
		},
	}
}
