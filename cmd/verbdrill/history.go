package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/database"
	"github.com/at-ishikawa/verbdrill/internal/datasync"
	"github.com/at-ishikawa/verbdrill/internal/learning"
)

func newHistoryCommand() *cobra.Command {
	historyCommand := &cobra.Command{
		Use:   "history",
		Short: "Copy practice history between the YAML files and the database",
	}
	historyCommand.AddCommand(
		newHistorySyncCommand("import", "Import YAML history into the database", true),
		newHistorySyncCommand("export", "Export database history into YAML files", false),
	)
	return historyCommand
}

func newHistorySyncCommand(use, short string, toDatabase bool) *cobra.Command {
	var dryRun bool
	command := &cobra.Command{
		Use:   use,
		Short: short,
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

			var source, target learning.AttemptRepository = learning.NewYAMLAttemptRepository(cfg.History.Directory), learning.NewDBAttemptRepository(db)
			if !toDatabase {
				source, target = target, source
			}

			out := cmd.OutOrStdout()
			result, err := datasync.NewSyncer(source, target, out).Sync(cmd.Context(), datasync.SyncOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("datasync.Sync() > %w", err)
			}
			printSyncSummary(out, result, dryRun)
			return nil
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing")
	return command
}

func printSyncSummary(out io.Writer, result *datasync.SyncResult, dryRun bool) {
	_, _ = fmt.Fprintln(out, "\nSync Summary:")
	if dryRun {
		_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
	}
	_, _ = fmt.Fprintf(out, "  Attempts:  %d new, %d skipped\n", result.New, result.Skipped)
}
