package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/report"
)

func newReportCommand() *cobra.Command {
	var year, month int
	var pdf bool
	command := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown practice report, optionally as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repository, closeRepository, err := newAttemptRepository(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepository()
			}()

			attempts, err := findAttempts(cmd.Context(), repository, year, month)
			if err != nil {
				return err
			}

			output, err := report.Generate(attempts, report.Options{
				Directory:    cfg.Outputs.ReportDirectory,
				TemplatePath: cfg.Templates.ReportTemplate,
				Year:         year,
				Month:        month,
				PDF:          pdf,
			})
			if err != nil {
				return fmt.Errorf("report.Generate() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output.MarkdownPath)
			if output.PDFPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", output.PDFPath)
			}
			return nil
		},
	}
	command.Flags().IntVar(&year, "year", 0, "only report attempts of this year")
	command.Flags().IntVar(&month, "month", 0, "only report attempts of this month (1-12)")
	command.Flags().BoolVar(&pdf, "pdf", false, "also write a PDF")
	return command
}
