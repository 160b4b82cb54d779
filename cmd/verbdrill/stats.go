package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var year, month, weakest int
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show the accuracy of recorded practice",
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
			result := statistics.CalculateStatistics(attempts, year, month)
			return printStatistics(cmd.OutOrStdout(), result, weakest)
		},
	}
	command.Flags().IntVar(&year, "year", 0, "only count attempts of this year")
	command.Flags().IntVar(&month, "month", 0, "only count attempts of this month (1-12)")
	command.Flags().IntVar(&weakest, "weakest", 3, "number of weakest areas to show")
	return command
}

func printStatistics(out io.Writer, result statistics.StatisticsResult, weakest int) error {
	if result.Overall.Total == 0 {
		_, _ = fmt.Fprintln(out, "No practice recorded yet.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Sessions: %d\n", result.Sessions)
	_, _ = fmt.Fprintf(out, "Answers: %d, correct: %d (%s)\n", result.Overall.Total, result.Overall.Correct, result.Overall.Percent())
	_, _ = fmt.Fprintf(out, "Average response time: %s\n", time.Duration(result.AverageResponseTime)*time.Millisecond)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, section := range []struct {
		title  string
		groups []statistics.Accuracy
	}{
		{"Tense", result.ByTense},
		{"Form", result.ByForm},
		{"Pronoun", result.ByPronoun},
		{"Verb", result.ByVerb},
	} {
		_, _ = fmt.Fprintf(w, "\n%s\tAnswers\tCorrect\tAccuracy\n", section.title)
		for _, g := range section.groups {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", g.Key, g.Total, g.Correct, g.Percent())
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("w.Flush() > %w", err)
	}

	if areas := result.WeakestAreas(weakest); len(areas) > 0 {
		_, _ = fmt.Fprintln(out, "\nWeakest areas:")
		for _, area := range areas {
			_, _ = fmt.Fprintf(out, "- %s %s: %s of %d\n", area.Dimension, area.Accuracy.Key, area.Accuracy.Percent(), area.Accuracy.Total)
		}
	}
	return nil
}
