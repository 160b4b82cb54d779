package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

func newConjugateCommand() *cobra.Command {
	var pronounName string
	command := &cobra.Command{
		Use:   "conjugate <verb>",
		Short: "Show every tense and form of a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lexicon, err := loadLexicon(cfg)
			if err != nil {
				return err
			}

			pronoun, err := conjugation.ParsePronoun(pronounName)
			if err != nil {
				return err
			}
			verb := strings.ToLower(strings.TrimSpace(args[0]))
			table, err := lexicon.Conjugate(pronoun, verb)
			if err != nil {
				return fmt.Errorf("lexicon.Conjugate() > %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			header := []string{"Tense"}
			for _, form := range conjugation.Forms() {
				header = append(header, string(form))
			}
			_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
			for _, tense := range conjugation.Tenses() {
				row := []string{string(tense)}
				for _, form := range conjugation.Forms() {
					row = append(row, table[tense][form])
				}
				_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
	command.Flags().StringVar(&pronounName, "pronoun", string(conjugation.PronounI), "pronoun to conjugate for")
	return command
}
