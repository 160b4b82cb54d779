package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerbsCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "verbs",
		Short: "List the verbs of the catalog, most common first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lexicon, err := loadLexicon(cfg)
			if err != nil {
				return err
			}

			verbs := lexicon.Verbs()
			if limit > 0 && limit < len(verbs) {
				verbs = verbs[:limit]
			}
			for i, verb := range verbs {
				marker := ""
				if lexicon.HasIrregularForms(verb) {
					forms := lexicon.LookupForms(verb)
					marker = fmt.Sprintf(" (%s, %s)", forms.PastSimple, forms.PastParticiple)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s%s\n", i+1, verb, marker)
			}
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of verbs to list")
	return command
}
