package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	catalogCommand := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog file commands",
	}

	catalogCommand.AddCommand(
		&cobra.Command{
			Use:   "export <path>",
			Short: "Write the built-in catalog as a YAML file to edit",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := catalog.WriteFile(args[0], catalog.Default()); err != nil {
					return fmt.Errorf("catalog.WriteFile() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d verbs to %s\n", catalog.Default().Len(), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <path>",
			Short: "Validate a catalog file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				lexicon, err := catalog.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("catalog.ReadFile() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d verbs, %d irregular, %d excluded\n",
					args[0], lexicon.Len(), len(lexicon.Irregulars()), len(lexicon.Excluded()))
				return nil
			},
		},
	)
	return catalogCommand
}
