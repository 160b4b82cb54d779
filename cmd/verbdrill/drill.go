package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbdrill/internal/cli"
	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/dictionary"
	"github.com/at-ishikawa/verbdrill/internal/inference"
	"github.com/at-ishikawa/verbdrill/internal/inference/openai"
	"github.com/at-ishikawa/verbdrill/internal/practice"
)

type drillFlags struct {
	verbCount int
	pronouns  []string
	tenses    []string
	forms     []string
	seed      int64
}

func newDrillCommand() *cobra.Command {
	var flags drillFlags
	command := &cobra.Command{
		Use:   "drill",
		Short: "Practice conjugating verbs interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lexicon, err := loadLexicon(cfg)
			if err != nil {
				return err
			}

			settings, err := drillSettings(cfg.Practice, flags)
			if err != nil {
				return err
			}
			seed := flags.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			trainer, err := practice.NewTrainer(lexicon, settings, rand.New(rand.NewSource(seed)))
			if err != nil {
				return fmt.Errorf("practice.NewTrainer() > %w", err)
			}

			repository, closeRepository, err := newAttemptRepository(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepository()
			}()

			var opts []cli.DrillOption
			if cfg.Dictionaries.RapidAPI.Host != "" && cfg.Dictionaries.RapidAPI.Key != "" {
				opts = append(opts, cli.WithDictionary(dictionary.NewReader(cfg.Dictionaries.RapidAPI.CacheDirectory, dictionary.Config{
					RapidAPIHost: cfg.Dictionaries.RapidAPI.Host,
					RapidAPIKey:  cfg.Dictionaries.RapidAPI.Key,
				})))
			}
			if cfg.OpenAI.APIKey != "" {
				openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
				defer func() {
					_ = openaiClient.Close()
				}()
				opts = append(opts, cli.WithExplainer(openaiClient))
			}

			sessionID := uuid.NewString()
			slog.Default().Debug("starting a drill", "session_id", sessionID, "seed", seed, "verb_count", settings.VerbCount)

			stdout := cmd.OutOrStdout()
			drillCLI := cli.NewDrillCLI(cmd.InOrStdin(), stdout, trainer, repository, sessionID, opts...)
			_, _ = fmt.Fprintln(stdout, "Verb drill started!")
			_, _ = fmt.Fprintln(stdout, "Type 'hint' to look up the verb and 'quit' to exit.")
			return drillCLI.Run(cmd.Context(), drillCLI)
		},
	}

	command.Flags().IntVar(&flags.verbCount, "verbs", 0, "number of leading catalog verbs to practice")
	command.Flags().StringSliceVar(&flags.pronouns, "pronoun", nil, "pronouns to practice, such as --pronoun she,they")
	command.Flags().StringSliceVar(&flags.tenses, "tense", nil, "tenses to practice, such as --tense past-simple")
	command.Flags().StringSliceVar(&flags.forms, "form", nil, "forms to practice: affirmative, negative or question")
	command.Flags().Int64Var(&flags.seed, "seed", 0, "random seed. The current time is used when zero")
	return command
}

// drillSettings applies the flags over the practice configuration.
func drillSettings(practiceConfig config.PracticeConfig, flags drillFlags) (practice.Settings, error) {
	verbCount := practiceConfig.VerbCount
	if flags.verbCount > 0 {
		verbCount = flags.verbCount
	}
	pronouns := practiceConfig.Pronouns
	if len(flags.pronouns) > 0 {
		pronouns = flags.pronouns
	}
	tenses := practiceConfig.Tenses
	if len(flags.tenses) > 0 {
		tenses = flags.tenses
	}
	forms := practiceConfig.Forms
	if len(flags.forms) > 0 {
		forms = flags.forms
	}

	settings, err := practice.ParseSettings(verbCount, pronouns, tenses, forms)
	if err != nil {
		return practice.Settings{}, fmt.Errorf("practice.ParseSettings() > %w", err)
	}
	return settings, nil
}
