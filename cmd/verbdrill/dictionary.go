package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/verbdrill/internal/dictionary"
)

type API string

func (a *API) Set(val string) error {
	for _, api := range allAPIs {
		if val == string(api) {
			*a = api
			return nil
		}
	}
	return fmt.Errorf("invalid API: %s", val)
}

func (a API) String() string {
	return string(a)
}

func (a *API) Type() string {
	return "API"
}

const (
	APIWordsAPIInRapidAPI API = "words_api"
)

var (
	_       pflag.Value = (*API)(nil)
	allAPIs             = []API{APIWordsAPIInRapidAPI}
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "dictionary",
		Short: "Dictionary commands",
	}
	api := APIWordsAPIInRapidAPI
	rootCommand.PersistentFlags().Var(&api, "api", fmt.Sprintf("API to use. Possible values are %v", allAPIs))

	rootCommand.AddCommand(&cobra.Command{
		Use:   "lookup <verb>",
		Short: "Look up the meaning of a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var lookuper dictionary.Lookuper
			switch api {
			case APIWordsAPIInRapidAPI:
				fallthrough
			default:
				lookuper = dictionary.NewReader(cfg.Dictionaries.RapidAPI.CacheDirectory, dictionary.Config{
					RapidAPIHost: cfg.Dictionaries.RapidAPI.Host,
					RapidAPIKey:  cfg.Dictionaries.RapidAPI.Key,
				})
			}

			response, err := lookuper.Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("dictionary.Lookup(%s) > %w", args[0], err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), response.Format())
			return nil
		},
	})
	return rootCommand
}
