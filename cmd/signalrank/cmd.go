package main

import (
	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/config"
)

type globalFlags struct {
	databaseUrl string
	baseURL     string
	scoringFile string
}

func newCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "signalrank",
		Short:         "Signal Rank scoring and artifact generation for AI agents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.databaseUrl, "db", "", "SQLite database path (overrides DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "Public base URL used in generated links (overrides BASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.scoringFile, "scoring", "", "YAML file with sub-score weights (overrides SCORING_FILE)")

	cmd.AddCommand(
		newServeCmd(flags),
		newMCPCmd(flags),
		newImportCmd(flags),
		newGenerateCmd(flags),
		newRescoreCmd(flags),
		newTierCmd(),
		newSchemaCmd(),
	)

	return cmd
}

// newContainer resolves the server config from the environment and applies
// command line overrides before anything else is built from it.
func newContainer(cmd *cobra.Command, flags *globalFlags) (*din.Container, error) {
	c := din.NewContainer(cmd.Context(), din.EnvProd)

	cfg, err := din.GetT[*config.ServerConfig](c)
	if err != nil {
		c.Close()
		return nil, err
	}
	if flags.databaseUrl != "" {
		cfg.DatabaseUrl = flags.databaseUrl
	}
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
	}
	if flags.scoringFile != "" {
		cfg.ScoringFile = flags.scoringFile
	}

	return c, nil
}
