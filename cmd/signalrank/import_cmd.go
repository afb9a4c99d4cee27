package main

import (
	"fmt"

	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/signalrank"
)

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Import agent listings from YAML or JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := directory.LoadAgentFiles(args)
			if err != nil {
				return err
			}

			c, err := newContainer(cmd, flags)
			if err != nil {
				return err
			}
			defer c.Close()

			manager, err := din.GetT[directory.Manager](c)
			if err != nil {
				return err
			}

			for _, agent := range agents {
				saved, err := manager.SubmitAgent(c, agent)
				if err != nil {
					return errors.Wrapf(err, "failed to import %s", agent.Slug)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s %s\n", saved.Slug, saved.SRTier, signalrank.FormatScore(saved.SRScore))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d agents\n", len(agents))
			return nil
		},
	}
}
