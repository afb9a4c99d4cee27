package main

import (
	"fmt"

	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/directory"
)

func newRescoreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rescore",
		Short: "Recompute every stored score with the current weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd, flags)
			if err != nil {
				return err
			}
			defer c.Close()

			manager, err := din.GetT[directory.Manager](c)
			if err != nil {
				return err
			}

			changed, err := manager.RescoreAll(c)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rescored %d agents\n", changed)
			return nil
		},
	}
}
