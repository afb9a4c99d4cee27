package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/signalrank"
)

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <score>",
		Short: "Print the tier of a Signal Rank score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidParams, "score %q is not a number", args[0])
			}

			tier := signalrank.TierFromScore(score)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				signalrank.TierEmoji(tier),
				tier,
				signalrank.TierColor(tier),
				signalrank.TierReliability(tier),
			)
			return errors.WithStack(err)
		},
	}
}
