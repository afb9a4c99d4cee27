package main

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
)

func newSchemaCmd() *cobra.Command {
	kvargs := &struct {
		target string
	}{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of an agent listing or generate request",
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any
			switch kvargs.target {
			case "agent":
				v = &entity.Agent{}
			case "generate":
				v = &artifact.GenerateRequest{}
			default:
				return errors.Wrapf(errors.ErrInvalidParams, "unknown schema %q", kvargs.target)
			}

			reflector := jsonschema.Reflector{
				DoNotReference: true,
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errors.WithStack(enc.Encode(reflector.Reflect(v)))
		},
	}

	cmd.Flags().StringVar(&kvargs.target, "for", "agent", "Schema to print: agent or generate")

	return cmd
}
