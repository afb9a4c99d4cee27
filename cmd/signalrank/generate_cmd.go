package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jcooky/go-din"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/errors"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	kvargs := &struct {
		typ    string
		remote string
		raw    bool
	}{}

	cmd := &cobra.Command{
		Use:   "generate <slug>",
		Short: "Generate a JSON-LD block, badge or interface prompt for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &artifact.GenerateRequest{
				AgentSlug: args[0],
				Type:      artifact.Type(kvargs.typ),
			}
			if !req.Type.Valid() {
				return errors.Wrapf(errors.ErrInvalidParams, "--type must be one of jsonld, badge or prompt")
			}

			var (
				resp *artifact.GenerateResponse
				err  error
			)
			if kvargs.remote != "" {
				resp, err = artifact.NewJsonRpcClient(kvargs.remote).Generate(cmd.Context(), req)
			} else {
				c, cerr := newContainer(cmd, flags)
				if cerr != nil {
					return cerr
				}
				defer c.Close()

				var service artifact.Service
				if service, err = din.GetT[artifact.Service](c); err != nil {
					return err
				}
				resp, err = service.Generate(c, req)
			}
			if err != nil {
				return err
			}

			return printArtifact(cmd.OutOrStdout(), resp, kvargs.raw)
		},
	}

	cmd.Flags().StringVarP(&kvargs.typ, "type", "t", string(artifact.TypeJSONLD), "Artifact type: jsonld, badge or prompt")
	cmd.Flags().StringVar(&kvargs.remote, "remote", "", "JSON-RPC endpoint of a running server, e.g. http://localhost:9080/rpc")
	cmd.Flags().BoolVar(&kvargs.raw, "raw", false, "Print only the embeddable text instead of the full JSON result")

	return cmd
}

func printArtifact(w io.Writer, resp *artifact.GenerateResponse, raw bool) error {
	if raw {
		var text string
		switch resp.Type {
		case artifact.TypeJSONLD:
			text = resp.JSONLD.JSONLDString
		case artifact.TypeBadge:
			text = resp.Badge.SvgContent
		case artifact.TypePrompt:
			text = resp.Prompt.SystemPrompt
		}
		_, err := fmt.Fprintln(w, text)
		return errors.WithStack(err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(resp.Output()))
}
