package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/habiliai/signalrank/mcpserver"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the Signal Rank tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd, flags)
			if err != nil {
				return err
			}
			defer c.Close()

			return server.ServeStdio(mcpserver.New(c, version))
		},
	}
}
