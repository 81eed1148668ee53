package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/mcpserver"
	"github.com/fleuristes/fleur/internal/messages"
)

var runMCPServer = mcpserver.Run

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ServeUse,
		Short: messages.ServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(opts, logFile)
			if err != nil {
				return err
			}
			defer d.close()

			d.logger.Info("starting MCP server", zap.String("version", Version))
			d.service.PreloadDependencies()
			return runMCPServer(cmd.Context(), d.service, Version, d.logger.Named("mcp"))
		},
	}
}
