package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/aquascore/internal/adapters/mcp"
	"github.com/okian/aquascore/pkg/logger"
)

func newMCPCmd(c *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the aquascore MCP server on stdio",
		Long:  `Launch an MCP server that lets AI agents run performance overviews and result comparisons as tools.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			return mcp.Serve(cmd.Context(), svc, Version,
				mcp.WithMaxResults(c.cfg.MaxResults),
				mcp.WithLogger(logger.Named("mcp")),
			)
		},
	}
}
