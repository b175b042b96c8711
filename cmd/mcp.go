package cmd

import (
	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/mcp"
	"github.com/juanibiapina/venue/internal/version"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server on stdio",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets AI agents search venues, read reviews and book on your behalf.
Codes are still delivered to you; the agent asks you for them.

Example configuration for .mcp.json:
  {
    "mcpServers": {
      "venue": {
        "command": "venue",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			return mcp.NewServer(version.Version, a).Serve()
		})
	},
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}
