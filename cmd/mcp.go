package cmd

import (
	"github.com/huangsam/prlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts the MCP server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the MCP server for AI assistant integrations.",
	Long: `Expose changeset analysis over the Model Context Protocol (MCP).

The server communicates over stdio and offers two tools:
- analyze_changeset: score a changeset and suggest reviewers
- suggest_reviewers: list owners for the changed paths only

Refs are supplied per request, so one server instance can answer questions
about any range in the repository.

Example Claude Desktop configuration:
  {
    "mcpServers": {
      "prlens": {
        "command": "prlens",
        "args": ["mcp", "/path/to/repo"]
      }
    }
  }`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient)
	},
}
