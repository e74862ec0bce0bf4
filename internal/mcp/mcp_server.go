// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/prlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Prlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Prlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	// --- 1. Tool: analyze_changeset ---
	s.AddTool(mcp.NewTool("analyze_changeset",
		mcp.WithDescription("Score the complexity of a changeset between two Git references and suggest reviewers."),
		mcp.WithString("base_ref", mcp.Description("The merge base of the changeset."), mcp.Required()),
		mcp.WithString("target_ref", mcp.Description("The tip of the changeset. Defaults to HEAD.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
	), h.handleAnalyzeChangeset)

	// --- 2. Tool: suggest_reviewers ---
	s.AddTool(mcp.NewTool("suggest_reviewers",
		mcp.WithDescription("Suggest reviewers for a changeset based on configured path ownership rules."),
		mcp.WithString("base_ref", mcp.Description("The merge base of the changeset."), mcp.Required()),
		mcp.WithString("target_ref", mcp.Description("The tip of the changeset. Defaults to HEAD.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleSuggestReviewers)

	return s
}

// StartMCPServer starts the Prlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
