package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/prlens/core"
	"github.com/huangsam/prlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
}

// applyChangesetParams copies the per-request changeset parameters onto a
// cloned config. Validation happens downstream in the collector.
func (h *toolHandler) applyChangesetParams(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	cfg.BaseRef = request.GetString("base_ref", "")
	if t := request.GetString("target_ref", ""); t != "" {
		cfg.TargetRef = t
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	return cfg
}

func (h *toolHandler) handleAnalyzeChangeset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyChangesetParams(request)

	report, set, err := core.GetReport(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := map[string]any{
		"base_ref":         set.BaseRef,
		"target_ref":       set.TargetRef,
		"score":            report.Score,
		"suggested_owners": report.SuggestedOwners,
		"flagged_files":    report.FlaggedFiles,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSuggestReviewers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyChangesetParams(request)

	set, err := core.Collect(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("changeset collection failed: %v", err)), nil
	}

	owners := core.SuggestOwners(set, cfg.Owners)
	payload := map[string]any{
		"base_ref":         set.BaseRef,
		"target_ref":       set.TargetRef,
		"suggested_owners": owners,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
