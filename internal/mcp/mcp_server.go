// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repolens/repolens/internal/contract"
)

// NewMCPServer initializes and configures the Repolens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Repolens Scan Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  contract.NewLocalGitClient(),
	}

	// --- 1. Tool: scan_repository ---
	s.AddTool(mcp.NewTool("scan_repository",
		mcp.WithDescription("Scan a source tree: discover files, compute per-file metrics and merge in git change history."),
		mcp.WithString("root_path", mcp.Description("Path to the source tree root (defaults to the server's working directory).")),
		mcp.WithString("lookback", mcp.Description("History window (e.g., '6 months', '30 days', '720h').")),
		mcp.WithBoolean("no_history", mcp.Description("Skip the git history pass entirely.")),
	), h.handleScanRepository)

	// --- 2. Tool: collect_metrics ---
	s.AddTool(mcp.NewTool("collect_metrics",
		mcp.WithDescription("Discover files and compute line-count and complexity metrics without touching git."),
		mcp.WithString("root_path", mcp.Description("Path to the source tree root.")),
		mcp.WithString("include", mcp.Description("Extra extension mappings, comma-separated (e.g., '.tf=Terraform,.proto=Protobuf').")),
	), h.handleCollectMetrics)

	// --- 3. Tool: change_history ---
	s.AddTool(mcp.NewTool("change_history",
		mcp.WithDescription("Aggregate git change history per path: commit counts, churn, authorship and bug-fix signals."),
		mcp.WithString("root_path", mcp.Description("Path to the repository root.")),
		mcp.WithString("lookback", mcp.Description("Time window for the log pass (e.g., '6 months', '90 days').")),
		mcp.WithNumber("max_commits", mcp.Description("Bound the number of commits examined.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked paths returned.")),
	), h.handleChangeHistory)

	// --- 4. Tool: list_languages ---
	s.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List the active extension-to-language mapping and which languages get full metrics."),
	), h.handleListLanguages)

	return s
}

// StartMCPServer starts the Repolens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
