package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/repolens/repolens/core"
	"github.com/repolens/repolens/core/history"
	"github.com/repolens/repolens/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
}

// applyCommonOverrides copies per-request root and lookback values onto a
// cloned config. Lookback errors are returned to the caller as tool errors.
func applyCommonOverrides(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("root_path", ""); p != "" {
		root, err := contract.ValidateRoot(p)
		if err != nil {
			return err
		}
		cfg.RootPath = root
	}
	if l := request.GetString("lookback", ""); l != "" {
		d, err := contract.ParseLookbackDuration(l)
		if err != nil {
			return err
		}
		cfg.Lookback = d
		cfg.Since = time.Now().Add(-d)
	}
	return nil
}

func (h *toolHandler) handleScanRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scan parameters: %v", err)), nil
	}
	if request.GetBool("no_history", false) {
		cfg.NoHistory = true
	}

	report, err := core.Scan(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCollectMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.NoHistory = true
	if err := applyCommonOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metrics parameters: %v", err)), nil
	}
	if inc := request.GetString("include", ""); inc != "" {
		if err := contract.MergeIncludePairs(cfg.IncludeExtensions, inc); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid metrics parameters: %v", err)), nil
		}
	}

	report, err := core.Scan(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metrics collection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleChangeHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid history parameters: %v", err)), nil
	}
	if n := request.GetInt("max_commits", 0); n > 0 {
		cfg.MaxCommits = n
	}
	limit := cfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	result := history.Aggregate(ctx, cfg, h.client)
	output := struct {
		Records  any `json:"records"`
		Stats    any `json:"stats,omitempty"`
		Warnings any `json:"warnings,omitempty"`
	}{
		Records: history.Rank(result.Records, limit),
	}
	if result.Stats != nil {
		output.Stats = result.Stats
	}
	if len(result.Warnings) > 0 {
		output.Warnings = result.Warnings
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := core.LanguageInfos(h.baseCfg)
	sort.Slice(infos, func(i, j int) bool { return infos[i].Extension < infos[j].Extension })

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
