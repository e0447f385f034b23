package core

import (
	"context"
	"time"

	"github.com/repolens/repolens/core/history"
	"github.com/repolens/repolens/core/metrics"
	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different scan modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteScan runs the full scan (discovery, metrics, history) and prints the
// merged report to the configured output. It serves as the main entry point
// for the 'scan' subcommand.
func ExecuteScan(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	client := contract.NewLocalGitClient()
	report, err := Scan(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteReport(report, cfg, duration)
}

// ExecuteMetrics runs discovery and metrics collection only, skipping the
// git history pass entirely. Entry point for the 'metrics' subcommand.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	metricsCfg := cfg.Clone()
	metricsCfg.NoHistory = true
	report, err := Scan(ctx, metricsCfg, contract.NewLocalGitClient())
	if err != nil {
		return err
	}
	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteReport(report, metricsCfg, duration)
}

// ExecuteHistory runs the git aggregation pass alone and prints the most
// changed paths. Entry point for the 'history' subcommand.
func ExecuteHistory(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	root, err := contract.ValidateRoot(cfg.RootPath)
	if err != nil {
		return err
	}
	histCfg := cfg.Clone()
	histCfg.RootPath = root
	client := contract.NewLocalGitClient()
	result := history.Aggregate(ctx, histCfg, client)
	ranked := history.Rank(result.Records, cfg.ResultLimit)
	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteHistory(ranked, result.Stats, result.Warnings, histCfg, duration)
}

// ExecuteLanguages prints the active extension-to-language table so users can
// see what a scan with the current flags would pick up.
func ExecuteLanguages(_ context.Context, cfg *contract.Config) error {
	ow := outwriter.NewOutWriter()
	return ow.WriteLanguages(LanguageInfos(cfg), cfg)
}

// LanguageInfos builds the extension mapping rows for the active config.
func LanguageInfos(cfg *contract.Config) []outwriter.LanguageInfo {
	infos := make([]outwriter.LanguageInfo, 0, len(cfg.IncludeExtensions))
	for ext, lang := range cfg.IncludeExtensions {
		infos = append(infos, outwriter.LanguageInfo{
			Extension: ext,
			Language:  lang,
			Metrics:   metrics.FamilyForLanguage(lang) != nil,
		})
	}
	return infos
}
