// Package core orchestrates discovery, metrics and history into a ScanReport.
package core

import (
	"context"
	"sync"
	"time"

	"github.com/repolens/repolens/core/discover"
	"github.com/repolens/repolens/core/history"
	"github.com/repolens/repolens/core/metrics"
	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// Scan runs the full pipeline: discovery enumerates files, metrics
// collection fans out over a worker pool, history aggregation runs one git
// pass, and the merge joins everything by path. The only error returned is
// contract.ErrInvalidRoot; every other condition accumulates into the
// report's warnings. Cancelling ctx stops further file reads promptly and
// yields whatever partial report has been assembled.
func Scan(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.ScanReport, error) {
	disc, err := discover.Walk(ctx, cfg)
	if err != nil {
		return nil, err
	}

	report := &schema.ScanReport{
		Root:     cfg.RootPath,
		Entries:  make(map[string]*schema.ReportEntry, len(disc.Entries)),
		Warnings: disc.Warnings,
	}
	for _, fe := range disc.Entries {
		report.Entries[fe.Path] = &schema.ReportEntry{File: fe}
	}

	report.Warnings = append(report.Warnings, collectAllMetrics(ctx, cfg, disc.Entries, report)...)

	if !cfg.NoHistory && ctx.Err() == nil {
		hist := history.Aggregate(ctx, cfg, client)
		report.Warnings = append(report.Warnings, hist.Warnings...)
		report.HistoryAvailable = hist.Available
		if hist.Available {
			report.RepoStats = hist.Stats
			for p, rec := range hist.Records {
				if e, ok := report.Entries[p]; ok {
					e.History = rec
				}
			}
		}
	}

	// A discovered file must never drop out of the report without an
	// explicit marker; cancellation can leave entries unprocessed.
	for _, e := range report.Entries {
		if e.Metrics == nil {
			e.MetricsUnavailable = true
		}
	}

	report.ComputeTotals()
	report.GeneratedAt = time.Now()
	return report, nil
}

// metricsOutcome carries one worker result: either a record or a warning.
type metricsOutcome struct {
	path string
	rec  *schema.MetricsRecord
	warn *schema.Warning
}

// collectAllMetrics processes all files in parallel using a worker pool of
// cfg.Workers goroutines and writes records into the report entries.
// Unreadable files are omitted with a warning; the scan continues.
func collectAllMetrics(ctx context.Context, cfg *contract.Config, entries []schema.FileEntry, report *schema.ScanReport) []schema.Warning {
	fileCh := make(chan schema.FileEntry, len(entries))
	resultCh := make(chan metricsOutcome, len(entries))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for fe := range fileCh {
				if ctx.Err() != nil {
					continue // Drain the channel without further reads
				}
				rec, err := metrics.CollectFile(cfg.RootPath, fe)
				if err != nil {
					resultCh <- metricsOutcome{path: fe.Path, warn: &schema.Warning{
						Kind:   schema.WarnFileUnreadable,
						Path:   fe.Path,
						Detail: err.Error(),
					}}
					continue
				}
				resultCh <- metricsOutcome{path: fe.Path, rec: &rec}
			}
		})
	}

	for _, fe := range entries {
		fileCh <- fe
	}
	close(fileCh)
	wg.Wait()
	close(resultCh)

	var warnings []schema.Warning
	for out := range resultCh {
		e := report.Entries[out.path]
		if out.rec != nil {
			e.Metrics = out.rec
			continue
		}
		e.MetricsUnavailable = true
		warnings = append(warnings, *out.warn)
	}
	return warnings
}
