// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a merged scan report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.ScanReport, cfg *contract.Config, duration time.Duration) error {
	return WriteScanReport(report, cfg, duration)
}

// WriteHistory prints ranked change-history records using the configured output format.
func (ow *OutWriter) WriteHistory(ranked []*schema.HistoryRecord, stats *schema.RepoStats, warnings []schema.Warning, cfg *contract.Config, duration time.Duration) error {
	return WriteHistoryResults(ranked, stats, warnings, cfg, duration)
}

// WriteLanguages prints the active extension-to-language mapping.
func (ow *OutWriter) WriteLanguages(infos []LanguageInfo, cfg *contract.Config) error {
	return WriteLanguageInfos(infos, cfg)
}
