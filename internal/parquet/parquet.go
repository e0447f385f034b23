// Package parquet exports scan reports to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/repolens/repolens/schema"
)

// ReportRow is the flattened per-file projection of a ScanReport used for
// columnar export. History columns are nullable because a scan without a
// repository, or with --no-history, has no values for them.
type ReportRow struct {
	// Path is the root-relative, slash-separated file path
	Path string `parquet:"path,snappy"`

	// Language is the inferred language tag
	Language string `parquet:"language,snappy"`

	// SizeBytes is the file size at scan time
	SizeBytes int64 `parquet:"size_bytes,snappy"`

	// IsTest marks files matching a test naming convention
	IsTest bool `parquet:"is_test,snappy"`

	// Binary marks files whose content could not be decoded as text
	Binary bool `parquet:"binary,snappy"`

	// MetricsUnavailable marks files discovered but not readable
	MetricsUnavailable bool `parquet:"metrics_unavailable,snappy"`

	// LineCount is the total line count (0 for binary/unreadable files)
	LineCount int32 `parquet:"line_count,snappy"`

	// BlankLineCount is the number of whitespace-only lines
	BlankLineCount int32 `parquet:"blank_line_count,snappy"`

	// CommentLineCount is the number of comment lines
	CommentLineCount int32 `parquet:"comment_line_count,snappy"`

	// CodeLineCount is the number of remaining code lines
	CodeLineCount int32 `parquet:"code_line_count,snappy"`

	// ComplexitySignal is the branching-keyword occurrence count
	ComplexitySignal int32 `parquet:"complexity_signal,snappy"`

	// FunctionCount is the function-declaration estimate
	FunctionCount int32 `parquet:"function_count,snappy"`

	// CommitCount is the number of commits touching the path (nullable)
	CommitCount *int32 `parquet:"commit_count,optional,snappy"`

	// Churn is the total lines added plus deleted (nullable)
	Churn *int32 `parquet:"churn,optional,snappy"`

	// BugFixCount is the number of bug-fix commits (nullable)
	BugFixCount *int32 `parquet:"bug_fix_count,optional,snappy"`

	// Authors is the comma-joined author list, most commits first (nullable)
	Authors *string `parquet:"authors,optional,snappy"`

	// LastModified is the most recent commit date (nullable)
	LastModified *time.Time `parquet:"last_modified,optional,snappy"`

	// FirstCommit is the oldest commit date in the window (nullable)
	FirstCommit *time.Time `parquet:"first_commit,optional,snappy"`
}

// RowsFromReport flattens a ScanReport into rows ordered by path.
func RowsFromReport(report *schema.ScanReport) []ReportRow {
	rows := make([]ReportRow, 0, len(report.Entries))
	for _, p := range report.SortedPaths() {
		e := report.Entries[p]
		row := ReportRow{
			Path:               e.File.Path,
			Language:           e.File.Language,
			SizeBytes:          e.File.SizeBytes,
			IsTest:             e.File.IsTest,
			MetricsUnavailable: e.MetricsUnavailable,
		}
		if m := e.Metrics; m != nil {
			row.Binary = m.Binary
			row.LineCount = int32(m.LineCount)
			row.BlankLineCount = int32(m.BlankLineCount)
			row.CommentLineCount = int32(m.CommentLineCount)
			row.CodeLineCount = int32(m.CodeLineCount)
			row.ComplexitySignal = int32(m.ComplexitySignal)
			row.FunctionCount = int32(m.FunctionCount)
		}
		if h := e.History; h != nil {
			commits := int32(h.CommitCount)
			churn := int32(h.Churn)
			fixes := int32(h.BugFixCount)
			authors := strings.Join(h.Authors, ", ")
			last := h.LastModified
			first := h.FirstCommit
			row.CommitCount = &commits
			row.Churn = &churn
			row.BugFixCount = &fixes
			row.Authors = &authors
			row.LastModified = &last
			row.FirstCommit = &first
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteReportParquet writes the flattened report rows to a Parquet file.
// The schema is derived from the ReportRow struct tags.
func WriteReportParquet(rows []ReportRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[ReportRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
