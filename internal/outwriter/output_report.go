package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/internal/parquet"
	"github.com/repolens/repolens/schema"
)

// WriteScanReport outputs a merged scan report, dispatching based on the
// output format configured. JSON and Parquet carry the full report; the
// table view ranks entries by complexity signal and caps at the result limit.
func WriteScanReport(report *schema.ScanReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, reportCSVHeader, func(cw *csv.Writer) error {
				return writeCSVRowsForReport(cw, report)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		return parquet.WriteReportParquet(parquet.RowsFromReport(report), cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// rankEntries orders report entries by complexity signal descending, ties
// broken by path, and caps the result at limit (0 = no cap).
func rankEntries(report *schema.ScanReport, limit int) []*schema.ReportEntry {
	entries := make([]*schema.ReportEntry, 0, len(report.Entries))
	for _, p := range report.SortedPaths() {
		entries = append(entries, report.Entries[p])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entrySignal(entries[i]) > entrySignal(entries[j])
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func entrySignal(e *schema.ReportEntry) int {
	if e.Metrics == nil {
		return 0
	}
	return e.Metrics.ComplexitySignal
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(report *schema.ScanReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	entries := rankEntries(report, cfg.ResultLimit)

	table := tablewriter.NewWriter(writer)
	headers := []string{"Rank", "Path", "Language", "Lines", "Code", "Complexity", "Label"}
	if report.HistoryAvailable {
		headers = append(headers, "Commits", "Churn")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(e.File.Path, maxPathWidth),
			e.File.Language,
		}
		switch {
		case e.MetricsUnavailable:
			row = append(row, "-", "-", "-", "unreadable")
		case e.Metrics.Binary:
			row = append(row, "-", "-", "-", "binary")
		default:
			m := e.Metrics
			row = append(row,
				strconv.Itoa(m.LineCount),
				strconv.Itoa(m.CodeLineCount),
				strconv.Itoa(m.ComplexitySignal),
				labelFor(m.ComplexitySignal, cfg.UseColors),
			)
		}
		if report.HistoryAvailable {
			if h := e.History; h != nil {
				row = append(row, strconv.Itoa(h.CommitCount), strconv.Itoa(h.Churn))
			} else {
				row = append(row, "-", "-")
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	t := report.Totals
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d files (%d lines, %d code, %d binary, %d languages)\n",
		len(entries), t.Files, t.Lines, t.CodeLines, t.BinaryFiles, len(t.Languages)); err != nil {
		return err
	}
	if report.RepoStats != nil {
		s := report.RepoStats
		if _, err := fmt.Fprintf(writer, "History: %d commits by %d authors since %s\n",
			s.CommitCount, s.AuthorCount, s.FirstCommit.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	} else if !report.HistoryAvailable {
		if _, err := fmt.Fprintln(writer, "History: unavailable"); err != nil {
			return err
		}
	}
	if len(report.Warnings) > 0 {
		if _, err := fmt.Fprintf(writer, "Warnings: %s\n", summarizeWarnings(report.Warnings)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Scan completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// summarizeWarnings renders counts per warning kind in a stable order.
func summarizeWarnings(warnings []schema.Warning) string {
	counts := make(map[schema.WarningKind]int)
	for _, w := range warnings {
		counts[w.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[schema.WarningKind(k)]))
	}
	return strings.Join(parts, ", ")
}

var reportCSVHeader = []string{
	"path",
	"language",
	"size_bytes",
	"is_test",
	"binary",
	"lines",
	"blank_lines",
	"comment_lines",
	"code_lines",
	"complexity_signal",
	"functions",
	"label",
	"commits",
	"churn",
	"bug_fixes",
	"authors",
	"last_modified",
}

// writeCSVRowsForReport writes every entry sorted by path. CSV keeps the
// full report rather than the ranked view so it can feed downstream tooling.
func writeCSVRowsForReport(w *csv.Writer, report *schema.ScanReport) error {
	for _, p := range report.SortedPaths() {
		e := report.Entries[p]
		rec := []string{
			e.File.Path,
			e.File.Language,
			strconv.FormatInt(e.File.SizeBytes, 10),
			strconv.FormatBool(e.File.IsTest),
		}
		if m := e.Metrics; m != nil {
			rec = append(rec,
				strconv.FormatBool(m.Binary),
				strconv.Itoa(m.LineCount),
				strconv.Itoa(m.BlankLineCount),
				strconv.Itoa(m.CommentLineCount),
				strconv.Itoa(m.CodeLineCount),
				strconv.Itoa(m.ComplexitySignal),
				strconv.Itoa(m.FunctionCount),
				schema.ComplexityLabel(m.ComplexitySignal),
			)
		} else {
			rec = append(rec, "", "", "", "", "", "", "", "")
		}
		if h := e.History; h != nil {
			rec = append(rec,
				strconv.Itoa(h.CommitCount),
				strconv.Itoa(h.Churn),
				strconv.Itoa(h.BugFixCount),
				strings.Join(h.Authors, "|"),
				h.LastModified.Format(contract.DateTimeFormat),
			)
		} else {
			rec = append(rec, "", "", "", "", "")
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
