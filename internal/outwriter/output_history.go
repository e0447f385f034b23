package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

const maxTableAuthors = 2

// WriteHistoryResults outputs ranked change-history records, dispatching
// based on the output format configured. Parquet is not offered here; the
// columnar export belongs to the full report.
func WriteHistoryResults(ranked []*schema.HistoryRecord, stats *schema.RepoStats, warnings []schema.Warning, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForHistory(w, ranked, stats, warnings)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, historyCSVHeader, func(cw *csv.Writer) error {
				return writeCSVRowsForHistory(cw, ranked)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(ranked, stats, warnings, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryTable generates and writes the human-readable table.
func writeHistoryTable(ranked []*schema.HistoryRecord, stats *schema.RepoStats, warnings []schema.Warning, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Path", "Commits", "Churn", "Fixes", "Authors", "Last Modified"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for i, h := range ranked {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(h.Path, maxPathWidth),
			strconv.Itoa(h.CommitCount),
			strconv.Itoa(h.Churn),
			strconv.Itoa(h.BugFixCount),
			schema.FormatAuthors(h.Authors, maxTableAuthors),
			h.LastModified.Format(contract.DateTimeFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if stats != nil {
		if _, err := fmt.Fprintf(writer, "Showing top %d paths (%d commits by %d authors since %s)\n",
			len(ranked), stats.CommitCount, stats.AuthorCount, stats.FirstCommit.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(writer, "No history available"); err != nil {
			return err
		}
	}
	if len(warnings) > 0 {
		if _, err := fmt.Fprintf(writer, "Warnings: %s\n", summarizeWarnings(warnings)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "History pass completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

var historyCSVHeader = []string{
	"rank",
	"path",
	"commits",
	"churn",
	"bug_fixes",
	"authors",
	"first_commit",
	"last_modified",
}

func writeCSVRowsForHistory(w *csv.Writer, ranked []*schema.HistoryRecord) error {
	for i, h := range ranked {
		rec := []string{
			strconv.Itoa(i + 1),
			h.Path,
			strconv.Itoa(h.CommitCount),
			strconv.Itoa(h.Churn),
			strconv.Itoa(h.BugFixCount),
			strings.Join(h.Authors, "|"),
			h.FirstCommit.Format(contract.DateTimeFormat),
			h.LastModified.Format(contract.DateTimeFormat),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForHistory writes ranked history records in JSON format.
func writeJSONResultsForHistory(w io.Writer, ranked []*schema.HistoryRecord, stats *schema.RepoStats, warnings []schema.Warning) error {
	type JSONHistoryRecord struct {
		Rank int `json:"rank"`
		*schema.HistoryRecord
	}
	output := struct {
		Records  []JSONHistoryRecord `json:"records"`
		Stats    *schema.RepoStats   `json:"stats,omitempty"`
		Warnings []schema.Warning    `json:"warnings,omitempty"`
	}{
		Records:  make([]JSONHistoryRecord, len(ranked)),
		Stats:    stats,
		Warnings: warnings,
	}
	for i, h := range ranked {
		output.Records[i] = JSONHistoryRecord{Rank: i + 1, HistoryRecord: h}
	}
	return writeJSON(w, output)
}
