package schema

import (
	"sort"
	"strings"
)

// SortedPaths returns the report entry keys in lexicographic order so that
// serialized output is deterministic across runs on an unchanged tree.
func (r *ScanReport) SortedPaths() []string {
	paths := make([]string, 0, len(r.Entries))
	for p := range r.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WarningCount returns the number of warnings of the given kind.
func (r *ScanReport) WarningCount(kind WarningKind) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// ComputeTotals recalculates the aggregate totals from the current entries.
// Entries without metrics contribute only to the file and language counts.
func (r *ScanReport) ComputeTotals() {
	totals := ReportTotals{Languages: make(map[string]int)}
	for _, e := range r.Entries {
		totals.Files++
		totals.Languages[e.File.Language]++
		m := e.Metrics
		if m == nil {
			continue
		}
		if m.Binary {
			totals.BinaryFiles++
			continue
		}
		totals.Lines += m.LineCount
		totals.CodeLines += m.CodeLineCount
		totals.CommentLines += m.CommentLineCount
		totals.BlankLines += m.BlankLineCount
		totals.Functions += m.FunctionCount
		totals.ComplexitySignal += m.ComplexitySignal
	}
	r.Totals = totals
}

// FormatAuthors renders an author list for display, truncating long lists.
func FormatAuthors(authors []string, limit int) string {
	if len(authors) == 0 {
		return "-"
	}
	if limit > 0 && len(authors) > limit {
		return strings.Join(authors[:limit], ", ") + ", ..."
	}
	return strings.Join(authors, ", ")
}
