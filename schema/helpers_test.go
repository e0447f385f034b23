package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexityLabel(t *testing.T) {
	tests := []struct {
		name   string
		signal int
		want   string
	}{
		{"zero", 0, MinimalLabel},
		{"just below low", 9, MinimalLabel},
		{"low boundary", 10, LowLabel},
		{"moderate boundary", 50, ModerateLabel},
		{"just below high", 149, ModerateLabel},
		{"high boundary", 150, HighLabel},
		{"very high", 5000, HighLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComplexityLabel(tt.signal))
		})
	}
}

func TestSortedPaths(t *testing.T) {
	r := &ScanReport{Entries: map[string]*ReportEntry{
		"b/d.rs":  {},
		"a.py":    {},
		"b/a.go":  {},
		"ز.py":    {},
		"README":  {},
		"b/aa.go": {},
	}}
	assert.Equal(t, []string{"README", "a.py", "b/a.go", "b/aa.go", "b/d.rs", "ز.py"}, r.SortedPaths())
}

func TestComputeTotals(t *testing.T) {
	r := &ScanReport{Entries: map[string]*ReportEntry{
		"a.py": {
			File: FileEntry{Path: "a.py", Language: "Python"},
			Metrics: &MetricsRecord{
				Path: "a.py", LineCount: 10, BlankLineCount: 1,
				CommentLineCount: 2, CodeLineCount: 7,
				ComplexitySignal: 3, FunctionCount: 1, Supported: true,
			},
		},
		"img.png": {
			File:    FileEntry{Path: "img.png", Language: "unknown"},
			Metrics: &MetricsRecord{Path: "img.png", Binary: true},
		},
		"broken.go": {
			File:               FileEntry{Path: "broken.go", Language: "Go"},
			MetricsUnavailable: true,
		},
	}}

	r.ComputeTotals()

	assert.Equal(t, 3, r.Totals.Files)
	assert.Equal(t, 10, r.Totals.Lines)
	assert.Equal(t, 7, r.Totals.CodeLines)
	assert.Equal(t, 2, r.Totals.CommentLines)
	assert.Equal(t, 1, r.Totals.BlankLines)
	assert.Equal(t, 1, r.Totals.Functions)
	assert.Equal(t, 3, r.Totals.ComplexitySignal)
	assert.Equal(t, 1, r.Totals.BinaryFiles)
	assert.Equal(t, map[string]int{"Python": 1, "unknown": 1, "Go": 1}, r.Totals.Languages)
}

func TestWarningCount(t *testing.T) {
	r := &ScanReport{Warnings: []Warning{
		{Kind: WarnFileUnreadable, Path: "a"},
		{Kind: WarnFileUnreadable, Path: "b"},
		{Kind: WarnNoHistory},
	}}
	assert.Equal(t, 2, r.WarningCount(WarnFileUnreadable))
	assert.Equal(t, 1, r.WarningCount(WarnNoHistory))
	assert.Equal(t, 0, r.WarningCount(WarnHistoryParse))
}

func TestFormatAuthors(t *testing.T) {
	assert.Equal(t, "-", FormatAuthors(nil, 2))
	assert.Equal(t, "Alice", FormatAuthors([]string{"Alice"}, 2))
	assert.Equal(t, "Alice, Bob", FormatAuthors([]string{"Alice", "Bob"}, 2))
	assert.Equal(t, "Alice, Bob, ...", FormatAuthors([]string{"Alice", "Bob", "Carol"}, 2))
	assert.Equal(t, "Alice, Bob, Carol", FormatAuthors([]string{"Alice", "Bob", "Carol"}, 0))
}
