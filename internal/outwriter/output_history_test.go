package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/schema"
)

func sampleHistory() ([]*schema.HistoryRecord, *schema.RepoStats) {
	ranked := []*schema.HistoryRecord{
		{
			Path: "core/app.go", CommitCount: 9, Churn: 120, BugFixCount: 3,
			Authors:      []string{"Alice", "Bob", "Carol"},
			FirstCommit:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			LastModified: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Path: "README.md", CommitCount: 2, Churn: 15,
			Authors:      []string{"Alice"},
			FirstCommit:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			LastModified: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	stats := &schema.RepoStats{
		CommitCount: 11, AuthorCount: 3,
		FirstCommit: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		LastCommit:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	return ranked, stats
}

func TestWriteHistoryTable(t *testing.T) {
	ranked, stats := sampleHistory()
	var buf bytes.Buffer
	err := writeHistoryTable(ranked, stats, nil, tableConfig(), time.Millisecond, &buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "core/app.go")
	assert.Contains(t, out, "Alice, Bob, ...", "author list truncates in the table")
	assert.Contains(t, out, "Showing top 2 paths (11 commits by 3 authors")
}

func TestWriteHistoryTableUnavailable(t *testing.T) {
	var buf bytes.Buffer
	warnings := []schema.Warning{{Kind: schema.WarnNoHistory, Detail: "no git"}}
	err := writeHistoryTable(nil, nil, warnings, tableConfig(), time.Millisecond, &buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "No history available")
	assert.Contains(t, out, "no_history=1")
}

func TestWriteCSVRowsForHistory(t *testing.T) {
	ranked, _ := sampleHistory()
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, historyCSVHeader, func(w *csv.Writer) error {
		return writeCSVRowsForHistory(w, ranked)
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "core/app.go", records[1][1])
	assert.Equal(t, "9", records[1][2])
	assert.Equal(t, "Alice|Bob|Carol", records[1][5])
}

func TestWriteJSONResultsForHistory(t *testing.T) {
	ranked, stats := sampleHistory()
	var buf bytes.Buffer
	err := writeJSONResultsForHistory(&buf, ranked, stats, nil)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `"rank": 1`)
	assert.Contains(t, out, `"core/app.go"`)
	assert.Contains(t, out, `"commitCount": 11`)
	assert.NotContains(t, out, `"warnings"`)
}
