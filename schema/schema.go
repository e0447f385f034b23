// Package schema has the models, enums and helpers shared by all parts of repolens.
package schema

import "time"

// FileEntry represents a single source file discovered during a scan.
// Entries are created by discovery and never mutated afterwards; a fresh
// scan always produces a fresh set.
type FileEntry struct {
	Path      string `json:"path"`      // Root-relative path, slash-separated
	Language  string `json:"language"`  // Inferred language tag, "unknown" when unrecognized
	SizeBytes int64  `json:"sizeBytes"` // Byte length at scan time
	IsTest    bool   `json:"isTest"`    // Matches a common test-file naming convention
}

// MetricsRecord holds the heuristic statistics computed from one read of a
// file's content. All counts are pattern-based approximations: comment
// detection and the complexity signal accept false positives inside string
// literals and are never promoted to exact measurements.
type MetricsRecord struct {
	Path             string `json:"path"`             // Foreign key into the discovered file set
	LineCount        int    `json:"lineCount"`        // Total lines, a trailing unterminated line counts as one
	BlankLineCount   int    `json:"blankLineCount"`   // Lines that are empty after trimming whitespace
	CommentLineCount int    `json:"commentLineCount"` // Lines matched by the language family's comment markers
	CodeLineCount    int    `json:"codeLineCount"`    // Remainder after blank and comment lines
	ComplexitySignal int    `json:"complexitySignal"` // Occurrences of branching/looping keywords
	FunctionCount    int    `json:"functionCount"`    // Function-declaration keyword estimate
	Binary           bool   `json:"binary"`           // Content could not be decoded as text
	Supported        bool   `json:"supported"`        // Language family has marker and keyword tables
}

// HistoryRecord summarizes version-control activity for one path within the
// configured lookback window. A record with an empty Path aggregates the
// whole tree. Author identities are taken verbatim from git; aliases of the
// same person are not deduplicated.
type HistoryRecord struct {
	Path         string    `json:"path,omitempty"`
	CommitCount  int       `json:"commitCount"`
	Authors      []string  `json:"authors"` // Distinct authors, most commits first
	LastModified time.Time `json:"lastModified"`
	FirstCommit  time.Time `json:"firstCommit"`
	BugFixCount  int       `json:"bugFixCount"` // Commit subjects matching bug keywords
	Churn        int       `json:"churn"`       // Total lines added plus deleted
}

// ReportEntry is the joined per-path view inside a ScanReport.
// Metrics and History are nil when the corresponding collector produced no
// record for the path; MetricsUnavailable marks a file that was discovered
// but could not be read, so that the report never silently drops a file.
type ReportEntry struct {
	File               FileEntry      `json:"file"`
	Metrics            *MetricsRecord `json:"metrics,omitempty"`
	History            *HistoryRecord `json:"history,omitempty"`
	MetricsUnavailable bool           `json:"metricsUnavailable,omitempty"`
}

// ReportTotals aggregates metrics across all entries in a report.
type ReportTotals struct {
	Files            int            `json:"files"`
	Lines            int            `json:"lines"`
	CodeLines        int            `json:"codeLines"`
	CommentLines     int            `json:"commentLines"`
	BlankLines       int            `json:"blankLines"`
	Functions        int            `json:"functions"`
	ComplexitySignal int            `json:"complexitySignal"`
	BinaryFiles      int            `json:"binaryFiles"`
	Languages        map[string]int `json:"languages"` // Language tag -> file count
}

// RepoStats holds repository-wide history aggregates for the lookback window.
type RepoStats struct {
	CommitCount int       `json:"commitCount"`
	AuthorCount int       `json:"authorCount"`
	FirstCommit time.Time `json:"firstCommit"`
	LastCommit  time.Time `json:"lastCommit"`
}

// Warning records a non-fatal condition encountered during a scan.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Detail string      `json:"detail"`
}

// ScanReport is the merged output of one scan. It is owned solely by the
// invoking process for the duration of the scan and shares no state with
// previous reports.
type ScanReport struct {
	Root             string                  `json:"root"`
	GeneratedAt      time.Time               `json:"generatedAt"`
	Entries          map[string]*ReportEntry `json:"entries"`
	Totals           ReportTotals            `json:"totals"`
	HistoryAvailable bool                    `json:"historyAvailable"`
	RepoStats        *RepoStats              `json:"repoStats,omitempty"`
	Warnings         []Warning               `json:"warnings,omitempty"`
}
