package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// WarningKind classifies the non-fatal conditions a scan can record.
	WarningKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All warning kinds. Only an invalid root path is fatal; everything below
// degrades to a partial report.
const (
	WarnSubtreeUnreadable WarningKind = "subtree_unreadable" // Directory skipped due to permissions
	WarnFileUnreadable    WarningKind = "file_unreadable"    // File omitted from metrics
	WarnNoHistory         WarningKind = "no_history"         // Not a repository, or git unavailable
	WarnHistoryParse      WarningKind = "history_parse"      // Malformed log lines were skipped
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// Complexity label thresholds. The labels rank files against fixed keyword
// counts; like the signal itself they are heuristic buckets, not grades.
const (
	complexityHighAt     = 150
	complexityModerateAt = 50
	complexityLowAt      = 10
)

// Complexity label values.
const (
	HighLabel     = "High"
	ModerateLabel = "Moderate"
	LowLabel      = "Low"
	MinimalLabel  = "Minimal"
)

// ComplexityLabel buckets a complexity signal into a coarse display label.
func ComplexityLabel(signal int) string {
	switch {
	case signal >= complexityHighAt:
		return HighLabel
	case signal >= complexityModerateAt:
		return ModerateLabel
	case signal >= complexityLowAt:
		return LowLabel
	default:
		return MinimalLabel
	}
}
