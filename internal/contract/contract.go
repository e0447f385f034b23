// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"
)

// GitClient defines the operations needed for change-history aggregation.
// This allows the history logic to be tested without a real git executable.
// History is an optional enrichment: every failure mode of an implementation
// degrades to an empty result, never to a failed scan.
type GitClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetActivityLog returns the raw commit log output needed for
	// repository-wide aggregation, bounded by the lookback window.
	// A zero since time means no time bound; maxCommits <= 0 means no
	// commit-count bound.
	GetActivityLog(ctx context.Context, repoPath string, since time.Time, maxCommits int) ([]byte, error)
}
