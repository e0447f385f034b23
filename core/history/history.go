// Package history aggregates version-control activity into per-path records.
//
// One repository-wide git log pass covers the whole lookback window; the
// line-oriented output of the fixed format string is parsed into
// HistoryRecords. History is an enrichment: a missing git binary and a root
// that is not a repository both degrade to an empty result with a
// no_history warning, never to a failed scan.
package history

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// bugKeywords flag commit subjects that look like bug fixes. Substring
// match, case-insensitive.
var bugKeywords = []string{"fix", "bug", "issue", "defect", "patch", "error", "crash"}

// Result holds per-path history records plus the whole-tree aggregate.
type Result struct {
	Records   map[string]*schema.HistoryRecord
	Tree      *schema.HistoryRecord
	Stats     *schema.RepoStats
	Warnings  []schema.Warning
	Available bool
}

// pathState accumulates raw per-path counters before records are finalized.
type pathState struct {
	commits     int
	churn       int
	bugFixes    int
	authorHits  map[string]int
	firstCommit time.Time
	lastCommit  time.Time
}

// Aggregate runs the activity log query and parses it. All failure modes of
// the git invocation collapse into an empty, unavailable result.
func Aggregate(ctx context.Context, cfg *contract.Config, client contract.GitClient) *Result {
	out, err := client.GetActivityLog(ctx, cfg.RootPath, cfg.Since, cfg.MaxCommits)
	if err != nil {
		return &Result{
			Records: map[string]*schema.HistoryRecord{},
			Warnings: []schema.Warning{{
				Kind:   schema.WarnNoHistory,
				Detail: "no version-control history available: " + err.Error(),
			}},
		}
	}
	return ParseActivityLog(out)
}

// ParseActivityLog turns raw git log output (the fixed ActivityLogFormat
// plus --numstat lines) into a Result. Lines that do not match the expected
// shape are skipped and surface as a single history_parse warning carrying
// the skip count.
func ParseActivityLog(out []byte) *Result {
	states := make(map[string]*pathState)
	tree := &pathState{authorHits: make(map[string]int)}

	var (
		currentAuthor string
		currentDate   time.Time
		currentBugFix bool
		headerValid   bool
		malformed     int
	)

	for line := range strings.SplitSeq(string(out), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "--") {
			author, date, subject, ok := parseCommitHeader(line)
			if !ok {
				malformed++
				headerValid = false
				continue
			}
			currentAuthor, currentDate = author, date
			currentBugFix = isBugFix(subject)
			headerValid = true

			tree.commits++
			tree.authorHits[author]++
			if currentBugFix {
				tree.bugFixes++
			}
			observeDate(tree, date)
			continue
		}

		if !headerValid {
			malformed++
			continue
		}

		paths, churn, ok := parseStatsLine(line)
		if !ok {
			malformed++
			continue
		}
		tree.churn += churn
		for _, p := range paths {
			st := states[p]
			if st == nil {
				st = &pathState{authorHits: make(map[string]int)}
				states[p] = st
			}
			st.commits++
			st.churn += churn
			st.authorHits[currentAuthor]++
			if currentBugFix {
				st.bugFixes++
			}
			observeDate(st, currentDate)
		}
	}

	res := &Result{
		Records:   make(map[string]*schema.HistoryRecord, len(states)),
		Available: true,
	}
	for p, st := range states {
		res.Records[p] = finalizeRecord(p, st)
	}
	res.Tree = finalizeRecord("", tree)
	res.Stats = &schema.RepoStats{
		CommitCount: tree.commits,
		AuthorCount: len(tree.authorHits),
		FirstCommit: tree.firstCommit,
		LastCommit:  tree.lastCommit,
	}
	if malformed > 0 {
		res.Warnings = append(res.Warnings, schema.Warning{
			Kind:   schema.WarnHistoryParse,
			Detail: fmt.Sprintf("%d malformed log lines skipped", malformed),
		})
	}
	return res
}

// parseCommitHeader extracts author, date and subject from a header line of
// the form "--hash|author|date|subject".
func parseCommitHeader(line string) (string, time.Time, string, bool) {
	parts := strings.SplitN(line[2:], "|", 4)
	if len(parts) != 4 {
		return "", time.Time{}, "", false
	}
	date, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return "", time.Time{}, "", false
	}
	return parts[1], date, parts[3], true
}

// parseStatsLine parses a numstat line "added\tdeleted\tpath". Binary files
// report "-" for both counts. Renames resolve to the renamed-to path.
func parseStatsLine(line string) ([]string, int, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return nil, 0, false
	}
	churn := parseChurnValue(parts[0]) + parseChurnValue(parts[1])

	p := parts[2]
	if strings.Contains(p, " => ") {
		p = resolveRenamePath(p)
		if p == "" {
			return nil, 0, false
		}
	}
	return []string{p}, churn, true
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// resolveRenamePath extracts the new path from a rename entry, either the
// simple "old => new" form or the braced "prefix{old => new}suffix" form.
func resolveRenamePath(p string) string {
	if !strings.Contains(p, "{") {
		parts := strings.SplitN(p, " => ", 2)
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	}

	braceStart := strings.Index(p, "{")
	braceEnd := strings.Index(p, "}")
	if braceStart == -1 || braceEnd == -1 || braceStart >= braceEnd {
		return ""
	}
	renamePart := p[braceStart+1 : braceEnd]
	renameParts := strings.SplitN(renamePart, " => ", 2)
	if len(renameParts) != 2 {
		return ""
	}
	newPath := p[:braceStart] + renameParts[1] + p[braceEnd+1:]
	// Collapse the double slash a deleted path segment leaves behind.
	return strings.ReplaceAll(newPath, "//", "/")
}

func isBugFix(subject string) bool {
	lower := strings.ToLower(subject)
	for _, kw := range bugKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func observeDate(st *pathState, date time.Time) {
	if date.IsZero() {
		return
	}
	if st.firstCommit.IsZero() || date.Before(st.firstCommit) {
		st.firstCommit = date
	}
	if date.After(st.lastCommit) {
		st.lastCommit = date
	}
}

// finalizeRecord converts accumulated counters into a HistoryRecord, with
// authors ordered by commit count descending (ties alphabetical, so output
// stays deterministic).
func finalizeRecord(path string, st *pathState) *schema.HistoryRecord {
	authors := make([]string, 0, len(st.authorHits))
	for a := range st.authorHits {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if st.authorHits[authors[i]] != st.authorHits[authors[j]] {
			return st.authorHits[authors[i]] > st.authorHits[authors[j]]
		}
		return authors[i] < authors[j]
	})

	return &schema.HistoryRecord{
		Path:         path,
		CommitCount:  st.commits,
		Authors:      authors,
		LastModified: st.lastCommit,
		FirstCommit:  st.firstCommit,
		BugFixCount:  st.bugFixes,
		Churn:        st.churn,
	}
}

// Rank orders records by commit count descending (ties by path) and trims
// the list to limit. It backs the history command's ranked view.
func Rank(records map[string]*schema.HistoryRecord, limit int) []*schema.HistoryRecord {
	ranked := make([]*schema.HistoryRecord, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, r)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].CommitCount != ranked[j].CommitCount {
			return ranked[i].CommitCount > ranked[j].CommitCount
		}
		return ranked[i].Path < ranked[j].Path
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
