// Package metrics computes heuristic per-file statistics from raw text.
//
// Everything here is an approximation: comment detection is marker
// matching on trimmed lines, the complexity signal is a keyword count, and
// both accept false positives inside string literals. The output flags
// (binary, supported) tell the consumer which numbers exist at all.
package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/repolens/repolens/schema"
)

// binarySniffLen bounds how much content the binary check inspects.
const binarySniffLen = 8192

// Collect computes a MetricsRecord from file content already in memory.
// Content that does not decode as text yields a binary record with
// lineCount=0 instead of an error.
func Collect(entry schema.FileEntry, content []byte) schema.MetricsRecord {
	rec := schema.MetricsRecord{Path: entry.Path}

	if looksBinary(content) {
		rec.Binary = true
		return rec
	}

	fam := FamilyForLanguage(entry.Language)
	rec.Supported = fam != nil

	countLines(&rec, fam, content)

	if fam != nil {
		text := string(content)
		if fam.branchRe != nil {
			rec.ComplexitySignal = len(fam.branchRe.FindAllStringIndex(text, -1))
		}
		if fam.funcRe != nil {
			rec.FunctionCount = len(fam.funcRe.FindAllStringIndex(text, -1))
		}
	}
	return rec
}

// CollectFile reads the file under root and computes its metrics.
// Read failures (permissions, file deleted between discovery and read)
// surface as errors so the caller can record a warning and continue.
func CollectFile(root string, entry schema.FileEntry) (schema.MetricsRecord, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(entry.Path)))
	if err != nil {
		return schema.MetricsRecord{}, err
	}
	return Collect(entry, content), nil
}

// countLines fills the line-count fields. A trailing line without a
// terminating newline still counts as one line. A line is counted in at most
// one of blank/comment; code lines are the remainder.
func countLines(rec *schema.MetricsRecord, fam *Family, content []byte) {
	if len(content) == 0 {
		return
	}

	lines := strings.Split(string(content), "\n")
	// A terminating newline produces one empty trailing element, which is
	// not a line of its own.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	rec.LineCount = len(lines)

	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			rec.BlankLineCount++
			continue
		}
		if fam == nil {
			rec.CodeLineCount++
			continue
		}

		if inBlock {
			rec.CommentLineCount++
			if strings.Contains(trimmed, fam.BlockEnd) {
				inBlock = false
			}
			continue
		}

		if fam.BlockStart != "" {
			if idx := strings.Index(trimmed, fam.BlockStart); idx >= 0 {
				rec.CommentLineCount++
				rest := trimmed[idx+len(fam.BlockStart):]
				if !strings.Contains(rest, fam.BlockEnd) {
					inBlock = true
				}
				continue
			}
		}

		if hasLineMarker(trimmed, fam.LineMarkers) {
			rec.CommentLineCount++
			continue
		}
		rec.CodeLineCount++
	}
}

func hasLineMarker(trimmed string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

// looksBinary reports whether content fails to decode as text. A NUL byte in
// the sniff window, or a sample that is not valid UTF-8, marks the file as
// binary.
func looksBinary(content []byte) bool {
	sample := content
	if len(sample) > binarySniffLen {
		sample = sample[:binarySniffLen]
		// Avoid flagging a multi-byte rune split at the sample boundary:
		// drop trailing continuation bytes, then the leader they belong to.
		for len(sample) > 0 && !utf8.RuneStart(sample[len(sample)-1]) {
			sample = sample[:len(sample)-1]
		}
		if len(sample) > 0 && sample[len(sample)-1] >= utf8.RuneSelf {
			sample = sample[:len(sample)-1]
		}
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	return !utf8.Valid(sample)
}
