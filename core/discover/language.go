package discover

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// languageByFilename identifies extensionless files like Makefile and
// Dockerfile by their well-known names. Anything enry cannot place stays
// "unknown".
func languageByFilename(name string) string {
	if lang, ok := enry.GetLanguageByFilename(name); ok && lang != "" {
		return lang
	}
	return "unknown"
}

// Test-file suffix conventions across languages. Checked against the
// lowercased filename.
var testSuffixes = []string{
	"_test.go",
	"_test.py",
	"_spec.rb",
	".test.js",
	".spec.js",
	".test.ts",
	".spec.ts",
	"test.java",
	"tests.java",
	"test.kt",
	"spec.scala",
	"_test.cpp",
}

// isTestFile reports whether a filename matches a common test naming
// convention. It is a naming heuristic only; no content is inspected.
func isTestFile(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "test_") && strings.HasSuffix(lower, ".py") {
		return true
	}
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
