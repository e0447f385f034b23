package metrics

import (
	"regexp"
	"strings"
)

// Family bundles the comment markers and keyword tables for one language
// family. The tables are data, not code: adding a language means adding a
// row to familyByLanguage and, at most, a new Family literal.
type Family struct {
	Name        string
	LineMarkers []string // Single-line comment prefixes, matched at trimmed line start
	BlockStart  string   // Multi-line comment open marker ("" when not attempted)
	BlockEnd    string   // Multi-line comment close marker

	// BranchKeywords is the fixed set counted for the complexity signal.
	// FuncKeywords estimates function declarations. Both are matched as
	// whole words, case-insensitive, anywhere in the content, so string
	// literals produce false positives. This is the documented tradeoff.
	BranchKeywords []string
	FuncKeywords   []string

	branchRe *regexp.Regexp
	funcRe   *regexp.Regexp
}

func newFamily(name string, lineMarkers []string, blockStart, blockEnd string, branch, funcs []string) *Family {
	f := &Family{
		Name:           name,
		LineMarkers:    lineMarkers,
		BlockStart:     blockStart,
		BlockEnd:       blockEnd,
		BranchKeywords: branch,
		FuncKeywords:   funcs,
	}
	if len(branch) > 0 {
		f.branchRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(branch, "|") + `)\b`)
	}
	if len(funcs) > 0 {
		f.funcRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(funcs, "|") + `)\s+\w`)
	}
	return f
}

// The family definitions. Keyword sets follow the common denominator of each
// family rather than any single language's grammar.
var (
	cFamily = newFamily("c",
		[]string{"//"}, "/*", "*/",
		[]string{"if", "else", "for", "while", "switch", "case", "do", "catch"},
		[]string{"func", "function", "fn"})

	pythonFamily = newFamily("python",
		[]string{"#"}, `"""`, `"""`,
		[]string{"if", "elif", "else", "for", "while", "except", "match", "case"},
		[]string{"def", "lambda"})

	shellFamily = newFamily("shell",
		[]string{"#"}, "", "",
		[]string{"if", "elif", "else", "for", "while", "until", "case"},
		[]string{"function"})

	rubyFamily = newFamily("ruby",
		[]string{"#"}, "=begin", "=end",
		[]string{"if", "elsif", "else", "unless", "case", "when", "while", "until", "for", "rescue"},
		[]string{"def", "lambda", "proc"})

	sqlFamily = newFamily("sql",
		[]string{"--"}, "/*", "*/",
		[]string{"case", "when", "loop", "while", "if"},
		[]string{"procedure", "function"})

	haskellFamily = newFamily("haskell",
		[]string{"--"}, "{-", "-}",
		[]string{"if", "then", "else", "case", "of"},
		nil)

	luaFamily = newFamily("lua",
		[]string{"--"}, "--[[", "]]",
		[]string{"if", "elseif", "else", "for", "while", "repeat", "until"},
		[]string{"function"})

	lispFamily = newFamily("lisp",
		[]string{";"}, "", "",
		[]string{"if", "when", "cond", "case", "loop", "recur"},
		[]string{"defn", "defmacro", "fn"})

	erlangFamily = newFamily("erlang",
		[]string{"%"}, "", "",
		[]string{"if", "case", "receive", "when", "after"},
		[]string{"fun"})

	mlFamily = newFamily("ml",
		nil, "(*", "*)",
		[]string{"if", "then", "else", "match", "with", "while", "for"},
		[]string{"fun", "function"})
)

// familyByLanguage maps language tags (as produced by discovery) onto
// families. Tags with no row are unsupported: their complexity signal is 0
// and the record carries supported=false.
var familyByLanguage = map[string]*Family{
	"C":           cFamily,
	"C++":         cFamily,
	"C/C++":       cFamily,
	"C#":          cFamily,
	"Go":          cFamily,
	"Java":        cFamily,
	"JavaScript":  cFamily,
	"TypeScript":  cFamily,
	"Rust":        cFamily,
	"Swift":       cFamily,
	"Kotlin":      cFamily,
	"Scala":       cFamily,
	"PHP":         cFamily,
	"Dart":        cFamily,
	"Objective-C": cFamily,

	"Python": pythonFamily,

	"Shell":      shellFamily,
	"Makefile":   shellFamily,
	"Dockerfile": shellFamily,
	"Perl":       shellFamily,
	"R":          shellFamily,
	"Julia":      shellFamily,
	"Elixir":     rubyFamily,
	"Ruby":       rubyFamily,

	"SQL":     sqlFamily,
	"Haskell": haskellFamily,
	"Elm":     haskellFamily,
	"Lua":     luaFamily,

	"Clojure": lispFamily,
	"Erlang":  erlangFamily,
	"OCaml":   mlFamily,
}

// FamilyForLanguage returns the language family for a tag, or nil when the
// language is not supported by the heuristic tables.
func FamilyForLanguage(lang string) *Family {
	return familyByLanguage[lang]
}

// SupportedLanguages returns the tags present in the family table, for the
// languages command and the MCP surface.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(familyByLanguage))
	for lang, fam := range familyByLanguage {
		out[lang] = fam.Name
	}
	return out
}
