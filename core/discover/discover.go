// Package discover enumerates candidate source files under a root path.
//
// Traversal is depth-first with directory entries visited in lexicographic
// order, so an unchanged tree always yields an identical sequence. Exclude
// patterns prune whole subtrees before descent rather than filtering files
// after the fact, which matters on trees dominated by node_modules-style
// directories.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// Result holds the ordered file entries plus any non-fatal warnings
// accumulated while walking the tree.
type Result struct {
	Entries  []schema.FileEntry
	Warnings []schema.Warning
}

// walker carries the immutable per-scan state through the recursion.
type walker struct {
	cfg     *contract.Config
	matcher *gitignore.GitIgnore
	result  *Result
}

// Walk enumerates files under cfg.RootPath according to the include and
// exclude configuration. The only error it returns is contract.ErrInvalidRoot;
// unreadable subtrees are recorded as warnings and the rest of the tree is
// still scanned. Cancelling ctx stops the walk and returns the entries
// collected so far.
func Walk(ctx context.Context, cfg *contract.Config) (*Result, error) {
	root, err := contract.ValidateRoot(cfg.RootPath)
	if err != nil {
		return nil, err
	}

	w := &walker{
		cfg:     cfg,
		matcher: gitignore.CompileIgnoreLines(cfg.Excludes...),
		result:  &Result{},
	}
	w.walkDir(ctx, root, "", 0)
	return w.result, nil
}

// walkDir visits one directory. rel is the slash-separated path of dir
// relative to the root ("" for the root itself); depth counts directory
// levels below the root.
func (w *walker) walkDir(ctx context.Context, dir, rel string, depth int) {
	if ctx.Err() != nil {
		return
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		w.warn(schema.WarnSubtreeUnreadable, rel, err.Error())
		return
	}

	// os.ReadDir returns entries sorted by filename, which gives the
	// deterministic lexicographic order for free.
	for _, de := range dirEntries {
		if ctx.Err() != nil {
			return
		}

		name := de.Name()
		childRel := path.Join(rel, name)

		// Symbolic links are never followed. Hard rule, prevents loops.
		if de.Type()&fs.ModeSymlink != 0 {
			continue
		}

		if de.IsDir() {
			// Match with a trailing slash so directory patterns like
			// "node_modules/" prune the whole subtree.
			if w.matcher.MatchesPath(childRel + "/") {
				continue
			}
			if w.cfg.MaxDepth > 0 && depth+1 >= w.cfg.MaxDepth {
				continue
			}
			w.walkDir(ctx, filepath.Join(dir, name), childRel, depth+1)
			continue
		}

		if !de.Type().IsRegular() {
			continue
		}
		if w.matcher.MatchesPath(childRel) {
			continue
		}

		lang, ok := w.classify(name)
		if !ok {
			continue
		}

		info, err := de.Info()
		if err != nil {
			w.warn(schema.WarnFileUnreadable, childRel, fmt.Sprintf("stat failed: %v", err))
			continue
		}

		w.result.Entries = append(w.result.Entries, schema.FileEntry{
			Path:      childRel,
			Language:  lang,
			SizeBytes: info.Size(),
			IsTest:    isTestFile(name),
		})
	}
}

// classify resolves the language tag for a filename and reports whether the
// file should be included at all. Extensionless files are skipped unless the
// configuration opts in, in which case well-known filenames (Makefile,
// Dockerfile and friends) are still identified.
func (w *walker) classify(name string) (string, bool) {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		if !w.cfg.IncludeExtensionless {
			return "", false
		}
		return languageByFilename(name), true
	}
	lang, ok := w.cfg.IncludeExtensions[ext]
	if !ok {
		return "", false
	}
	return lang, true
}

func (w *walker) warn(kind schema.WarningKind, rel, detail string) {
	w.result.Warnings = append(w.result.Warnings, schema.Warning{
		Kind:   kind,
		Path:   rel,
		Detail: detail,
	})
}
