package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/contract"
	"github.com/repolens/repolens/schema"
)

// newTestConfig builds a minimal scan config rooted at dir with the default
// include and exclude tables.
func newTestConfig(dir string) *contract.Config {
	inc := make(map[string]string, len(contract.DefaultIncludeExtensions))
	for k, v := range contract.DefaultIncludeExtensions {
		inc[k] = v
	}
	exc := make([]string, len(contract.DefaultExcludes))
	copy(exc, contract.DefaultExcludes)
	return &contract.Config{
		RootPath:          dir,
		IncludeExtensions: inc,
		Excludes:          exc,
	}
}

// writeFile creates a file (and parent directories) under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func paths(entries []schema.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestWalk(t *testing.T) {
	t.Run("basic tree with default excludes", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.py", "print(1)\n")
		writeFile(t, root, "b/node_modules/c.js", "var x = 1\n")
		writeFile(t, root, "b/d.rs", "fn main() {}\n")
		writeFile(t, root, "notes.txt", "plain text\n")
		writeFile(t, root, "LICENSE", "MIT\n")

		res, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		assert.Equal(t, []string{"a.py", "b/d.rs"}, paths(res.Entries))
		assert.Empty(t, res.Warnings)

		assert.Equal(t, "Python", res.Entries[0].Language)
		assert.Equal(t, "Rust", res.Entries[1].Language)
		assert.Equal(t, int64(9), res.Entries[0].SizeBytes)
	})

	t.Run("order is deterministic", func(t *testing.T) {
		root := t.TempDir()
		for _, rel := range []string{"z.go", "m/a.go", "a.go", "m/z.go", "b.go"} {
			writeFile(t, root, rel, "package x\n")
		}

		first, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		second, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)

		assert.Equal(t, []string{"a.go", "b.go", "m/a.go", "m/z.go", "z.go"}, paths(first.Entries))
		assert.Equal(t, paths(first.Entries), paths(second.Entries))
	})

	t.Run("custom excludes", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "keep.go", "package x\n")
		writeFile(t, root, "skip.gen.go", "package x\n")
		writeFile(t, root, "docs/readme.py", "x = 1\n")

		cfg := newTestConfig(root)
		cfg.Excludes = append(cfg.Excludes, "*.gen.go", "docs/")

		res, err := Walk(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep.go"}, paths(res.Entries))
	})

	t.Run("max depth limits descent", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "top.go", "package x\n")
		writeFile(t, root, "one/mid.go", "package x\n")
		writeFile(t, root, "one/two/deep.go", "package x\n")

		cfg := newTestConfig(root)
		cfg.MaxDepth = 1
		res, err := Walk(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"top.go"}, paths(res.Entries))

		cfg.MaxDepth = 2
		res, err = Walk(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"one/mid.go", "top.go"}, paths(res.Entries))
	})

	t.Run("symlinks are never followed", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "real.go", "package x\n")
		writeFile(t, root, "sub/inner.go", "package x\n")
		require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "loop")))
		require.NoError(t, os.Symlink(filepath.Join(root, "real.go"), filepath.Join(root, "alias.go")))

		res, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		assert.Equal(t, []string{"real.go", "sub/inner.go"}, paths(res.Entries))
	})

	t.Run("extensionless opt-in", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Makefile", "all:\n\ttrue\n")
		writeFile(t, root, "a.go", "package x\n")

		res, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go"}, paths(res.Entries), "extensionless files are skipped by default")

		cfg := newTestConfig(root)
		cfg.IncludeExtensionless = true
		res, err = Walk(context.Background(), cfg)
		require.NoError(t, err)
		require.Equal(t, []string{"Makefile", "a.go"}, paths(res.Entries))
		assert.Equal(t, "Makefile", res.Entries[0].Language)
	})

	t.Run("test file naming", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "thing.go", "package x\n")
		writeFile(t, root, "thing_test.go", "package x\n")
		writeFile(t, root, "test_util.py", "x = 1\n")

		res, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		byPath := make(map[string]schema.FileEntry)
		for _, e := range res.Entries {
			byPath[e.Path] = e
		}
		assert.False(t, byPath["thing.go"].IsTest)
		assert.True(t, byPath["thing_test.go"].IsTest)
		assert.True(t, byPath["test_util.py"].IsTest)
	})

	t.Run("invalid root", func(t *testing.T) {
		cfg := newTestConfig(filepath.Join(t.TempDir(), "missing"))
		_, err := Walk(context.Background(), cfg)
		require.ErrorIs(t, err, contract.ErrInvalidRoot)
	})

	t.Run("cancelled context returns early", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.go", "package x\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := Walk(ctx, newTestConfig(root))
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
	})

	t.Run("unreadable subtree warns and continues", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		root := t.TempDir()
		writeFile(t, root, "ok.go", "package x\n")
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.Mkdir(locked, 0o755))
		writeFile(t, root, "locked/hidden.go", "package x\n")
		require.NoError(t, os.Chmod(locked, 0o000))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		res, err := Walk(context.Background(), newTestConfig(root))
		require.NoError(t, err)
		assert.Equal(t, []string{"ok.go"}, paths(res.Entries))
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, schema.WarnSubtreeUnreadable, res.Warnings[0].Kind)
		assert.Equal(t, "locked", res.Warnings[0].Path)
	})
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"handler_test.go", true},
		{"test_models.py", true},
		{"widget.spec.ts", true},
		{"UserServiceTest.java", true},
		{"parser_spec.rb", true},
		{"handler.go", false},
		{"contest.py", false},
		{"latest.js", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isTestFile(tt.name), "filename %q", tt.name)
	}
}
