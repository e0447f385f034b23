package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/schema"
)

func entryFor(path, lang string) schema.FileEntry {
	return schema.FileEntry{Path: path, Language: lang}
}

func TestCollectLineCounts(t *testing.T) {
	t.Run("terminating newline does not add a line", func(t *testing.T) {
		rec := Collect(entryFor("a.py", "Python"), []byte("x = 1\ny = 2\n"))
		assert.Equal(t, 2, rec.LineCount)
	})

	t.Run("unterminated last line counts as one", func(t *testing.T) {
		rec := Collect(entryFor("a.py", "Python"), []byte("x = 1\ny = 2"))
		assert.Equal(t, 2, rec.LineCount)
	})

	t.Run("empty content", func(t *testing.T) {
		rec := Collect(entryFor("a.py", "Python"), nil)
		assert.Equal(t, 0, rec.LineCount)
		assert.True(t, rec.Supported)
	})

	t.Run("blank lines trimmed before checking", func(t *testing.T) {
		rec := Collect(entryFor("a.py", "Python"), []byte("x = 1\n\n   \n\t\nz = 2\n"))
		assert.Equal(t, 5, rec.LineCount)
		assert.Equal(t, 3, rec.BlankLineCount)
		assert.Equal(t, 2, rec.CodeLineCount)
	})

	t.Run("line comments", func(t *testing.T) {
		content := "# header\nx = 1\n# trailing\n"
		rec := Collect(entryFor("a.py", "Python"), []byte(content))
		assert.Equal(t, 3, rec.LineCount)
		assert.Equal(t, 2, rec.CommentLineCount)
		assert.Equal(t, 1, rec.CodeLineCount)
	})

	t.Run("block comments", func(t *testing.T) {
		content := "/*\nlicense header\n*/\nint x;\n/* inline */\nint y;\n"
		rec := Collect(entryFor("a.c", "C"), []byte(content))
		assert.Equal(t, 6, rec.LineCount)
		assert.Equal(t, 4, rec.CommentLineCount)
		assert.Equal(t, 2, rec.CodeLineCount)
	})

	t.Run("unsupported language counts everything as code", func(t *testing.T) {
		content := "# looks like a comment\nreal line\n"
		rec := Collect(entryFor("conf.tf", "Terraform"), []byte(content))
		assert.False(t, rec.Supported)
		assert.Equal(t, 2, rec.LineCount)
		assert.Equal(t, 0, rec.CommentLineCount)
		assert.Equal(t, 2, rec.CodeLineCount)
		assert.Equal(t, 0, rec.ComplexitySignal)
	})
}

func TestCollectComplexitySignal(t *testing.T) {
	t.Run("go branching keywords", func(t *testing.T) {
		content := `package main

func main() {
	for i := 0; i < 3; i++ {
		if i%2 == 0 {
			work(i)
		} else {
			rest(i)
		}
	}
}
`
		rec := Collect(entryFor("main.go", "Go"), []byte(content))
		assert.Equal(t, 3, rec.ComplexitySignal, "for + if + else")
		assert.Equal(t, 1, rec.FunctionCount)
	})

	t.Run("keywords match whole words only", func(t *testing.T) {
		content := "ifdef = 1\nmodifier = 2\nelsewhere = 3\n"
		rec := Collect(entryFor("a.py", "Python"), []byte(content))
		assert.Equal(t, 0, rec.ComplexitySignal)
	})

	t.Run("string literals are counted too", func(t *testing.T) {
		// Documented false positive: keyword matching is text-wide.
		content := "msg = \"if only\"\n"
		rec := Collect(entryFor("a.py", "Python"), []byte(content))
		assert.Equal(t, 1, rec.ComplexitySignal)
	})

	t.Run("python functions", func(t *testing.T) {
		content := "def one():\n    pass\n\ndef two():\n    return lambda x: x\n"
		rec := Collect(entryFor("a.py", "Python"), []byte(content))
		assert.Equal(t, 3, rec.FunctionCount, "two defs plus one lambda")
	})
}

func TestCollectBinary(t *testing.T) {
	t.Run("nul byte marks binary", func(t *testing.T) {
		rec := Collect(entryFor("blob.go", "Go"), []byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x01})
		assert.True(t, rec.Binary)
		assert.Equal(t, 0, rec.LineCount)
		assert.False(t, rec.Supported)
	})

	t.Run("invalid utf8 marks binary", func(t *testing.T) {
		rec := Collect(entryFor("blob.go", "Go"), []byte{0xff, 0xfe, 0x41})
		assert.True(t, rec.Binary)
	})

	t.Run("multibyte rune at sniff boundary stays text", func(t *testing.T) {
		content := make([]byte, 0, binarySniffLen+2)
		for len(content) < binarySniffLen-1 {
			content = append(content, 'a')
		}
		// Three-byte rune straddling the sniff window boundary.
		content = append(content, []byte("€")...)
		rec := Collect(entryFor("a.py", "Python"), content)
		assert.False(t, rec.Binary)
	})
}

func TestCollectFile(t *testing.T) {
	t.Run("reads relative to root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "a.py"), []byte("x = 1\n"), 0o644))

		rec, err := CollectFile(root, entryFor("pkg/a.py", "Python"))
		require.NoError(t, err)
		assert.Equal(t, "pkg/a.py", rec.Path)
		assert.Equal(t, 1, rec.LineCount)
	})

	t.Run("missing file surfaces the error", func(t *testing.T) {
		_, err := CollectFile(t.TempDir(), entryFor("gone.py", "Python"))
		assert.Error(t, err)
	})
}
