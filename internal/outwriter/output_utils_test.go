package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/contract"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]int{"lines": 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines": 42}`, buf.String())
}

func TestWriteJSONFailure(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, func() {}) // Functions cannot be encoded
	assert.Error(t, err)
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"path", "lines"}, func(w *csv.Writer) error {
		return w.Write([]string{"a.py", "10"})
	})
	require.NoError(t, err)
	assert.Equal(t, "path,lines\na.py,10\n", buf.String())
}

func TestGetMaxTablePathWidth(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		cfg := &contract.Config{Width: 200}
		assert.Equal(t, 70, getMaxTablePathWidth(cfg), "wide terminals cap at the max path width")
	})

	t.Run("narrow override floors at minimum", func(t *testing.T) {
		cfg := &contract.Config{Width: 40}
		assert.Equal(t, 15, getMaxTablePathWidth(cfg))
	})

	t.Run("mid range leaves headroom for fixed columns", func(t *testing.T) {
		cfg := &contract.Config{Width: 100}
		assert.Equal(t, 40, getMaxTablePathWidth(cfg))
	})
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Minimal", labelFor(0, false))
	assert.Equal(t, "High", labelFor(200, false))
	assert.Contains(t, labelFor(200, true), "High")
}
