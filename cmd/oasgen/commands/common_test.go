package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(format))
	}
	err := ValidateOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'xml'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"name": "types.gen.ts", "size": 42}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		assert.Contains(t, buf.String(), `"name": "types.gen.ts"`)
		assert.Contains(t, buf.String(), `"size": 42`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.Contains(t, buf.String(), "name: types.gen.ts")
		assert.Contains(t, buf.String(), "size: 42")
	})

	t.Run("text is not structured", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, OutputStructured(&buf, data, FormatText))
		assert.Empty(t, buf.String())
	})
}

func TestRejectSymlinkOutput(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, RejectSymlinkOutput(filepath.Join(dir, "missing")))

	regular := filepath.Join(dir, "regular")
	require.NoError(t, os.Mkdir(regular, 0o755))
	assert.NoError(t, RejectSymlinkOutput(regular))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(regular, link))
	err := RejectSymlinkOutput(link)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to write to symlink")
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "graph.yaml", FormatSpecPath("graph.yaml"))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.n))
	}
}

func TestOutputHeader(t *testing.T) {
	var buf bytes.Buffer
	OutputHeader(&buf, "Title", StdinFilePath)
	assert.Equal(t, "Title\n=====\n\n", buf.String()[:len("Title\n=====\n\n")])
	assert.Contains(t, buf.String(), "oasgen version: ")
	assert.Contains(t, buf.String(), "Input: <stdin>\n")
}
