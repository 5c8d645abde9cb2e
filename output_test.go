package img2ascii

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	err := ConsoleOutput{W: &buf}.Out([][]rune{[]rune("ab"), []rune("cd")})
	require.NoError(t, err)
	assert.Equal(t, "a b \nc d \n", buf.String())
}

func TestConsoleOutputEmptyGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ConsoleOutput{W: &buf}.Out(nil))
	assert.Empty(t, buf.String())
}

func TestWriteHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, [][]rune{[]rune("<&>")}, ""))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "font-family: 'Courier New'")
	assert.Contains(t, out, "&lt; &amp; &gt; \n</pre>")
	assert.NotContains(t, out, "<&>")
}

func TestHTMLOutputWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.html")
	out := HTMLOutput{Path: path, Font: "Menlo"}
	require.NoError(t, out.Out([][]rune{[]rune("12"), []rune("34")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "font-family: 'Menlo'")
	assert.Contains(t, string(data), "<pre>\n1 2 \n3 4 \n</pre>")
}

func TestHTMLOutputBadPath(t *testing.T) {
	out := HTMLOutput{Path: filepath.Join(t.TempDir(), "missing", "art.html")}
	assert.ErrorContains(t, out.Out([][]rune{[]rune("1")}), "failed to create file")
}
