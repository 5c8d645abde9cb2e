package img2ascii

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
)

// Output renders a character grid somewhere.
type Output interface {
	Out(grid [][]rune) error
}

// ConsoleOutput writes the grid as plain text, each character followed
// by a space so cells come out roughly square in a terminal.
type ConsoleOutput struct {
	W io.Writer
}

// Out implements Output.
func (o ConsoleOutput) Out(grid [][]rune) error {
	w := bufio.NewWriter(o.W)
	for _, row := range grid {
		for _, r := range row {
			w.WriteRune(r)
			w.WriteByte(' ')
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// HTMLOutput writes the grid to a standalone HTML page. Glyph brightness
// is measured as lit coverage, so the page uses light text on a dark
// background.
type HTMLOutput struct {
	Path string
	Font string
}

// DefaultHTMLFile and DefaultHTMLFont are used by the shell's html output.
const (
	DefaultHTMLFile = "out.html"
	DefaultHTMLFont = "Courier New"
)

// Out implements Output.
func (o HTMLOutput) Out(grid [][]rune) error {
	f, err := os.Create(o.Path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteHTML(f, grid, o.Font); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteHTML writes the HTML page for grid to w.
func WriteHTML(w io.Writer, grid [][]rune, fontFamily string) error {
	if fontFamily == "" {
		fontFamily = DefaultHTMLFont
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, htmlHeader, html.EscapeString(fontFamily))
	for _, row := range grid {
		for _, r := range row {
			bw.WriteString(html.EscapeString(string(r)))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(htmlFooter)
	return bw.Flush()
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ASCII Art</title>
<style>
body { background-color: #000000; color: #ffffff; }
pre { font-family: '%s', monospace; font-size: 8px; line-height: 8px; letter-spacing: 0; }
</style>
</head>
<body>
<pre>
`

const htmlFooter = `</pre>
</body>
</html>
`
