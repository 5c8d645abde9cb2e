package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"github.com/wbrown/img2ascii"
)

// glyphRow is one character of the brightness report.
type glyphRow struct {
	Char       string  `yaml:"char"`
	CodePoint  int     `yaml:"code_point"`
	Raw        float64 `yaml:"raw"`
	Normalized float64 `yaml:"normalized"`
}

func main() {
	app := cli.NewApp()

	app.Name = "glyphstats"
	app.Usage = "report the glyph brightness of a character set"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"IMG2ASCII_FONT"},
			Usage:   "TrueType font to measure (default: built-in 7x13)",
		},
		&cli.IntFlag{
			Name:  "glyph-size",
			Value: 16,
			Usage: "glyph cell size in pixels for --font",
		},
		&cli.StringFlag{
			Name:  "charset",
			Usage: "characters to measure (default: printable ASCII)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "text or yaml",
		},
		&cli.BoolFlag{
			Name:  "bitmaps",
			Usage: "also draw every glyph bitmap (text format only)",
		},
	}

	app.Action = func(c *cli.Context) error {
		var raster *img2ascii.FaceRasterizer
		if path := c.String("font"); path != "" {
			var err error
			if raster, err = img2ascii.LoadFontRasterizer(path, c.Int("glyph-size")); err != nil {
				return cli.NewExitError(err, 1)
			}
		} else {
			raster = img2ascii.NewBasicRasterizer()
		}
		defer raster.Close()

		charset := []rune(c.String("charset"))
		if len(charset) == 0 {
			for r := img2ascii.FirstPrintable; r <= img2ascii.LastPrintable; r++ {
				charset = append(charset, r)
			}
		}
		m, err := img2ascii.NewCharMatcher(charset, raster)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		switch c.String("format") {
		case "text":
			err = writeText(os.Stdout, m, raster, c.Bool("bitmaps"))
		case "yaml":
			err = writeYAML(os.Stdout, m)
		default:
			err = fmt.Errorf("unknown format %q, options are text or yaml", c.String("format"))
		}
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rows(m *img2ascii.CharMatcher) []glyphRow {
	table := m.Table()
	out := make([]glyphRow, len(table))
	for i, e := range table {
		out[i] = glyphRow{
			Char:       string(e.Rune),
			CodePoint:  int(e.Rune),
			Raw:        e.Raw,
			Normalized: e.Normalized,
		}
	}
	return out
}

func writeYAML(w io.Writer, m *img2ascii.CharMatcher) error {
	data, err := yaml.Marshal(rows(m))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeText(w io.Writer, m *img2ascii.CharMatcher, raster img2ascii.GlyphRasterizer, bitmaps bool) error {
	for _, row := range rows(m) {
		if _, err := fmt.Fprintf(w, "%q\tU+%04X\traw=%.4f\tnormalized=%.4f\n",
			row.Char, row.CodePoint, row.Raw, row.Normalized); err != nil {
			return err
		}
		if !bitmaps {
			continue
		}
		g, err := raster.Rasterize([]rune(row.Char)[0])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, g); err != nil {
			return err
		}
	}
	return nil
}
