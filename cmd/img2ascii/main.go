package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/shell"
)

func main() {
	app := cli.NewApp()

	app.Name = "img2ascii"
	app.Usage = "convert images to ASCII art"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"IMG2ASCII_CONFIG"},
			Usage:   "path to YAML config",
		},
		&cli.StringFlag{
			Name:    "image",
			Aliases: []string{"i"},
			Usage:   "image to load at startup",
		},
		&cli.IntFlag{
			Name:    "resolution",
			Aliases: []string{"r"},
			Usage:   "characters per row",
		},
		&cli.StringFlag{
			Name:  "charset",
			Usage: "initial character set",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "console, html or png",
		},
		&cli.StringFlag{
			Name:  "html-file",
			Usage: "file written by the html output",
		},
		&cli.StringFlag{
			Name:  "html-font",
			Usage: "font family used by the html output",
		},
		&cli.StringFlag{
			Name:  "png-file",
			Usage: "file written by the png output",
		},
		&cli.IntFlag{
			Name:  "png-scale",
			Usage: "pixel scale of the png output",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"IMG2ASCII_FONT"},
			Usage:   "TrueType font used to measure glyphs (default: built-in 7x13)",
		},
		&cli.IntFlag{
			Name:  "glyph-size",
			Usage: "glyph cell size in pixels for --font",
		},
		&cli.StringFlag{
			Name:  "dirty-policy",
			Usage: "when adding characters renormalizes: range or always",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"IMG2ASCII_LOG_LEVEL"},
			Usage:   "debug, info, warn or error",
		},
		&cli.IntFlag{
			Name:  "fit",
			Usage: "scale loaded images down to at most this many pixels per side",
		},
		&cli.Float64Flag{
			Name:  "gamma",
			Usage: "gamma correction applied to loaded images",
		},
		&cli.Float64Flag{
			Name:  "brightness",
			Usage: "brightness change in [-100, 100]",
		},
		&cli.Float64Flag{
			Name:  "contrast",
			Usage: "contrast change in [-100, 100]",
		},
		&cli.Float64Flag{
			Name:  "sharpen",
			Usage: "sharpen sigma",
		},
		&cli.BoolFlag{
			Name:  "invert",
			Usage: "invert loaded images",
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "convert the image once and exit instead of starting the shell",
		},
	}

	app.Action = func(c *cli.Context) error {
		cfg, err := shell.LoadConfig(c.String("config"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		applyFlags(c, &cfg)
		if err := cfg.Validate(); err != nil {
			return cli.NewExitError(err, 1)
		}

		level, _ := cfg.SlogLevel()
		img2ascii.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		s, err := shell.New(cfg, os.Stdin, os.Stdout)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if c.Bool("once") {
			if err := s.Render(); err != nil {
				return cli.NewExitError(err, 1)
			}
			return nil
		}
		return s.Run()
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// applyFlags overrides config values with the flags given on the command
// line.
func applyFlags(c *cli.Context, cfg *shell.Config) {
	strs := map[string]*string{
		"image":        &cfg.Image,
		"charset":      &cfg.Charset,
		"output":       &cfg.Output,
		"html-file":    &cfg.HTMLFile,
		"html-font":    &cfg.HTMLFont,
		"png-file":     &cfg.PNGFile,
		"font":         &cfg.Font,
		"dirty-policy": &cfg.DirtyPolicy,
		"log-level":    &cfg.LogLevel,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	ints := map[string]*int{
		"resolution": &cfg.Resolution,
		"png-scale":  &cfg.PNGScale,
		"glyph-size": &cfg.GlyphSize,
		"fit":        &cfg.Fit,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	floats := map[string]*float64{
		"gamma":      &cfg.Adjust.Gamma,
		"brightness": &cfg.Adjust.Brightness,
		"contrast":   &cfg.Adjust.Contrast,
		"sharpen":    &cfg.Adjust.Sharpen,
	}
	for name, dst := range floats {
		if c.IsSet(name) {
			*dst = c.Float64(name)
		}
	}

	if c.IsSet("invert") {
		cfg.Adjust.Invert = c.Bool("invert")
	}
}
