package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// Output method names accepted by the config and the output command.
const (
	OutputConsole = "console"
	OutputHTML    = "html"
	OutputPNG     = "png"
)

// DefaultImagePath is loaded at startup when the config names no image.
const DefaultImagePath = "cat.jpeg"

// Config holds everything the shell and the CLI can be configured with.
type Config struct {
	Image      string `yaml:"image"`
	Resolution int    `yaml:"resolution"`
	Charset    string `yaml:"charset"`

	Output   string `yaml:"output"`
	HTMLFile string `yaml:"html_file"`
	HTMLFont string `yaml:"html_font"`
	PNGFile  string `yaml:"png_file"`
	PNGScale int    `yaml:"png_scale"`

	// Font is a TrueType file used to measure glyphs. Empty selects the
	// built-in 7x13 face.
	Font      string `yaml:"font"`
	GlyphSize int    `yaml:"glyph_size"`

	DirtyPolicy string `yaml:"dirty_policy"`
	LogLevel    string `yaml:"log_level"`

	// Fit bounds both image dimensions in pixels after loading; 0 keeps
	// the loaded size.
	Fit    int                   `yaml:"fit"`
	Adjust imageutil.Adjustments `yaml:"adjust"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Image:       DefaultImagePath,
		Resolution:  img2ascii.DefaultResolution,
		Charset:     img2ascii.DefaultCharset,
		Output:      OutputConsole,
		HTMLFile:    img2ascii.DefaultHTMLFile,
		HTMLFont:    img2ascii.DefaultHTMLFont,
		PNGFile:     img2ascii.DefaultPNGFile,
		PNGScale:    1,
		GlyphSize:   16,
		DirtyPolicy: img2ascii.DirtyOnRangeChange.String(),
		LogLevel:    "warn",
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig. An
// empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later.
func (c Config) Validate() error {
	if c.Resolution < 1 {
		return fmt.Errorf("resolution must be at least 1, got %d", c.Resolution)
	}
	switch c.Output {
	case OutputConsole, OutputHTML, OutputPNG:
	default:
		return fmt.Errorf("unknown output %q, options are console, html or png", c.Output)
	}
	if c.Font != "" && c.GlyphSize < 1 {
		return fmt.Errorf("glyph_size must be at least 1, got %d", c.GlyphSize)
	}
	if c.Fit < 0 {
		return fmt.Errorf("fit must not be negative, got %d", c.Fit)
	}
	if _, err := img2ascii.ParseDirtyPolicy(c.DirtyPolicy); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel. Empty means warn.
func (c Config) SlogLevel() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Policy parses DirtyPolicy.
func (c Config) Policy() (img2ascii.DirtyPolicy, error) {
	return img2ascii.ParseDirtyPolicy(c.DirtyPolicy)
}

// Rasterizer opens the configured font, or the built-in face when none is
// set.
func (c Config) Rasterizer() (*img2ascii.FaceRasterizer, error) {
	if c.Font == "" {
		return img2ascii.NewBasicRasterizer(), nil
	}
	return img2ascii.LoadFontRasterizer(c.Font, c.GlyphSize)
}

// LoadImage loads path and applies the configured fit and adjustments.
func (c Config) LoadImage(path string) (*imageutil.RGBAImage, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	if c.Fit > 0 {
		if img, err = imageutil.Fit(img, c.Fit, c.Fit); err != nil {
			return nil, err
		}
	}
	return imageutil.Adjust(img, c.Adjust)
}
