// Package shell is the interactive front end: it reads commands that edit
// the character set, resolution, image and output, and runs conversions.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// ErrNoImage is returned by Render when no image could be loaded.
var ErrNoImage = errors.New("shell: no image loaded")

// ImageLoader loads the image for a path.
type ImageLoader func(path string) (*imageutil.RGBAImage, error)

// Option configures a Shell.
type Option func(*Shell)

// WithImageLoader replaces the config's loader.
func WithImageLoader(load ImageLoader) Option {
	return func(s *Shell) {
		s.load = load
	}
}

// WithRasterizer replaces the config's font.
func WithRasterizer(r img2ascii.GlyphRasterizer) Option {
	return func(s *Shell) {
		s.raster = r
	}
}

// Shell holds the session state. It is not safe for concurrent use.
type Shell struct {
	cfg     Config
	in      *bufio.Scanner
	out     io.Writer
	load    ImageLoader
	raster  img2ascii.GlyphRasterizer
	matcher *img2ascii.CharMatcher

	image      *imageutil.RGBAImage
	resolution int
	output     img2ascii.Output

	// Engine of the previous run, reused while image and resolution
	// are unchanged so its brightness matrix is not recomputed.
	art *img2ascii.AsciiArt
}

// New creates a shell reading commands from in and writing replies and
// console art to out. The configured image is loaded immediately; if that
// fails the failure is reported on out and the shell starts without one.
func New(cfg Config, in io.Reader, out io.Writer, opts ...Option) (*Shell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Shell{
		cfg:        cfg,
		in:         bufio.NewScanner(in),
		out:        out,
		load:       cfg.LoadImage,
		resolution: cfg.Resolution,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.raster == nil {
		raster, err := cfg.Rasterizer()
		if err != nil {
			return nil, err
		}
		s.raster = raster
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	s.matcher, err = img2ascii.NewCharMatcher([]rune(cfg.Charset), s.raster, img2ascii.WithDirtyPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to build character set: %w", err)
	}
	if err := s.setOutput(cfg.Output); err != nil {
		return nil, err
	}
	if cfg.Image != "" {
		s.changeImage(cfg.Image)
	}
	return s, nil
}

// Matcher returns the session's character set.
func (s *Shell) Matcher() *img2ascii.CharMatcher {
	return s.matcher
}

// Resolution returns the current characters-per-row setting.
func (s *Shell) Resolution() int {
	return s.resolution
}

// Run prompts and executes commands until exit or the end of input.
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, Prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if !s.Execute(s.in.Text()) {
			return nil
		}
	}
}

// logger resolves the package logger on every call so SetLogger takes
// effect on shells that already exist.
func (s *Shell) logger() *slog.Logger {
	return img2ascii.Logger().With("component", "shell")
}

// Execute runs one command line and reports whether the session goes on.
func (s *Shell) Execute(line string) bool {
	// A blank or indented line has an empty command word.
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.TrimLeftFunc(line, unicode.IsSpace) != line {
		s.println(msgBadCommand)
		return true
	}
	op := fields[0]
	// Commands take exactly one parameter; any other count reads as none.
	var param string
	if len(fields) == 2 {
		param = fields[1]
	}
	s.logger().Debug("command", "op", op, "param", param)

	switch op {
	case "exit":
		return false
	case "chars":
		s.printChars()
	case "add":
		s.modifyChars(param, s.matcher.Add, msgAddFormat)
	case "remove":
		s.modifyChars(param, func(r rune) error {
			s.matcher.Remove(r)
			return nil
		}, msgRemoveFormat)
	case "res":
		s.changeResolution(param)
	case "image":
		s.changeImage(param)
	case "output":
		if err := s.setOutput(param); err != nil {
			s.println(msgOutputFormat)
		}
	case "asciiArt":
		s.runAsciiArt()
	default:
		s.println(msgBadCommand)
	}
	return true
}

// Render converts the current image with the current settings and sends
// the result to the current output.
func (s *Shell) Render() error {
	if s.matcher.Len() == 0 {
		return img2ascii.ErrEmptyCharset
	}
	if s.image == nil {
		return ErrNoImage
	}
	if s.art == nil || s.art.Source() != s.image || s.art.Resolution() != s.resolution {
		s.art = img2ascii.NewAsciiArt(s.image, s.resolution, s.matcher)
	}
	grid, err := s.art.Run()
	if err != nil {
		return err
	}
	return s.output.Out(grid)
}

func (s *Shell) runAsciiArt() {
	err := s.Render()
	switch {
	case err == nil:
	case errors.Is(err, img2ascii.ErrEmptyCharset):
		s.println(msgEmptyCharset)
	case errors.Is(err, ErrNoImage):
		s.println(msgImageFile)
	default:
		s.logger().Error("render failed", "error", err)
		s.println(msgOutputFailed)
	}
}

func (s *Shell) printChars() {
	var b strings.Builder
	for _, r := range s.matcher.Chars() {
		b.WriteRune(r)
		b.WriteByte(' ')
	}
	s.println(b.String())
}

// modifyChars applies fn to every rune named by param: a single
// character, "all", "space", or an inclusive range such as "a-z" whose
// ends may come in either order.
func (s *Shell) modifyChars(param string, fn func(rune) error, formatMsg string) {
	lo, hi, ok := parseCharRange(param)
	if !ok {
		s.println(formatMsg)
		return
	}
	var failed bool
	for r := lo; r <= hi; r++ {
		if err := fn(r); err != nil {
			s.logger().Debug("character not changed", "rune", string(r), "error", err)
			failed = true
		}
	}
	if failed {
		s.println(formatMsg)
	}
}

func parseCharRange(param string) (lo, hi rune, ok bool) {
	switch param {
	case "":
		return 0, 0, false
	case "all":
		return img2ascii.FirstPrintable, img2ascii.LastPrintable, true
	case "space":
		return ' ', ' ', true
	}
	runes := []rune(param)
	switch {
	case len(runes) == 1:
		return runes[0], runes[0], true
	case len(runes) == 3 && runes[1] == '-':
		lo, hi = runes[0], runes[2]
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, true
	}
	return 0, 0, false
}

// changeResolution doubles or halves the resolution. Up is bounded by the
// image width, down by max(1, width/height).
func (s *Shell) changeResolution(param string) {
	if param != "up" && param != "down" {
		s.println(msgResolutionFormat)
		return
	}
	if s.image == nil {
		s.println(msgImageFile)
		return
	}
	width, height := s.image.Width(), s.image.Height()

	next := s.resolution * 2
	inBounds := next <= width
	if param == "down" {
		next = s.resolution / 2
		inBounds = next >= max(1, width/height)
	}
	if !inBounds {
		s.println(msgResolutionBounds)
		return
	}
	s.resolution = next
	s.println(fmt.Sprintf(msgResolutionSet, next))
}

func (s *Shell) changeImage(path string) {
	img, err := s.load(path)
	if err != nil {
		s.logger().Debug("image not loaded", "path", path, "error", err)
		s.println(msgImageFile)
		return
	}
	s.image = img
}

func (s *Shell) setOutput(name string) error {
	switch name {
	case OutputConsole:
		s.output = img2ascii.ConsoleOutput{W: s.out}
	case OutputHTML:
		s.output = img2ascii.HTMLOutput{Path: s.cfg.HTMLFile, Font: s.cfg.HTMLFont}
	case OutputPNG:
		s.output = img2ascii.PNGOutput{
			Path:   s.cfg.PNGFile,
			Raster: s.raster,
			Scale:  s.cfg.PNGScale,
			FG:     imageutil.White,
		}
	default:
		return fmt.Errorf("unknown output %q", name)
	}
	return nil
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
