package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNoGlyph is returned when a font has no glyph for a rune.
var ErrNoGlyph = errors.New("img2ascii: no glyph for rune")

// inkThreshold is the alpha above which a rendered pixel counts as ink.
// 25% keeps thin strokes and the dots of i and j that anti-aliasing
// spreads over several partially covered pixels.
const inkThreshold = 64

// GlyphBitmap is a fixed-size grid of ink cells for one character.
type GlyphBitmap struct {
	width, height int
	ink           []bool
}

// NewGlyphBitmap returns an empty width x height bitmap.
func NewGlyphBitmap(width, height int) GlyphBitmap {
	return GlyphBitmap{width: width, height: height, ink: make([]bool, width*height)}
}

// Width returns the bitmap width in cells.
func (g GlyphBitmap) Width() int { return g.width }

// Height returns the bitmap height in cells.
func (g GlyphBitmap) Height() int { return g.height }

// At reports whether the cell at (x, y) is ink. Out of range cells are not.
func (g GlyphBitmap) At(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.ink[y*g.width+x]
}

// Set marks the cell at (x, y). Out of range cells are ignored.
func (g *GlyphBitmap) Set(x, y int, ink bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.ink[y*g.width+x] = ink
}

// Coverage is the fraction of cells that are ink, in [0, 1]. This is the
// glyph's raw brightness when drawn lit on a dark background.
func (g GlyphBitmap) Coverage() float64 {
	if len(g.ink) == 0 {
		return 0
	}
	var n int
	for _, on := range g.ink {
		if on {
			n++
		}
	}
	return float64(n) / float64(len(g.ink))
}

// String draws the bitmap with one line per row, '█' for ink and '·'
// otherwise.
func (g GlyphBitmap) String() string {
	buf := make([]rune, 0, (g.width+1)*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.At(x, y) {
				buf = append(buf, '█')
			} else {
				buf = append(buf, '·')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// GlyphRasterizer renders a character to a fixed-size ink bitmap.
type GlyphRasterizer interface {
	Rasterize(r rune) (GlyphBitmap, error)
}

// FaceRasterizer renders glyphs of a font.Face into a fixed cell.
type FaceRasterizer struct {
	face          font.Face
	width, height int
	baseline      int
}

// NewFaceRasterizer renders face into width x height cells. The baseline
// is placed from the face metrics so that descenders stay in the cell.
func NewFaceRasterizer(face font.Face, width, height int) *FaceRasterizer {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return &FaceRasterizer{
		face:     face,
		width:    width,
		height:   height,
		baseline: (height + ascent - descent) / 2,
	}
}

// NewBasicRasterizer renders with the built-in 7x13 bitmap face, which
// needs no font file.
func NewBasicRasterizer() *FaceRasterizer {
	return NewFaceRasterizer(basicfont.Face7x13, basicfont.Face7x13.Width, basicfont.Face7x13.Height)
}

// LoadFontRasterizer parses a TrueType font and renders its glyphs into
// square cells of cellSize pixels at cellSize points and 72 DPI.
func LoadFontRasterizer(path string, cellSize int) (*FaceRasterizer, error) {
	if cellSize < 1 {
		return nil, fmt.Errorf("invalid glyph cell size %d", cellSize)
	}
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(cellSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return NewFaceRasterizer(face, cellSize, cellSize), nil
}

// Rasterize draws r at the left edge of the cell and thresholds its
// coverage into ink cells.
func (fr *FaceRasterizer) Rasterize(r rune) (GlyphBitmap, error) {
	dr, mask, maskp, _, ok := fr.face.Glyph(fixed.P(0, fr.baseline), r)
	if !ok {
		return GlyphBitmap{}, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}

	img := image.NewAlpha(image.Rect(0, 0, fr.width, fr.height))
	if mask != nil && !dr.Empty() {
		draw.DrawMask(img, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
	}

	bitmap := NewGlyphBitmap(fr.width, fr.height)
	for y := 0; y < fr.height; y++ {
		for x := 0; x < fr.width; x++ {
			if img.AlphaAt(x, y).A > inkThreshold {
				bitmap.Set(x, y, true)
			}
		}
	}
	return bitmap, nil
}

// Close releases the underlying face.
func (fr *FaceRasterizer) Close() error {
	return fr.face.Close()
}
