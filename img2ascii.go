// Package img2ascii turns raster images into grids of characters whose
// glyph density follows the image's brightness.
//
// The pipeline pads the image to power-of-two dimensions, cuts it into
// square tiles, measures the luma of every tile and maps each value to
// the nearest character of a CharMatcher. Character brightness comes from
// glyph coverage, normalized across the working set, so the full range
// of the set is always used.
package img2ascii

import (
	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultCharset is the working set used when none is configured.
const DefaultCharset = "0123456789"

// DefaultResolution is the default number of characters per row.
const DefaultResolution = 128

// Printable ASCII bounds, used by the "all" charset modifier.
const (
	FirstPrintable rune = ' '
	LastPrintable  rune = '~'
)

// BrightnessMatcher maps a tile brightness to a character.
type BrightnessMatcher interface {
	Match(brightness float64) (rune, error)
}

type matrixState int

const (
	matrixUncomputed matrixState = iota
	matrixComputed
)

// AsciiArt converts one image at one resolution. The brightness matrix
// is computed on the first Run and kept for the life of the value;
// character lookup runs on every call so matcher changes are picked up.
// Build a new AsciiArt when the image or resolution changes.
type AsciiArt struct {
	source     *imageutil.RGBAImage
	resolution int
	matcher    BrightnessMatcher

	state  matrixState
	matrix [][]float64
}

// NewAsciiArt prepares a conversion of img with resolution characters per
// row. Resolutions below 1 are treated as 1.
func NewAsciiArt(img *imageutil.RGBAImage, resolution int, matcher BrightnessMatcher) *AsciiArt {
	if resolution < 1 {
		resolution = 1
	}
	return &AsciiArt{
		source:     img,
		resolution: resolution,
		matcher:    matcher,
	}
}

// Resolution returns the characters-per-row setting.
func (a *AsciiArt) Resolution() int {
	return a.resolution
}

// Source returns the image being converted.
func (a *AsciiArt) Source() *imageutil.RGBAImage {
	return a.source
}

// Run returns the character grid, [row][col].
func (a *AsciiArt) Run() ([][]rune, error) {
	if a.state == matrixUncomputed {
		matrix, err := brightnessMatrix(a.source, a.resolution)
		if err != nil {
			return nil, err
		}
		a.matrix = matrix
		a.state = matrixComputed
	}

	grid := make([][]rune, len(a.matrix))
	for row, values := range a.matrix {
		grid[row] = make([]rune, len(values))
		for col, b := range values {
			r, err := a.matcher.Match(b)
			if err != nil {
				return nil, err
			}
			grid[row][col] = r
		}
	}
	return grid, nil
}

// BrightnessMatrix returns a copy of the cached matrix, or nil before the
// first Run.
func (a *AsciiArt) BrightnessMatrix() [][]float64 {
	if a.state != matrixComputed {
		return nil
	}
	out := make([][]float64, len(a.matrix))
	for i, row := range a.matrix {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// brightnessMatrix pads img and measures every tile.
//
// The tile size is derived from the width, while the row count is
// derived from the height with its own divisor. For non-square padded
// images the declared rows and columns can disagree with the tiles the
// subdivider produces; that is logged and only the overlap is measured.
func brightnessMatrix(img *imageutil.RGBAImage, resolution int) ([][]float64, error) {
	padded, err := imageutil.Pad(img)
	if err != nil {
		return nil, err
	}
	width, height := padded.Width(), padded.Height()

	tileSize := max(1, width/resolution)
	rows := height / max(1, height/resolution)
	cols := width / tileSize

	tiles := imageutil.Subdivide(padded, tileSize)
	tileRows, tileCols := len(tiles), 0
	if tileRows > 0 {
		tileCols = len(tiles[0])
	}

	log := Logger()
	log.Debug("subdivided image",
		"width", width, "height", height, "resolution", resolution,
		"tile", tileSize, "rows", rows, "cols", cols)
	if rows != tileRows || cols != tileCols {
		log.Warn("brightness matrix dimensions differ from tile grid",
			"rows", rows, "cols", cols, "tileRows", tileRows, "tileCols", tileCols)
		rows, cols = min(rows, tileRows), min(cols, tileCols)
	}

	matrix := make([][]float64, rows)
	for row := range matrix {
		matrix[row] = make([]float64, cols)
		for col := range matrix[row] {
			matrix[row][col] = imageutil.Brightness(tiles[row][col])
		}
	}
	return matrix, nil
}
