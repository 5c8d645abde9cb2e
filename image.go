package img2ascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// ErrEmptyGrid is returned when rendering a grid with no cells.
var ErrEmptyGrid = errors.New("img2ascii: empty character grid")

// DefaultPNGFile is used by the shell's png output.
const DefaultPNGFile = "out.png"

// PNGOutput draws the grid with the glyphs of a rasterizer and saves it as
// a PNG file. Ink cells are painted FG on a BG background.
type PNGOutput struct {
	Path   string
	Raster GlyphRasterizer
	Scale  int
	FG, BG imageutil.RGB
}

// Out implements Output.
func (o PNGOutput) Out(grid [][]rune) error {
	img, err := RenderGrid(grid, o.Raster, o.Scale, o.FG, o.BG)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, o.Path)
}

// RenderGrid draws grid into an image. Every cell is as large as the
// largest glyph bitmap in the grid, multiplied by scale. Short rows are
// padded with background.
func RenderGrid(grid [][]rune, raster GlyphRasterizer, scale int, fg, bg imageutil.RGB) (*imageutil.RGBAImage, error) {
	if scale < 1 {
		scale = 1
	}

	glyphs := make(map[rune]GlyphBitmap)
	var cols, cellW, cellH int
	for _, row := range grid {
		cols = max(cols, len(row))
		for _, r := range row {
			if _, ok := glyphs[r]; ok {
				continue
			}
			g, err := raster.Rasterize(r)
			if err != nil {
				return nil, fmt.Errorf("failed to render grid: %w", err)
			}
			glyphs[r] = g
			cellW, cellH = max(cellW, g.Width()), max(cellH, g.Height())
		}
	}
	if cols == 0 || cellW == 0 || cellH == 0 {
		return nil, ErrEmptyGrid
	}

	stepX, stepY := cellW*scale, cellH*scale
	img := imageutil.NewFilledImage(cols*stepX, len(grid)*stepY, bg)
	for y, row := range grid {
		for x, r := range row {
			drawGlyph(img, x*stepX, y*stepY, glyphs[r], scale, fg)
		}
	}
	return img, nil
}

// drawGlyph paints the ink cells of g as scale x scale squares with the
// top-left corner at (x0, y0).
func drawGlyph(img *imageutil.RGBAImage, x0, y0 int, g GlyphBitmap, scale int, fg imageutil.RGB) {
	for gy := 0; gy < g.Height(); gy++ {
		for gx := 0; gx < g.Width(); gx++ {
			if !g.At(gx, gy) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGB(x0+gx*scale+sx, y0+gy*scale+sy, fg)
				}
			}
		}
	}
}
