package img2ascii

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii/imageutil"
)

var (
	red  = imageutil.RGB{R: 255}
	navy = imageutil.RGB{B: 128}
)

func TestRenderGridLayout(t *testing.T) {
	// e has no ink, f is solid.
	img, err := RenderGrid([][]rune{[]rune("ef"), []rune("f")}, testRaster, 2, red, navy)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width())
	assert.Equal(t, 32, img.Height())

	assert.Equal(t, navy, img.GetRGB(0, 0))
	assert.Equal(t, navy, img.GetRGB(15, 15))
	assert.Equal(t, red, img.GetRGB(16, 0))
	assert.Equal(t, red, img.GetRGB(31, 15))
	assert.Equal(t, red, img.GetRGB(0, 16))
	// Short row padded with background.
	assert.Equal(t, navy, img.GetRGB(16, 16))
}

func TestRenderGridPartialGlyph(t *testing.T) {
	// a inks the first row of its 8x8 cell.
	img, err := RenderGrid([][]rune{[]rune("a")}, testRaster, 1, red, navy)
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		assert.Equal(t, red, img.GetRGB(x, 0))
		assert.Equal(t, navy, img.GetRGB(x, 1))
	}
}

func TestRenderGridErrors(t *testing.T) {
	_, err := RenderGrid(nil, testRaster, 1, red, navy)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = RenderGrid([][]rune{{}}, testRaster, 1, red, navy)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = RenderGrid([][]rune{[]rune("z")}, testRaster, 1, red, navy)
	assert.ErrorIs(t, err, ErrNoGlyph)
}

func TestPNGOutputRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	out := PNGOutput{Path: path, Raster: NewBasicRasterizer(), FG: imageutil.White}
	require.NoError(t, out.Out([][]rune{[]rune("#. "), []rune(" .#")}))

	img, err := imageutil.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 21, img.Width())
	assert.Equal(t, 26, img.Height())

	// Brighter glyphs put more light into their cells.
	hash := imageutil.Brightness(crop(img, 0, 0))
	dot := imageutil.Brightness(crop(img, 7, 0))
	space := imageutil.Brightness(crop(img, 14, 0))
	assert.Greater(t, hash, dot)
	assert.Greater(t, dot, space)
	assert.Equal(t, 0.0, space)
}

func crop(img *imageutil.RGBAImage, x0, y0 int) *imageutil.RGBAImage {
	out := imageutil.NewRGBAImage(7, 13)
	for y := 0; y < 13; y++ {
		for x := 0; x < 7; x++ {
			out.SetRGB(x, y, img.GetRGB(x0+x, y0+y))
		}
	}
	return out
}
