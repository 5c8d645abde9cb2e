package imageutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustZeroIsIdentity(t *testing.T) {
	img := CreateIndexedImage(4, 4)
	out, err := Adjust(img, Adjustments{Gamma: 1})
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestAdjustInvert(t *testing.T) {
	img := CreateSplitImage(4, 4, 2, White, RGB{})
	out, err := Adjust(img, Adjustments{Invert: true})
	require.NoError(t, err)

	assert.Equal(t, RGB{}, out.GetRGB(0, 0))
	assert.Equal(t, White, out.GetRGB(0, 3))
	assert.Equal(t, White, img.GetRGB(0, 0), "input must not change")
}

func TestAdjustBrightnessRaisesLuma(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{R: 100, G: 100, B: 100})
	out, err := Adjust(img, Adjustments{Brightness: 30})
	require.NoError(t, err)
	assert.Greater(t, Brightness(out), Brightness(img))
}

func TestAdjustRejectsNil(t *testing.T) {
	_, err := Adjust(nil, Adjustments{Invert: true})
	assert.ErrorIs(t, err, ErrNilImage)
}

func TestFitScalesDownKeepingAspect(t *testing.T) {
	out, err := Fit(CreateGradientImage(100, 50), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Width())
	assert.Equal(t, 5, out.Height())
}

func TestFitLeavesSmallImages(t *testing.T) {
	img := CreateGradientImage(8, 8)
	out, err := Fit(img, 64, 0)
	require.NoError(t, err)
	assert.Same(t, img, out)
}
