package imageutil

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Adjustments describes optional tonal changes applied to a loaded image
// before it enters the pipeline. The zero value changes nothing.
type Adjustments struct {
	// Gamma of 1.0 (or 0, meaning unset) keeps the image. Below 1.0
	// darkens, above 1.0 lightens.
	Gamma float64 `yaml:"gamma"`
	// Brightness in [-100, 100]; 0 keeps the image.
	Brightness float64 `yaml:"brightness"`
	// Contrast in [-100, 100]; 0 keeps the image.
	Contrast float64 `yaml:"contrast"`
	// Sharpen sigma; 0 keeps the image.
	Sharpen float64 `yaml:"sharpen"`
	// Invert swaps light and dark, for output read on a light background.
	Invert bool `yaml:"invert"`
}

// IsZero reports whether a leaves the image untouched.
func (a Adjustments) IsZero() bool {
	return (a.Gamma == 0 || a.Gamma == 1) && a.Brightness == 0 &&
		a.Contrast == 0 && a.Sharpen == 0 && !a.Invert
}

// Adjust returns a new image with the adjustments applied in the order
// gamma, brightness, contrast, sharpen, invert. img itself is not touched.
func Adjust(img *RGBAImage, a Adjustments) (*RGBAImage, error) {
	if err := validate(img); err != nil {
		return nil, err
	}
	if a.IsZero() {
		return img, nil
	}

	var out image.Image = img.RGBA
	if a.Gamma != 0 && a.Gamma != 1 {
		out = imaging.AdjustGamma(out, a.Gamma)
	}
	if a.Brightness != 0 {
		out = imaging.AdjustBrightness(out, a.Brightness)
	}
	if a.Contrast != 0 {
		out = imaging.AdjustContrast(out, a.Contrast)
	}
	if a.Sharpen > 0 {
		out = imaging.Sharpen(out, a.Sharpen)
	}
	if a.Invert {
		out = imaging.Invert(out)
	}
	return RGBAImageFromImage(out), nil
}

// Fit scales img down, keeping its aspect ratio, so it is at most
// maxWidth by maxHeight pixels. A bound of 0 leaves that axis free.
// Images already inside the bounds are returned unchanged; Fit never
// scales up.
func Fit(img *RGBAImage, maxWidth, maxHeight int) (*RGBAImage, error) {
	if err := validate(img); err != nil {
		return nil, err
	}
	if maxWidth <= 0 {
		maxWidth = img.Width()
	}
	if maxHeight <= 0 {
		maxHeight = img.Height()
	}
	if img.Width() <= maxWidth && img.Height() <= maxHeight {
		return img, nil
	}

	thumb := resize.Thumbnail(uint(maxWidth), uint(maxHeight), img.RGBA, resize.Lanczos3)
	return RGBAImageFromImage(thumb), nil
}
