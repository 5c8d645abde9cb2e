// Package imageutil holds the pixel-level half of the ASCII art pipeline:
// the RGB image value, power-of-two padding, square tiling, luma
// brightness, and the loading and preprocessing helpers around them.
package imageutil

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrNilImage is returned when an operation is handed no image at all.
	ErrNilImage = errors.New("imageutil: nil image")
	// ErrEmptyImage is returned for images with a zero width or height.
	ErrEmptyImage = errors.New("imageutil: image has a zero dimension")
)

// White is the background used for padding.
var White = RGB{R: 255, G: 255, B: 255}

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB, reading its straight
// (non-premultiplied) channels and ignoring alpha.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBAImage is the pipeline's image value. It always starts at (0, 0),
// so GetRGB takes plain column/row coordinates. Pipeline stages never
// write into an image they were given; they build a new one.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewFilledImage creates an image of the given size with every pixel set to c.
func NewFilledImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
	}
	return img
}

// RGBAImageFromImage converts any image.Image to RGBAImage, rebasing its
// bounds to the origin. Alpha is dropped: pixels are read as opaque.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGBFromColor(img.At(x, y)))
		}
	}
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the opaque RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// Equal reports whether both images have the same size and pixels.
func (img *RGBAImage) Equal(other *RGBAImage) bool {
	if img == nil || other == nil {
		return img == other
	}
	if img.Width() != other.Width() || img.Height() != other.Height() {
		return false
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if img.GetRGB(x, y) != other.GetRGB(x, y) {
				return false
			}
		}
	}
	return true
}

func validate(img *RGBAImage) error {
	if img == nil || img.RGBA == nil {
		return ErrNilImage
	}
	if img.Width() <= 0 || img.Height() <= 0 {
		return ErrEmptyImage
	}
	return nil
}
