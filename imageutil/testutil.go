package imageutil

// Synthetic images for tests and demos.

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	return NewFilledImage(width, height, c)
}

// CreateGradientImage creates a horizontal black-to-white gradient.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateSplitImage creates an image whose first splitRow rows are top
// and whose remaining rows are bottom.
func CreateSplitImage(width, height, splitRow int, top, bottom RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		c := bottom
		if y < splitRow {
			c = top
		}
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard with
// squareSize pixel squares, white in the top-left corner.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, White)
			} else {
				img.SetRGB(x, y, RGB{})
			}
		}
	}
	return img
}

// CreateIndexedImage gives every pixel a distinct color derived from its
// coordinates, so tests can tell where a pixel came from.
func CreateIndexedImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, RGB{R: uint8(x), G: uint8(y), B: uint8(x ^ y)})
		}
	}
	return img
}
