package imageutil

import "math/bits"

// Pad returns a new image whose width and height are each the smallest
// power of two not below the original dimension. The original pixels
// are centered and the border is filled with White. Each axis is offset
// by half of its own size delta.
func Pad(img *RGBAImage) (*RGBAImage, error) {
	if err := validate(img); err != nil {
		return nil, err
	}

	width, height := img.Width(), img.Height()
	if IsPowerOfTwo(width) && IsPowerOfTwo(height) {
		return img.Clone(), nil
	}
	paddedWidth, paddedHeight := NextPowerOfTwo(width), NextPowerOfTwo(height)
	offsetX := (paddedWidth - width) / 2
	offsetY := (paddedHeight - height) / 2

	padded := NewFilledImage(paddedWidth, paddedHeight, White)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			padded.SetRGB(x+offsetX, y+offsetY, img.GetRGB(x, y))
		}
	}
	return padded, nil
}

// NextPowerOfTwo returns the smallest power of two >= n. Values below 1
// return 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
