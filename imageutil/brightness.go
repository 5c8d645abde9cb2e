package imageutil

// BT.709 luma weights.
const (
	RedWeight   = 0.2126
	GreenWeight = 0.7152
	BlueWeight  = 0.0722

	maxChannel = 255.0
)

// Brightness returns the mean luma of img as a fraction of the maximum
// possible luma, in [0, 1]. Black is 0 and white is 1. An empty image
// has brightness 0.
func Brightness(img *RGBAImage) float64 {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return 0
	}

	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			sum += RedWeight*float64(c.R) + GreenWeight*float64(c.G) + BlueWeight*float64(c.B)
		}
	}

	b := sum / (float64(width*height) * maxChannel)
	// The weights sum to 1 only up to rounding.
	if b > 1 {
		return 1
	}
	return b
}
