//go:build gocv

package imageutil

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	decodeFile = decodeGoCV
}

// decodeGoCV reads an image through OpenCV, which understands formats
// (WebP, JPEG 2000, PNM) the pure Go decoders do not.
func decodeGoCV(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image: gocv could not read %s", path)
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return img, nil
}
