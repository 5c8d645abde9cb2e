package imageutil

// Subdivide splits img into square tiles of tileSize pixels, returned as
// [row][col]. The grid has Height/tileSize rows and Width/tileSize
// columns; pixels past the last full tile on either axis are dropped.
// A tileSize below 1 is treated as 1.
func Subdivide(img *RGBAImage, tileSize int) [][]*RGBAImage {
	if tileSize < 1 {
		tileSize = 1
	}
	rows := img.Height() / tileSize
	cols := img.Width() / tileSize

	tiles := make([][]*RGBAImage, rows)
	for row := range tiles {
		tiles[row] = make([]*RGBAImage, cols)
		for col := range tiles[row] {
			tiles[row][col] = crop(img, col*tileSize, row*tileSize, tileSize)
		}
	}
	return tiles
}

// crop copies the size x size square whose top-left corner is (x0, y0).
func crop(img *RGBAImage, x0, y0, size int) *RGBAImage {
	tile := NewRGBAImage(size, size)
	rowBytes := size * 4
	for y := 0; y < size; y++ {
		src := img.PixOffset(x0, y0+y)
		dst := tile.PixOffset(0, y)
		copy(tile.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
	}
	return tile
}
