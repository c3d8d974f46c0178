package raster

// Blank returns an all-black image
func Blank(width, height int) *Image {
	return NewImage(width, height)
}

// Gradient returns the test pattern: red increases left to right, green increases
// bottom to top, blue is fixed at 0.2.
func Gradient(width, height int) *Image {
	img := NewImage(width, height)
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			r := float64(col) / float64(width)
			g := float64(height-row-1) / float64(height)
			img.Set(row, col, NewPixel(uint8(r*255), uint8(g*255), uint8(0.2*255)))
		}
	}
	return img
}
