package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/rayito/pkg/core"
)

// Pixel is an 8-bit RGB color
type Pixel struct {
	R, G, B uint8
}

// NewPixel creates a pixel from its channels
func NewPixel(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// PixelFromColor converts a linear color to a pixel. Channels are clamped to [0, 1]
// and NaN maps to 0 before truncating c*255.
func PixelFromColor(c core.Vec3) Pixel {
	return Pixel{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
	}
}

func channelToByte(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c * 255)
}

// Image is a row-major pixel buffer
type Image struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

func (img *Image) index(row, col int) int {
	return row*img.Width + col
}

// Set writes the pixel at (row, col)
func (img *Image) Set(row, col int, p Pixel) {
	img.Pix[img.index(row, col)] = p
}

// At returns the pixel at (row, col)
func (img *Image) At(row, col int) Pixel {
	return img.Pix[img.index(row, col)]
}

// PixelCount returns Width*Height
func (img *Image) PixelCount() int {
	return img.Width * img.Height
}

// ToRGBA converts the image for use with the image/* encoders
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			p := img.At(row, col)
			rgba.SetRGBA(col, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}
