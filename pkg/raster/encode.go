package raster

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
)

// EncodePPM writes the image as a plain-text P3 PPM: a "P3 <width> <height> 255" header
// followed by one "R G B" line per pixel in row-major order.
func EncodePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3 %d %d 255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}
	for _, p := range img.Pix {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("failed to write ppm pixels: %w", err)
		}
	}
	return bw.Flush()
}

// EncodePNG writes the image as PNG
func EncodePNG(w io.Writer, img *Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Encode writes the image in the named format ("ppm" or "png")
func Encode(w io.Writer, img *Image, format string) error {
	switch format {
	case "ppm":
		return EncodePPM(w, img)
	case "png":
		return EncodePNG(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
