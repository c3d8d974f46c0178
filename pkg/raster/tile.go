package raster

import (
	"fmt"
	"sort"
)

// Tile is a rectangular region of the final image with its own pixel buffer.
// Coordinates passed to Set are global image coordinates.
type Tile struct {
	StartRow int
	StartCol int
	Image    *Image
}

// NewTile creates a black tile of the given size anchored at (startRow, startCol)
func NewTile(startRow, startCol, width, height int) *Tile {
	return &Tile{
		StartRow: startRow,
		StartCol: startCol,
		Image:    NewImage(width, height),
	}
}

// Set writes a pixel at global image coordinates
func (t *Tile) Set(row, col int, p Pixel) {
	t.Image.Set(row-t.StartRow, col-t.StartCol, p)
}

// EndRow returns the first row after the tile
func (t *Tile) EndRow() int {
	return t.StartRow + t.Image.Height
}

// EndCol returns the first column after the tile
func (t *Tile) EndCol() int {
	return t.StartCol + t.Image.Width
}

// FromTiles assembles full-width bands into one image. The tiles are ordered by
// StartRow and must cover every row of a width x height image exactly once.
func FromTiles(width, height int, tiles []*Tile) (*Image, error) {
	sorted := make([]*Tile, len(tiles))
	copy(sorted, tiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartRow < sorted[j].StartRow
	})

	img := &Image{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, 0, max(width*height, 0)),
	}

	nextRow := 0
	for _, tile := range sorted {
		if tile == nil || tile.Image == nil {
			return nil, fmt.Errorf("tile at row %d has no pixels", nextRow)
		}
		if tile.StartCol != 0 || tile.Image.Width != width {
			return nil, fmt.Errorf("tile at row %d is not a full-width band (col %d, width %d, want width %d)",
				tile.StartRow, tile.StartCol, tile.Image.Width, width)
		}
		if tile.StartRow != nextRow {
			return nil, fmt.Errorf("tiles do not partition the image: expected row %d, got %d", nextRow, tile.StartRow)
		}
		img.Pix = append(img.Pix, tile.Image.Pix...)
		nextRow = tile.EndRow()
	}

	if nextRow != height {
		return nil, fmt.Errorf("tiles cover %d of %d rows", nextRow, height)
	}
	return img, nil
}
