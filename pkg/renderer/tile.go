package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile is a rectangular block of the output image, in image coordinates
// (y grows downward)
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewSampler returns the tile's own random stream. Seeding by tile ID makes the
// image independent of how tiles are spread over workers.
func (t *Tile) NewSampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed + int64(t.ID))
}

// PixelCount returns the number of pixels covered by the tile
func (t *Tile) PixelCount() int {
	return t.Bounds.Dx() * t.Bounds.Dy()
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
