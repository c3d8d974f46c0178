package renderer

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/integrator"
	"github.com/df07/rayito/pkg/raster"
)

// TileRenderer renders pixels of a tile using an integrator. It holds only
// read-only state and may be shared by every worker.
type TileRenderer struct {
	world           geometry.Hittable
	camera          *Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
	seed            int64
}

// NewTileRenderer creates a tile renderer for a width x height image
func NewTileRenderer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int, seed int64) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: max(1, samplesPerPixel),
		seed:            seed,
	}
}

// RowSeed derives the sampler seed for an image row
func RowSeed(seed int64, row int) int64 {
	return int64(uint64(seed) ^ (uint64(row)+1)*0x9E3779B97F4A7C15)
}

// RenderTile fills every pixel of the tile and returns the number of samples taken.
// The sampler is reseeded at the start of each row, so a row's pixels do not
// depend on which tile or worker rendered it.
func (tr *TileRenderer) RenderTile(tile *raster.Tile, sampler *core.RandomSampler) int {
	samples := 0
	for row := tile.StartRow; row < tile.EndRow(); row++ {
		sampler.Reseed(RowSeed(tr.seed, row))
		for col := tile.StartCol; col < tile.EndCol(); col++ {
			tile.Set(row, col, tr.RenderPixel(row, col, sampler))
			samples += tr.samplesPerPixel
		}
	}
	return samples
}

// RenderPixel averages samplesPerPixel jittered samples for pixel (row, col) and
// converts the gamma-corrected result to a pixel. Row 0 is the top of the image.
func (tr *TileRenderer) RenderPixel(row, col int, sampler core.Sampler) raster.Pixel {
	colorAccum := core.Vec3{}
	for s := 0; s < tr.samplesPerPixel; s++ {
		u := (float64(col) + sampler.Get1D()) / float64(tr.width)
		v := (float64(tr.height-row-1) + sampler.Get1D()) / float64(tr.height)

		ray := tr.camera.GetRay(u, v, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, sampler, 0))
	}

	// Gamma 2
	return raster.PixelFromColor(colorAccum.Divide(float64(tr.samplesPerPixel)).Sqrt())
}
