package renderer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/integrator"
	"github.com/df07/rayito/pkg/raster"
)

// TileEvent reports a finished tile. Events are delivered from the collecting
// goroutine, one at a time, in completion order.
type TileEvent struct {
	Tile       *raster.Tile
	TileNumber int // 1-based completion count
	TotalTiles int
}

// Raytracer renders a world through a camera into an image
type Raytracer struct {
	world        geometry.Hittable
	camera       *Camera
	width        int
	height       int
	config       RenderConfig
	seed         int64
	integrator   integrator.Integrator
	logger       zerolog.Logger
	tileCallback func(TileEvent)
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithLogger sets the logger used for render progress
func WithLogger(logger zerolog.Logger) Option {
	return func(rt *Raytracer) {
		rt.logger = logger
	}
}

// WithIntegrator replaces the default path tracing integrator
func WithIntegrator(i integrator.Integrator) Option {
	return func(rt *Raytracer) {
		rt.integrator = i
	}
}

// WithTileCallback registers a function called as each tile completes
func WithTileCallback(fn func(TileEvent)) Option {
	return func(rt *Raytracer) {
		rt.tileCallback = fn
	}
}

// NewRaytracer creates a new raytracer. A zero seed is replaced with a time based one
// so repeated renders of the same Raytracer stay consistent.
func NewRaytracer(world geometry.Hittable, camera *Camera, width, height int, config RenderConfig, opts ...Option) *Raytracer {
	config = config.withDefaults()

	rt := &Raytracer{
		world:  world,
		camera: camera,
		width:  max(width, 0),
		height: max(height, 0),
		config: config,
		seed:   config.Seed,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.integrator == nil {
		rt.integrator = integrator.NewPathTracingIntegrator(config.MaxDepth)
	}
	if rt.seed == 0 {
		rt.seed = time.Now().UnixNano()
	}

	return rt
}

// Seed returns the resolved base seed
func (rt *Raytracer) Seed() int64 {
	return rt.seed
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

func (rt *Raytracer) newTileRenderer() *TileRenderer {
	return NewTileRenderer(rt.world, rt.camera, rt.integrator, rt.width, rt.height, rt.config.SamplesPerPixel, rt.seed)
}

// Render plans config.Jobs bands and renders them in parallel
func (rt *Raytracer) Render() (*raster.Image, RenderStats, error) {
	return rt.RenderTiles(PlanTiles(rt.width, rt.height, rt.config.Jobs))
}

// RenderTiles renders the given tiles in parallel and assembles them. The tiles must be
// full-width bands that partition the image. If any tile fails no image is returned.
func (rt *Raytracer) RenderTiles(tiles []*raster.Tile) (*raster.Image, RenderStats, error) {
	start := time.Now()
	stats := RenderStats{
		Width:       rt.width,
		Height:      rt.height,
		TotalPixels: rt.width * rt.height,
		Tiles:       len(tiles),
	}

	if stats.TotalPixels == 0 {
		stats.Duration = time.Since(start)
		return raster.NewImage(rt.width, rt.height), stats, nil
	}

	jobs := make([]*TileJob, len(tiles))
	for i, tile := range tiles {
		jobs[i] = NewTileJob(i, tile)
	}

	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	numWorkers = max(1, min(numWorkers, len(jobs)))
	stats.Workers = numWorkers

	rt.logger.Info().
		Int("width", rt.width).
		Int("height", rt.height).
		Int("tiles", len(jobs)).
		Int("workers", numWorkers).
		Int("samples", rt.config.SamplesPerPixel).
		Int64("seed", rt.seed).
		Msg("Starting render")

	pool := NewWorkerPool(rt.newTileRenderer(), len(jobs), numWorkers, rt.logger)
	for _, job := range jobs {
		pool.SubmitTask(job)
	}
	pool.Close()
	pool.Start()

	var renderErr error
	completed := 0
	for result := range pool.Results() {
		if result.Err != nil {
			if renderErr == nil {
				renderErr = result.Err
			}
			continue
		}
		completed++
		stats.TotalSamples += result.Samples
		if rt.tileCallback != nil {
			rt.tileCallback(TileEvent{
				Tile:       result.Job.Tile,
				TileNumber: completed,
				TotalTiles: len(jobs),
			})
		}
	}
	stats.Duration = time.Since(start)

	if renderErr != nil {
		rt.logger.Error().Err(renderErr).Msg("Render failed")
		return nil, stats, fmt.Errorf("render failed: %w", renderErr)
	}

	for _, job := range jobs {
		if job.State() != TileDone {
			return nil, stats, fmt.Errorf("tile %d finished in state %s", job.ID, job.State())
		}
	}

	img, err := raster.FromTiles(rt.width, rt.height, tiles)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to assemble image: %w", err)
	}

	rt.logger.Info().EmbedObject(stats).Msg("Render complete")
	return img, stats, nil
}

// RenderDirect renders the whole image on the calling goroutine. It produces the same
// pixels as Render for the same seed.
func (rt *Raytracer) RenderDirect() *raster.Image {
	tile := raster.NewTile(0, 0, rt.width, rt.height)
	rt.newTileRenderer().RenderTile(tile, core.NewRandomSampler(rt.seed))
	return tile.Image
}
