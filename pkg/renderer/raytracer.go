package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// RenderOptions controls how work is distributed, not what is rendered
type RenderOptions struct {
	TileSize   int   // Size of each tile (0 = DefaultTileSize)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile n draws from seed+n
}

// Raytracer renders a scene into an image
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     scene.SamplingConfig
	options    RenderOptions
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer for s using its sampling config and a path
// tracing integrator over its background
func NewRaytracer(s *scene.Scene, options RenderOptions, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		scene:      s,
		width:      s.SamplingConfig.Width,
		height:     s.SamplingConfig.Height,
		config:     s.SamplingConfig,
		options:    options,
		integrator: integrator.NewPathTracingIntegrator(s.Background),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// RenderPixel estimates pixel (i, j), where j counts rows from the bottom of
// the image. Each sample jitters the ray within the pixel footprint.
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) Pixel {
	camera := rt.scene.Camera
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(rt.width-1)
		t := (float64(j) + jitter.Y) / float64(rt.height-1)

		ray := camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene.World, sampler, rt.config.MaxDepth))
	}

	return QuantizeColor(colorAccum, rt.config.SamplesPerPixel)
}

// renderTile fills the tile's region of img. Image row y holds pixel row
// j = height-1-y so the first row written is the top of the picture.
func (rt *Raytracer) renderTile(tile *Tile, img *image.RGBA) {
	sampler := tile.NewSampler(rt.options.Seed)
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, rt.RenderPixel(x, j, sampler).RGBA())
		}
	}
}

// Render renders every pixel in parallel and returns the finished image.
// Cancelling ctx stops scheduling new tiles and returns the context's error.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("cannot render scene: %w", err)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.options.TileSize)
	pool := NewWorkerPool(rt.options.NumWorkers)
	progress := newProgressTracker(rt.logger, rt.width*rt.height)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d, %d tiles on %d workers\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), pool.GetNumWorkers())

	// Tiles write disjoint pixels of img, so no locking is needed
	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		rt.renderTile(tile, img)
		progress.tileDone(tile.PixelCount())
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	pixels := rt.width * rt.height
	stats := RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		TotalTiles:      len(tiles),
		NumWorkers:      pool.GetNumWorkers(),
		Duration:        time.Since(start),
		AvgLuminance:    averageLuminance(img),
	}
	rt.logger.Printf("Finished in %s\n", FormatDuration(stats.Duration))

	return img, stats, nil
}
