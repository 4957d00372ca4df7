package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for parallel rendering
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; equal seeds give identical images
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Raytracer renders a scene into an image using a pool of tile workers
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer using a path tracing integrator bounded by the scene's MaxDepth
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = s.SamplingConfig.MaxDepth

	return &Raytracer{
		scene:      s,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(integratorConfig),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the renderer configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the whole image. A cancelled context stops outstanding tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	width := rt.scene.SamplingConfig.Width
	height := rt.scene.SamplingConfig.Height
	startTime := time.Now()

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	// Shared pixel statistics array (global image coordinates)
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	workerPool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %q at %dx%d, %d samples/pixel, max depth %d (%d tiles, %d workers)...\n",
		rt.scene.Name, width, height, rt.scene.SamplingConfig.SamplesPerPixel,
		rt.scene.SamplingConfig.MaxDepth, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}

	stats := RenderStats{SamplesPerPixel: rt.scene.SamplingConfig.SamplesPerPixel}
	var renderErr error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	workerPool.Stop()

	if renderErr != nil {
		rt.logger.Printf("Rendering %q stopped: %v\n", rt.scene.Name, renderErr)
		return nil, RenderStats{}, renderErr
	}

	img := rt.assembleImage(pixelStats)
	stats.finalize()
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Rendered %d pixels with %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)

	return img, stats, nil
}

// assembleImage converts accumulated pixel statistics into an 8-bit image
func (rt *Raytracer) assembleImage(pixelStats [][]PixelStats) *image.RGBA {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Negative radiance is not physical; clamp before the square root
	colorVec = colorVec.Clamp(0.0, 1.0)

	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
