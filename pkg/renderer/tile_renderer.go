package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within the specified bounds, accumulating into pixelStats.
// pixelStats is indexed [y][x] in image coordinates, with y = 0 at the top row.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) RenderStats {
	sampler := core.NewRandomSampler(random)
	camera := tr.scene.Camera
	width := tr.scene.SamplingConfig.Width
	height := tr.scene.SamplingConfig.Height
	samples := tr.scene.SamplingConfig.SamplesPerPixel

	stats := RenderStats{
		TotalPixels:     bounds.Dx() * bounds.Dy(),
		SamplesPerPixel: samples,
		TilesRendered:   1,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Camera t grows upward while image rows grow downward
		j := height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			for sample := 0; sample < samples; sample++ {
				// Convert pixel coordinates to normalized coordinates with jitter
				s := (float64(i) + sampler.Get1D()) / float64(width)
				t := (float64(j) + sampler.Get1D()) / float64(height)

				ray := camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene.World, tr.scene.Background, sampler))
			}
			stats.TotalSamples += samples
		}
	}

	stats.finalize()
	return stats
}
