package scene

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.ShapeList // Objects in the scene
	Background     core.Background     // Color of rays that escape the scene
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int `json:"width"`           // Image width
	Height          int `json:"height"`          // Image height
	SamplesPerPixel int `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int `json:"maxDepth"`        // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig returns base with every positive field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// NewScene assembles a scene, deriving the camera from cameraConfig.
// The camera aspect ratio follows the image dimensions when it is left unset.
func NewScene(name string, cameraConfig geometry.CameraConfig, world *geometry.ShapeList, background core.Background, sampling SamplingConfig) (*Scene, error) {
	if sampling.Width <= 0 || sampling.Height <= 0 {
		return nil, fmt.Errorf("scene %q: image size %dx%d must be positive", name, sampling.Width, sampling.Height)
	}
	if sampling.SamplesPerPixel <= 0 || sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("scene %q: %d samples per pixel and max depth %d are invalid", name, sampling.SamplesPerPixel, sampling.MaxDepth)
	}
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}
	cameraConfig = cameraConfig.Resolved()
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	if world == nil {
		world = geometry.NewShapeList()
	}
	if background == nil {
		background = SolidBackground(core.Color{})
	}

	return &Scene{
		Name:           name,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          world,
		Background:     background,
		SamplingConfig: sampling,
	}, nil
}

// GetPrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
