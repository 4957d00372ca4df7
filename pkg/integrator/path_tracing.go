package integrator

import (
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// DefaultTMin keeps scattered rays from re-hitting the surface they left (shadow acne)
const DefaultTMin = 0.001

// Config contains path tracing configuration
type Config struct {
	MaxDepth int     // Maximum ray bounce depth
	TMin     float64 // Lower bound of valid hit distances
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     DefaultTMin,
	}
}

// PathTracingIntegrator implements unidirectional path tracing with material-driven scattering
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.TMin <= 0 {
		config.TMin = DefaultTMin
	}
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray using the configured bounce budget
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, background core.Background, sampler core.Sampler) core.Color {
	return pt.RayColorDepth(ray, world, background, sampler, pt.config.MaxDepth)
}

// RayColorDepth computes the color for a ray with depth bounces remaining
func (pt *PathTracingIntegrator) RayColorDepth(ray core.Ray, world core.Shape, background core.Background, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return background(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColorDepth(scatter.Scattered, world, background, sampler, depth-1))
}
