package integrator

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call from many goroutines, each with its own sampler.
type Integrator interface {
	// RayColor returns one radiance sample for the ray
	RayColor(ray core.Ray, world core.Shape, background core.Background, sampler core.Sampler) core.Color
}
