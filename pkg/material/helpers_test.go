package material

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// constantSampler always returns the same value
type constantSampler float64

func (c constantSampler) Get1D() float64 { return float64(c) }

// countingSampler records how many values were drawn
type countingSampler struct {
	inner core.Sampler
	draws int
}

func (c *countingSampler) Get1D() float64 {
	c.draws++
	return c.inner.Get1D()
}
