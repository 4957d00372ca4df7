package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// GradientBackground blends bottomColor to topColor by the ray's vertical direction
func GradientBackground(topColor, bottomColor core.Color) core.Background {
	return func(r core.Ray) core.Color {
		unitDirection := r.Direction.Normalize()

		// Use the y-component to create a gradient (map from -1,1 to 0,1)
		t := 0.5 * (unitDirection.Y + 1.0)

		// Linear interpolation: (1-t)*bottom + t*top
		return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
	}
}

// SolidBackground returns the same color for every direction
func SolidBackground(color core.Color) core.Background {
	return func(core.Ray) core.Color {
		return color
	}
}

// SkyBackground is the default blue sky over white horizon
func SkyBackground() core.Background {
	return GradientBackground(
		core.NewVec3(0.5, 0.7, 1.0), // topColor (blue sky)
		core.NewVec3(1.0, 1.0, 1.0), // bottomColor (white ground)
	)
}
