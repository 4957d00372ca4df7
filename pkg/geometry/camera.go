package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Vec3 `json:"lookFrom"`      // Camera position
	LookAt        core.Vec3 `json:"lookAt"`        // Point the camera looks at
	Up            core.Vec3 `json:"up"`            // Up direction (usually (0,1,0))
	VFov          float64   `json:"vfov"`          // Vertical field of view in degrees
	AspectRatio   float64   `json:"aspectRatio"`   // Width / height
	Aperture      float64   `json:"aperture"`      // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   `json:"focusDistance"` // Distance to the focal plane, <= 0 focuses on LookAt
}

// ErrInvalidCamera is returned by CameraConfig.Validate
var ErrInvalidCamera = errors.New("invalid camera config")

// Resolved returns a copy of the config with automatic values filled in
func (c CameraConfig) Resolved() CameraConfig {
	if c.FocusDistance <= 0 {
		c.FocusDistance = c.LookFrom.Subtract(c.LookAt).Length()
	}
	return c
}

// Validate checks the preconditions the camera relies on
func (c CameraConfig) Validate() error {
	c = c.Resolved()
	switch {
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidCamera, c.AspectRatio)
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("%w: vertical fov %g must be in (0, 180)", ErrInvalidCamera, c.VFov)
	case c.Aperture < 0:
		return fmt.Errorf("%w: aperture %g must not be negative", ErrInvalidCamera, c.Aperture)
	case c.FocusDistance <= 0:
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidCamera)
	case c.Up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero():
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// PinholeAperture in an override sets the merged aperture to 0, which a zero field cannot
const PinholeAperture = -1.0

// MergeCameraConfig returns base with every non-zero field of override applied.
// Zero fields mean unset; use PinholeAperture to turn depth of field off.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture < 0 {
		result.Aperture = 0
	} else if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering with optional depth of field
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // orthonormal basis, the camera looks down -w
	lensRadius      float64
}

// NewCamera creates a positionable camera from the config. The config is not validated.
func NewCamera(config CameraConfig) *Camera {
	config = config.Resolved()

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray through normalized image coordinates (s, t), 0 <= s,t <= 1 across the image.
// With a zero lens radius no random numbers are drawn.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}

// Origin returns the center of the lens
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Basis returns the camera's orthonormal basis vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// LensRadius returns the radius of the lens disk
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
