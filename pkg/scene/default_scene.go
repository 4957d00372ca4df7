package scene

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with three spheres on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		// Hollow glass sphere: the inner shell has a negative radius so its normals point inward
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
	)

	return NewScene("default", cameraConfig, world, SkyBackground(), DefaultSamplingConfig())
}

// NewTestScene creates a single red diffuse sphere in front of a white background
func NewTestScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   1.0,
		FocusDistance: 1.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	red := material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -2), 1, red))

	sampling := SamplingConfig{
		Width:           100,
		Height:          100,
		SamplesPerPixel: 16,
		MaxDepth:        10,
	}

	return NewScene("test", cameraConfig, world, SolidBackground(core.NewVec3(1, 1, 1)), sampling)
}
