package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

var (
	// ErrUnknownMaterial is returned for an unknown material type or an undefined material reference
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrUnknownShape is returned for an unknown shape type
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnknownBackground is returned for an unknown background type
	ErrUnknownBackground = errors.New("unknown background")
)

// SceneDescription is the on-disk form of a scene
type SceneDescription struct {
	Name       string                `json:"name"`
	Camera     geometry.CameraConfig `json:"camera"`
	Background BackgroundDescription `json:"background"`
	Sampling   SamplingDescription   `json:"sampling"`
	Materials  []MaterialDescription `json:"materials"`
	Shapes     []ShapeDescription    `json:"shapes"`
}

// BackgroundDescription selects the color of escaping rays
type BackgroundDescription struct {
	Type   string     `json:"type"`   // "gradient" (default) or "solid"
	Top    core.Color `json:"top"`    // gradient
	Bottom core.Color `json:"bottom"` // gradient
	Color  core.Color `json:"color"`  // solid
}

// SamplingDescription overrides the default sampling settings. Absent fields keep the
// defaults; present fields are used as given, so "maxDepth": 0 really means no bounces.
type SamplingDescription struct {
	Width           *int `json:"width,omitempty"`
	Height          *int `json:"height,omitempty"`
	SamplesPerPixel *int `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int `json:"maxDepth,omitempty"`
}

// Resolve applies the present fields over the default sampling configuration
func (sd SamplingDescription) Resolve() scene.SamplingConfig {
	sampling := scene.DefaultSamplingConfig()
	if sd.Width != nil {
		sampling.Width = *sd.Width
	}
	if sd.Height != nil {
		sampling.Height = *sd.Height
	}
	if sd.SamplesPerPixel != nil {
		sampling.SamplesPerPixel = *sd.SamplesPerPixel
	}
	if sd.MaxDepth != nil {
		sampling.MaxDepth = *sd.MaxDepth
	}
	return sampling
}

// MaterialDescription defines a named material shared by every shape referencing it
type MaterialDescription struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          core.Color `json:"albedo"`
	Fuzz            float64    `json:"fuzz,omitempty"`            // metal
	RefractionIndex float64    `json:"refractionIndex,omitempty"` // dielectric
}

// ShapeDescription places a shape in the world
type ShapeDescription struct {
	Type       string    `json:"type"` // "sphere"
	Center     core.Vec3 `json:"center"`
	Radius     float64   `json:"radius"` // negative for hollow shells
	MaterialID string    `json:"materialId"`
}

// LoadScene reads a scene description from a JSON file
func LoadScene(path string) (*SceneDescription, error) {
	if err := validateFilePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var desc SceneDescription
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &desc, nil
}

// SaveScene writes a scene description to a JSON file
func SaveScene(path string, desc *SceneDescription) (err error) {
	if err := validateFilePath(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close scene: %w", closeErr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// LoadAndBuild reads a JSON scene file and builds it
func LoadAndBuild(path string) (*scene.Scene, error) {
	desc, err := LoadScene(path)
	if err != nil {
		return nil, err
	}
	return Build(desc)
}

// Build creates a renderable scene. Materials are created before the shapes that reference them.
func Build(desc *SceneDescription) (*scene.Scene, error) {
	materials := make(map[string]core.Material, len(desc.Materials))
	for _, md := range desc.Materials {
		if md.ID == "" {
			return nil, fmt.Errorf("scene %q: material without id", desc.Name)
		}
		if _, exists := materials[md.ID]; exists {
			return nil, fmt.Errorf("scene %q: duplicate material %q", desc.Name, md.ID)
		}
		mat, err := buildMaterial(md)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", desc.Name, err)
		}
		materials[md.ID] = mat
	}

	world := geometry.NewShapeList()
	for i, sd := range desc.Shapes {
		mat, ok := materials[sd.MaterialID]
		if !ok {
			return nil, fmt.Errorf("scene %q: shape %d: %w %q", desc.Name, i, ErrUnknownMaterial, sd.MaterialID)
		}
		shape, err := buildShape(sd, mat)
		if err != nil {
			return nil, fmt.Errorf("scene %q: shape %d: %w", desc.Name, i, err)
		}
		world.Add(shape)
	}

	background, err := buildBackground(desc.Background)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", desc.Name, err)
	}

	return scene.NewScene(desc.Name, desc.Camera, world, background, desc.Sampling.Resolve())
}

func buildMaterial(md MaterialDescription) (core.Material, error) {
	switch md.Type {
	case "lambertian":
		return material.NewLambertian(md.Albedo), nil
	case "metal":
		return material.NewMetal(md.Albedo, md.Fuzz), nil
	case "dielectric":
		if md.RefractionIndex <= 0 {
			return nil, fmt.Errorf("material %q: refraction index %g must be positive", md.ID, md.RefractionIndex)
		}
		return material.NewDielectric(md.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("material %q: %w type %q", md.ID, ErrUnknownMaterial, md.Type)
	}
}

func buildShape(sd ShapeDescription, mat core.Material) (core.Shape, error) {
	switch sd.Type {
	case "sphere":
		if sd.Radius == 0 {
			return nil, fmt.Errorf("sphere radius must be non-zero")
		}
		return geometry.NewSphere(sd.Center, sd.Radius, mat), nil
	default:
		return nil, fmt.Errorf("%w type %q", ErrUnknownShape, sd.Type)
	}
}

func buildBackground(bd BackgroundDescription) (core.Background, error) {
	switch bd.Type {
	case "", "gradient":
		if bd.Top == (core.Color{}) && bd.Bottom == (core.Color{}) {
			return scene.SkyBackground(), nil
		}
		return scene.GradientBackground(bd.Top, bd.Bottom), nil
	case "solid":
		return scene.SolidBackground(bd.Color), nil
	default:
		return nil, fmt.Errorf("%w type %q", ErrUnknownBackground, bd.Type)
	}
}

// validateFilePath rejects paths that are not plain JSON files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}
	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}
	return nil
}

// IsSceneFile reports whether name looks like a JSON scene path rather than a built-in scene name
func IsSceneFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
