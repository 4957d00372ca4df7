package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

func TestBuiltinScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, 42)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			if s.Camera == nil {
				t.Error("scene has no camera")
			}
			if s.Background == nil {
				t.Error("scene has no background")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("scene has no shapes")
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("invalid image size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
			wantAspect := float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
			if math.Abs(s.CameraConfig.AspectRatio-wantAspect) > 1e-9 {
				t.Errorf("aspect ratio %v, expected %v", s.CameraConfig.AspectRatio, wantAspect)
			}
		})
	}
}

func TestNew_UnknownScene(t *testing.T) {
	_, err := New("does-not-exist", 0)
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("expected ErrUnknownScene, got %v", err)
	}
}

func TestDefaultScene_Contents(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatal(err)
	}
	if s.GetPrimitiveCount() != 5 {
		t.Errorf("expected 5 spheres, got %d", s.GetPrimitiveCount())
	}

	// The inner glass shell is hollow
	inner, ok := s.World.Shapes[3].(*geometry.Sphere)
	if !ok {
		t.Fatalf("expected a sphere, got %T", s.World.Shapes[3])
	}
	if inner.Radius >= 0 {
		t.Errorf("inner glass radius %v, expected negative", inner.Radius)
	}

	// Auto focus distance equals the distance to the look-at point
	expectedFocus := s.CameraConfig.LookFrom.Subtract(s.CameraConfig.LookAt).Length()
	if math.Abs(s.CameraConfig.FocusDistance-expectedFocus) > 1e-9 {
		t.Errorf("focus distance %v, expected %v", s.CameraConfig.FocusDistance, expectedFocus)
	}
}

func TestDefaultScene_CameraOverride(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{VFov: 60})
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.VFov != 60 {
		t.Errorf("vfov %v, expected override 60", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Aperture != 0.1 {
		t.Errorf("aperture %v, expected default 0.1", s.CameraConfig.Aperture)
	}
}

func TestDefaultScene_PinholeOverride(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{Aperture: geometry.PinholeAperture})
	if err != nil {
		t.Fatal(err)
	}
	if r := s.Camera.LensRadius(); r != 0 {
		t.Errorf("Expected pinhole camera, got lens radius %v", r)
	}
}

func TestRandomScene_Reproducible(t *testing.T) {
	a, err := NewRandomScene(7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRandomScene(7)
	if err != nil {
		t.Fatal(err)
	}

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("shape counts differ: %d vs %d", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) || sa.Radius != sb.Radius {
			t.Fatalf("sphere %d differs: %+v vs %+v", i, sa.Center, sb.Center)
		}
	}

	// Ground + three large spheres + at most a 22x22 grid
	if n := a.GetPrimitiveCount(); n < 4 || n > 4+22*22 {
		t.Errorf("unexpected shape count %d", n)
	}
}

func TestRandomScene_ClearingAroundMetalSphere(t *testing.T) {
	s, err := NewRandomScene(1)
	if err != nil {
		t.Fatal(err)
	}
	clearing := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("small sphere at %+v intrudes on the clearing", sphere.Center)
		}
	}
}

func TestNewScene_Validation(t *testing.T) {
	camera := geometry.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}

	if _, err := NewScene("bad-size", camera, nil, nil, SamplingConfig{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewScene("no-samples", camera, nil, nil, SamplingConfig{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for zero samples per pixel")
	}

	degenerate := camera
	degenerate.Up = core.NewVec3(0, 0, 1)
	_, err := NewScene("bad-camera", degenerate, nil, nil, DefaultSamplingConfig())
	if !errors.Is(err, geometry.ErrInvalidCamera) {
		t.Errorf("expected ErrInvalidCamera, got %v", err)
	}

	s, err := NewScene("empty", camera, nil, nil, DefaultSamplingConfig())
	if err != nil {
		t.Fatal(err)
	}
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("expected empty world, got %d shapes", s.GetPrimitiveCount())
	}
	if c := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); !c.Equals(core.Color{}) {
		t.Errorf("expected black background, got %v", c)
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := MergeSamplingConfig(base, SamplingConfig{Width: 64, MaxDepth: 5})
	if merged.Width != 64 || merged.MaxDepth != 5 {
		t.Errorf("overrides not applied: %+v", merged)
	}
	if merged.Height != base.Height || merged.SamplesPerPixel != base.SamplesPerPixel {
		t.Errorf("unset fields changed: %+v", merged)
	}
}

func TestGradientBackground(t *testing.T) {
	top := core.NewVec3(0, 0, 1)
	bottom := core.NewVec3(1, 0, 0)
	bg := GradientBackground(top, bottom)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"straight up", core.NewVec3(0, 5, 0), top},
		{"straight down", core.NewVec3(0, -2, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.5, 0, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bg(core.NewRay(core.Vec3{}, tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestOklchToRGB_InGamut(t *testing.T) {
	for h := 0.0; h < 360; h += 30 {
		c := oklchToRGB(0.65, 0.25, h)
		for i := 0; i < 3; i++ {
			if v := c.Get(i); v < 0 || v > 1 {
				t.Errorf("hue %v: component %d = %v outside [0,1]", h, i, v)
			}
		}
	}

	// Zero chroma is achromatic
	gray := oklchToRGB(0.5, 0, 0)
	if math.Abs(gray.X-gray.Y) > 1e-6 || math.Abs(gray.Y-gray.Z) > 1e-6 {
		t.Errorf("expected gray, got %v", gray)
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"three-spheres.json", "big_room.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 JSON scenes, got %d", len(scenes))
	}
	if scenes[0].DisplayName != "Big Room" || scenes[1].DisplayName != "Three Spheres" {
		t.Errorf("unexpected display names: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
	for _, s := range scenes {
		if s.Type != "file" {
			t.Errorf("scene %q has type %q", s.ID, s.Type)
		}
	}

	missing, err := ListSceneFiles(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no scenes, got %d", len(missing))
	}

	all, err := ListAllScenes(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(Names())+2 {
		t.Errorf("expected %d scenes, got %d", len(Names())+2, len(all))
	}
}
