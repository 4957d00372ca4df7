package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := &countingSampler{inner: core.NewRandomSampler(rand.New(rand.NewSource(42)))}

	// Ray hitting surface at 45 degrees, direction deliberately not normalized
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -3, -3))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if scatter.Scattered.Direction != expected {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}

	if sampler.draws != 0 {
		t.Errorf("Mirror reflection should not draw random numbers, drew %d", sampler.draws)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.Scattered.Origin != hit.Point {
		t.Errorf("Scattered origin should equal hit point, got %v", scatter.Scattered.Origin)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	metal := NewMetal(albedo, 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	directions := make([]core.Vec3, 10)
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction

		// Perturbation stays within the fuzz sphere around the mirror direction
		if directions[i].Subtract(core.NewVec3(0, 0, 1)).Length() >= metal.Fuzzness {
			t.Errorf("Direction %v strays outside fuzz radius", directions[i])
		}
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if directions[i].Subtract(directions[0]).Length() > 1e-10 {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))

	// Grazing angle ray that might scatter below surface with high fuzziness
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01).Normalize())
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	absorptionCount := 0
	scatterCount := 0

	for i := 0; i < 1000; i++ {
		_, didScatter := metal.Scatter(rayIn, hit, sampler)
		if didScatter {
			scatterCount++
		} else {
			absorptionCount++
		}
	}

	if absorptionCount == 0 {
		t.Error("Expected some rays to be absorbed with high fuzziness at grazing angle")
	}
	if scatterCount == 0 {
		t.Error("Expected some rays to be scattered")
	}
}

func TestReflect_Properties(t *testing.T) {
	tests := []struct {
		name string
		v, n core.Vec3
	}{
		{"head on", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)},
		{"oblique", core.NewVec3(1, -2, 0.5), core.NewVec3(0, 1, 0)},
		{"tilted normal", core.NewVec3(3, 1, -2), core.NewVec3(1, 1, 1).Normalize()},
		{"from behind", core.NewVec3(0.2, 0.7, 0.1), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reflect(tt.v, tt.n)
			if diff := r.Length() - tt.v.Length(); diff > 1e-12 || diff < -1e-12 {
				t.Errorf("Reflection changed length: |r|=%f |v|=%f", r.Length(), tt.v.Length())
			}
			if diff := r.Dot(tt.n) + tt.v.Dot(tt.n); diff > 1e-12 || diff < -1e-12 {
				t.Errorf("Expected dot(r,n) = -dot(v,n), got %f vs %f", r.Dot(tt.n), -tt.v.Dot(tt.n))
			}
		})
	}
}
