package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

func TestShapeList_EmptyNeverHits(t *testing.T) {
	list := NewShapeList()
	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should not report a hit")
	}
}

func TestShapeList_ClosestHitIsOrderIndependent(t *testing.T) {
	near := &stubMaterial{name: "near"}
	far := &stubMaterial{name: "far"}

	// Two overlapping spheres along the -Z axis
	nearSphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, near)
	farSphere := NewSphere(core.NewVec3(0, 0, -2.5), 1.0, far)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orderings := map[string][]core.Shape{
		"near first": {nearSphere, farSphere},
		"far first":  {farSphere, nearSphere},
	}

	for name, shapes := range orderings {
		t.Run(name, func(t *testing.T) {
			list := NewShapeList(shapes...)
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-1.0) > 1e-9 {
				t.Errorf("Expected closest t=1, got %f", hit.T)
			}
			if hit.Material != near {
				t.Errorf("Expected near material, got %v", hit.Material)
			}
		})
	}
}

func TestShapeList_RespectsRange(t *testing.T) {
	list := NewShapeList()
	list.Add(NewSphere(core.NewVec3(0, 0, -2), 0.5, nil))
	list.Add(NewSphere(core.NewVec3(0, 0, -6), 0.5, nil))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := list.Hit(ray, 3.0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on the farther sphere")
	}
	if math.Abs(hit.T-5.5) > 1e-9 {
		t.Errorf("Expected t=5.5, got %f", hit.T)
	}

	if _, isHit := list.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected miss with tMax before both spheres")
	}
}

func TestShapeList_NestedLists(t *testing.T) {
	inner := NewShapeList(NewSphere(core.NewVec3(0, 0, -3), 1.0, nil))
	outer := NewShapeList(inner, NewSphere(core.NewVec3(0, 0, -10), 1.0, nil))

	hit, isHit := outer.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit || math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected nested hit at t=2, got %v %v", hit, isHit)
	}

	if outer.Len() != 2 {
		t.Errorf("Expected 2 shapes, got %d", outer.Len())
	}
	outer.Clear()
	if outer.Len() != 0 {
		t.Errorf("Expected empty list after Clear, got %d", outer.Len())
	}
}
