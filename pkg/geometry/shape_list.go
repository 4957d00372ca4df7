package geometry

import (
	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ShapeList is a flat collection of shapes tested linearly
type ShapeList struct {
	Shapes []core.Shape
}

// NewShapeList creates a shape list holding the given shapes
func NewShapeList(shapes ...core.Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape core.Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Clear removes all shapes
func (l *ShapeList) Clear() {
	l.Shapes = nil
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest hit among all shapes.
// The upper bound shrinks to each accepted hit, so insertion order never matters.
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
