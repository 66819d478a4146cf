package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an unordered collection of shapes that is itself a Shape.
// Hit is a linear scan; there is no acceleration structure.
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	l := &HittableList{Shapes: make([]Shape, 0, len(shapes))}
	l.Add(shapes...)
	return l
}

// Add appends shapes to the list
func (l *HittableList) Add(shapes ...Shape) {
	for _, shape := range shapes {
		if shape == nil {
			panic("geometry: cannot add a nil shape to a HittableList")
		}
		l.Shapes = append(l.Shapes, shape)
	}
}

// Clear removes every shape
func (l *HittableList) Clear() {
	l.Shapes = l.Shapes[:0]
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest hit among all shapes
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	_, hit, isHit := l.HitShape(ray, tMin, tMax)
	return hit, isHit
}

// HitShape is Hit that also returns the shape that was hit. Each shape is
// queried with tMax tightened to the closest hit found so far.
func (l *HittableList) HitShape(ray core.Ray, tMin, tMax float64) (Shape, *material.HitRecord, bool) {
	var (
		closestShape Shape
		closestHit   *material.HitRecord
	)
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
			closestShape = shape
		}
	}

	return closestShape, closestHit, closestHit != nil
}
