package geometry

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/material"
)

// HittableList is an ordered collection of spheres searched linearly for the nearest hit.
// It must not be modified while a render is reading it.
type HittableList struct {
	objects []Sphere
}

// NewHittableList creates a list holding the given spheres
func NewHittableList(spheres ...Sphere) *HittableList {
	return &HittableList{objects: append([]Sphere(nil), spheres...)}
}

// Add appends a sphere to the list
func (l *HittableList) Add(s Sphere) {
	l.objects = append(l.objects, s)
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the spheres in insertion order
func (l *HittableList) Objects() []Sphere {
	return l.objects
}

// Hit returns the closest intersection among all objects.
// Each accepted hit lowers the upper bound, so only strictly closer hits replace it.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range l.objects {
		if hit, ok := l.objects[i].Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
