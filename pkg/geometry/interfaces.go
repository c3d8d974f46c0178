package geometry

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/material"
)

// Hittable is anything that can be tested for ray intersection
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
