package integrator

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray.
	// depth is the number of bounces already taken.
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3
}
