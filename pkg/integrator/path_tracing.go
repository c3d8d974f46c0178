package integrator

import (
	"math"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
)

const (
	// DefaultMaxDepth is the bounce count at which paths are cut off
	DefaultMaxDepth = 50

	// shadowAcneEpsilon keeps scattered rays from re-hitting their own surface
	shadowAcneEpsilon = 0.001
)

var (
	black     = core.Vec3{}
	skyWhite  = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a hard depth cutoff
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, shadowAcneEpsilon, math.MaxFloat64)
	if !isHit {
		return Background(ray)
	}

	// Scatter runs before the depth check and consumes samples either way
	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter || depth >= pt.MaxDepth {
		return black
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, sampler, depth+1))
}

// Background returns the sky gradient: white at the horizon, blue at the zenith
func Background(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return skyWhite.Multiply(1.0 - t).Add(skyZenith.Multiply(t))
}
