package material

import (
	"math"

	"github.com/df07/rayito/pkg/core"
)

var white = core.NewVec3(1.0, 1.0, 1.0)

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric chooses between reflection and refraction using Schlick's approximation
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := rayIn.Direction
	reflected := Reflect(direction, hit.Normal)

	// The normal is geometric, so its sign against the ray tells us whether we are leaving the surface
	var outwardNormal core.Vec3
	var ratio, cosine float64
	if dn := direction.Dot(hit.Normal); dn > 0 {
		outwardNormal = hit.Normal.Negate()
		ratio = m.RefractiveIndex
		cosine = m.RefractiveIndex * dn / direction.Length()
	} else {
		outwardNormal = hit.Normal
		ratio = 1.0 / m.RefractiveIndex
		cosine = -dn / direction.Length()
	}

	scattered := core.NewRay(hit.Point, reflected)
	if refracted, ok := Refract(direction, outwardNormal, ratio); ok {
		if sampler.Get1D() >= Schlick(cosine, m.RefractiveIndex) {
			scattered = core.NewRay(hit.Point, refracted)
		}
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: white,
	}, true
}

// Refract bends v through a surface with normal n using Snell's law.
// It reports false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Schlick calculates the Fresnel reflectance using Schlick's approximation
func Schlick(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
