package scene

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/material"
	"github.com/df07/rayito/pkg/renderer"
)

const smallSphereRadius = 0.2

// NewRandomScene creates the cover scene: a grid of small random spheres around
// three large ones. The layout is fully determined by seed.
func NewRandomScene(seed int64) *Scene {
	sampler := core.NewRandomSampler(seed)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallSphereRadius,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(core.NewVec3(
					sampler.Get1D()*sampler.Get1D(),
					sampler.Get1D()*sampler.Get1D(),
					sampler.Get1D()*sampler.Get1D(),
				))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+sampler.Get1D()),
					0.5*(1+sampler.Get1D()),
					0.5*(1+sampler.Get1D()),
				)
				mat = material.NewMetal(albedo, 0.5*sampler.Get1D())
			default:
				mat = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, smallSphereRadius, mat))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)))

	lookFrom := core.NewVec3(12, 1.5, 3)
	lookAt := core.NewVec3(0, 1, 0)

	return &Scene{
		Name:  "random",
		World: world,
		Camera: renderer.CameraConfig{
			LookFrom:      lookFrom,
			LookAt:        lookAt,
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   2,
			Aperture:      0.1,
			FocusDistance: lookFrom.Subtract(lookAt).Length(),
		},
	}
}
