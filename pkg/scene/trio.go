package scene

import (
	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/material"
	"github.com/df07/rayito/pkg/renderer"
)

// NewTrioScene creates three spheres on a large ground sphere: diffuse blue in the
// middle, fuzzy gold metal on the right and a hollow glass bubble on the left
func NewTrioScene() *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	glass := material.NewDielectric(1.5)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips the normals to make the glass hollow
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
	)

	return &Scene{
		Name:  "trio",
		World: world,
		Camera: renderer.CameraConfig{
			LookFrom:      lookFrom,
			LookAt:        lookAt,
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   2,
			Aperture:      2,
			FocusDistance: lookFrom.Subtract(lookAt).Length(),
		},
	}
}
