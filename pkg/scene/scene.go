package scene

import (
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *geometry.HittableList
	Camera renderer.CameraConfig // AspectRatio is filled in per render
}

// NewCamera builds the scene camera for a width x height image
func (s *Scene) NewCamera(width, height int) *renderer.Camera {
	config := s.Camera
	if width > 0 && height > 0 {
		config.AspectRatio = float64(width) / float64(height)
	}
	return renderer.NewCamera(config)
}

// ObjectCount returns the number of spheres in the scene
func (s *Scene) ObjectCount() int {
	return s.World.Len()
}
