package renderer

import (
	"math"
	"testing"

	"github.com/df07/rayito/pkg/core"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, expected, actual core.Vec3, tolerance float64) {
	t.Helper()
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2,
		Aperture:      0,
		FocusDistance: 1,
	}
}

func TestCameraForward(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	assertVecNear(t, core.NewVec3(0, 0, -1), camera.Forward(), 1e-9)
}

func TestCameraGetRay_Pinhole(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewRandomSampler(1)

	// vfov 90 gives half height 1, aspect 2 gives half width 2
	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"bottom left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"top right", 1, 1, core.NewVec3(2, 1, -1)},
		{"top left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			assertVecNear(t, core.Vec3{}, ray.Origin, 1e-12)
			assertVecNear(t, tt.direction, ray.Direction, 1e-9)
		})
	}
}

func TestCameraGetRay_FocusDistanceDefault(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -4)
	config.FocusDistance = 0

	camera := NewCamera(config)
	ray := camera.GetRay(0.5, 0.5, core.NewRandomSampler(1))

	// The focal plane sits at the look-at point
	assertVecNear(t, core.NewVec3(0, 0, -4), ray.Direction, 1e-9)
}

func TestCameraGetRay_ZeroUpDefaultsToY(t *testing.T) {
	config := pinholeConfig()
	config.Up = core.Vec3{}

	withDefault := NewCamera(config)
	explicit := NewCamera(pinholeConfig())
	sampler := core.NewRandomSampler(3)

	a := withDefault.GetRay(0.2, 0.9, sampler)
	b := explicit.GetRay(0.2, 0.9, sampler)
	assertVecNear(t, b.Direction, a.Direction, 1e-12)
}

func TestCameraGetRay_DepthOfField(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 2
	config.FocusDistance = 5
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(42)

	focusPoint := core.NewVec3(0, 0, -5)
	originsDiffer := false
	var first core.Vec3

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		// Lens offsets stay within the aperture and on the lens plane
		assert.LessOrEqual(t, math.Hypot(ray.Origin.X, ray.Origin.Y), 1.0)
		assert.InDelta(t, 0, ray.Origin.Z, 1e-12)

		// Every ray through the viewport center converges on the focal plane
		assertVecNear(t, focusPoint, ray.At(1), 1e-9)

		if i == 0 {
			first = ray.Origin
		} else if !ray.Origin.Equals(first) {
			originsDiffer = true
		}
	}
	assert.True(t, originsDiffer, "expected the lens to jitter ray origins")
}

func TestCameraGetRay_ConsumesLensSamples(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewSequenceSampler(0.5, 0.5, 0.5, 0.9)

	// A zero aperture still draws one unit-sphere sample (three values)
	camera.GetRay(0.5, 0.5, sampler)
	assert.Equal(t, 0.9, sampler.Get1D())
}
