package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/material"
)

func TestNewTrioScene(t *testing.T) {
	s := NewTrioScene()
	require.Equal(t, 5, s.ObjectCount())

	objects := s.World.Objects()
	assert.Equal(t, material.KindLambertian, objects[0].Material.Kind)
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.5), objects[0].Material.Albedo)
	assert.Equal(t, 100.0, objects[1].Radius)
	assert.Equal(t, material.KindMetal, objects[2].Material.Kind)
	assert.Equal(t, 0.3, objects[2].Material.Fuzz)
	assert.Equal(t, material.KindDielectric, objects[3].Material.Kind)
	assert.Equal(t, -0.45, objects[4].Radius, "inner glass sphere must be inverted")

	assert.Equal(t, 2.0, s.Camera.Aperture)
	assert.Equal(t, 20.0, s.Camera.VFov)
	assert.InDelta(t, math.Sqrt(9+9+9), s.Camera.FocusDistance, 1e-12)
}

func TestNewRandomScene(t *testing.T) {
	s := NewRandomScene(7)
	objects := s.World.Objects()

	// Ground, up to 22*22 small spheres, three large spheres
	require.Greater(t, len(objects), 4)
	require.LessOrEqual(t, len(objects), 1+22*22+3)

	assert.Equal(t, 1000.0, objects[0].Radius)
	n := len(objects)
	assert.Equal(t, core.NewVec3(0, 1, 0), objects[n-3].Center)
	assert.Equal(t, material.KindDielectric, objects[n-3].Material.Kind)
	assert.Equal(t, material.KindLambertian, objects[n-2].Material.Kind)
	assert.Equal(t, material.KindMetal, objects[n-1].Material.Kind)

	clearing := core.NewVec3(4, 0.2, 0)
	counts := map[material.Kind]int{}
	for _, o := range objects[1 : n-3] {
		assert.Equal(t, 0.2, o.Radius)
		assert.Equal(t, 0.2, o.Center.Y)
		assert.Greater(t, o.Center.Subtract(clearing).Length(), 0.9)
		counts[o.Material.Kind]++

		switch o.Material.Kind {
		case material.KindMetal:
			assert.GreaterOrEqual(t, o.Material.Albedo.X, 0.5)
			assert.LessOrEqual(t, o.Material.Fuzz, 0.5)
		case material.KindLambertian:
			assert.LessOrEqual(t, o.Material.Albedo.X, 1.0)
		}
	}
	assert.Greater(t, counts[material.KindLambertian], counts[material.KindMetal])
}

func TestNewRandomScene_Deterministic(t *testing.T) {
	a := NewRandomScene(99).World.Objects()
	b := NewRandomScene(99).World.Objects()
	assert.Equal(t, a, b)

	c := NewRandomScene(100).World.Objects()
	assert.NotEqual(t, a, c)
}

func TestSceneNewCamera(t *testing.T) {
	s := NewTrioScene()
	camera := s.NewCamera(400, 100)
	require.NotNil(t, camera)

	// The camera looks from LookFrom toward LookAt
	expected := s.Camera.LookAt.Subtract(s.Camera.LookFrom).Normalize()
	assert.InDelta(t, 0, camera.Forward().Subtract(expected).Length(), 1e-9)
	assert.Equal(t, 2.0, s.Camera.AspectRatio, "scene config must not be modified")
}

func TestCreate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name, 1)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Greater(t, s.ObjectCount(), 0)
		})
	}

	_, err := Create("cornell", 1)
	assert.True(t, errors.Is(err, ErrUnknownScene))
	assert.Contains(t, err.Error(), "cornell")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"random", "trio"}, Names())
}
