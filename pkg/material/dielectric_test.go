package material

import (
	"math"
	"testing"

	"github.com/df07/rayito/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDielectric_AlwaysWhiteAndScatters(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(42)
	expected := core.NewVec3(1.0, 1.0, 1.0)

	directions := []core.Vec3{
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 0.1, 0),
		core.NewVec3(0.3, 0.9, -0.2),
	}
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), T: 1}

	for _, dir := range directions {
		for i := 0; i < 50; i++ {
			result, scattered := glass.Scatter(core.NewRay(core.NewVec3(0, 1, 0), dir), hit, sampler)
			require.True(t, scattered, "Dielectric should always scatter")
			assert.Equal(t, expected, result.Attenuation)
		}
	}
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	// Schlick at normal incidence for n=1.5 is 0.04
	tests := []struct {
		name     string
		sample   float64
		expected core.Vec3
	}{
		{"refracts straight through", 0.5, core.NewVec3(0, 0, -1)},
		{"reflects back", 0.01, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, core.NewSequenceSampler(tt.sample))
			dir := result.Scattered.Direction.Normalize()
			if dir.Subtract(tt.expected).Length() > 1e-10 {
				t.Errorf("Expected direction %v, got %v", tt.expected, dir)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving the glass at a shallow angle: the ray runs along the outward normal side
	rayDirection := core.NewVec3(1, 0.1, 0)
	ray := core.NewRay(core.NewVec3(-1, -0.1, 0), rayDirection)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	_, ok := Refract(rayDirection, hit.Normal.Negate(), 1.5)
	require.False(t, ok, "Test setup error: this angle should cause total internal reflection")

	// Every sample must reflect, even ones that would otherwise pick refraction
	for _, sample := range []float64{0.0, 0.5, 0.999} {
		result, scattered := glass.Scatter(ray, hit, core.NewSequenceSampler(sample))
		require.True(t, scattered)
		assert.Equal(t, Reflect(rayDirection, hit.Normal), result.Scattered.Direction)
	}
}

func TestDielectric_HollowShellNormal(t *testing.T) {
	// Negative radius spheres hand out inward normals; entering one behaves like exiting glass
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	inward := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, -1)}

	result, _ := glass.Scatter(ray, inward, core.NewSequenceSampler(0.5))
	dir := result.Scattered.Direction.Normalize()
	if dir.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-10 {
		t.Errorf("Expected straight refraction through shell, got %v", dir)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	incident := core.NewVec3(1, -1, 0) // 45 degrees
	normal := core.NewVec3(0, 1, 0)

	refracted, ok := Refract(incident, normal, 1.0/1.5)
	require.True(t, ok)

	refracted = refracted.Normalize()
	sinIn := math.Sin(math.Pi / 4)
	sinOut := math.Abs(refracted.X)
	assert.InDelta(t, sinIn/1.5, sinOut, 1e-9)
	assert.Less(t, refracted.Y, 0.0, "refracted ray should continue into the surface")
}

func TestSchlick(t *testing.T) {
	// Normal incidence reduces to r0
	assert.InDelta(t, 0.04, Schlick(1.0, 1.5), 1e-12)

	// Grazing incidence approaches total reflection
	assert.InDelta(t, 1.0, Schlick(0.0, 1.5), 1e-12)

	// Monotonic as the angle increases
	prev := Schlick(1.0, 1.5)
	for cos := 0.9; cos >= 0; cos -= 0.1 {
		r := Schlick(cos, 1.5)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestSchlick_Bounds(t *testing.T) {
	for _, n := range []float64{0.1, 0.5, 1.0, 1.33, 1.5, 2.4, 10, 100} {
		for i := 0; i <= 100; i++ {
			cos := float64(i) / 100
			r := Schlick(cos, n)
			assert.GreaterOrEqual(t, r, 0.0, "n=%v cos=%v", n, cos)
			assert.LessOrEqual(t, r, 1.0, "n=%v cos=%v", n, cos)
		}
	}
}
