package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/material"
	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

func inspectScene() *scene.Scene {
	return &scene.Scene{
		Name: "inspect",
		World: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMetal(core.NewVec3(1, 0, 0), 0.2)),
			geometry.NewSphere(core.NewVec3(0, 0, -3), 0.5, material.NewDielectric(1.5)),
		),
		Camera: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 0),
			LookAt:   core.NewVec3(0, 0, -1),
			VFov:     90,
			Aperture: 5, // ignored for inspection
		},
	}
}

func TestInspectPixel_NearestSphere(t *testing.T) {
	result := inspectPixel(inspectScene(), 11, 11, 5, 5)

	require.True(t, result.Hit)
	assert.Equal(t, 1, result.SphereIndex)
	assert.Equal(t, "dielectric", result.MaterialType)
	assert.InDelta(t, 2.5, result.Distance, 1e-9)
	assert.InDelta(t, 1.0, result.Normal[2], 1e-9)
	assert.True(t, result.FrontFace)
	assert.Equal(t, 1.5, result.Properties["refractiveIndex"])
}

func TestInspectPixel_Miss(t *testing.T) {
	result := inspectPixel(inspectScene(), 11, 11, 0, 0)

	assert.False(t, result.Hit)
	assert.Equal(t, -1, result.SphereIndex)
}

func TestMaterialProperties(t *testing.T) {
	props := materialProperties(material.NewMetal(core.NewVec3(1, 0.5, 0), 0.25))
	assert.Equal(t, "#ff7f00", props["color"])
	assert.Equal(t, 0.25, props["fuzz"])

	props = materialProperties(material.NewLambertian(core.NewVec3(2, -1, 0)))
	assert.Equal(t, "#ff0000", props["color"], "colors are clamped")
}

func TestHandleInspect(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/inspect?scene=trio&width=40&height=20&x=20&y=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body InspectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Hit, "the trio camera looks straight at the center sphere")

	resp2, err := http.Get(ts.URL + "/api/inspect?width=40&height=20&x=40")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}
