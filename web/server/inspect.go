package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/material"
	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	SphereIndex  int                    `json:"sphereIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	Center       [3]float64             `json:"center"`
	Radius       float64                `json:"radius"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// materialProperties describes the fields that matter for the material's kind
func materialProperties(m material.Material) map[string]interface{} {
	properties := make(map[string]interface{})
	switch m.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
	}
	return properties
}

// inspectPixel casts an unjittered pinhole ray through the center of pixel (row, col)
// and reports the nearest sphere it hits
func inspectPixel(sceneObj *scene.Scene, width, height, row, col int) InspectResponse {
	config := sceneObj.Camera
	config.Aperture = 0
	config.AspectRatio = float64(width) / float64(height)
	camera := renderer.NewCamera(config)

	u := (float64(col) + 0.5) / float64(width)
	v := (float64(height-row-1) + 0.5) / float64(height)
	ray := camera.GetRay(u, v, core.NewSequenceSampler(0.5))

	response := InspectResponse{SphereIndex: -1}
	closest := math.MaxFloat64
	for i, sphere := range sceneObj.World.Objects() {
		hit, ok := sphere.Hit(ray, 0.001, closest)
		if !ok {
			continue
		}
		closest = hit.T
		response = inspectHit(i, sphere, ray, hit)
	}
	return response
}

func inspectHit(index int, sphere geometry.Sphere, ray core.Ray, hit material.HitRecord) InspectResponse {
	return InspectResponse{
		Hit:          true,
		SphereIndex:  index,
		MaterialType: hit.Material.Kind.String(),
		Center:       vecArray(sphere.Center),
		Radius:       sphere.Radius,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    ray.Direction.Dot(hit.Normal) < 0,
		Properties:   materialProperties(hit.Material),
	}
}

// handleInspect reports what lies under a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}
	query := r.URL.Query()
	col, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	row, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, row, col))
}
