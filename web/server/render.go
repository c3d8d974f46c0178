package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/df07/rayito/pkg/raster"
	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Built-in scene name
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounce depth
	Jobs    int    `json:"jobs"`    // Number of bands
	Seed    int64  `json:"seed"`    // Base seed (0 = time based)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int   `json:"totalPixels"`
	TotalSamples int   `json:"totalSamples"`
	Tiles        int   `json:"tiles"`
	Workers      int   `json:"workers"`
	DurationMs   int64 `json:"durationMs"`
}

func statsFrom(s renderer.RenderStats) *Stats {
	return &Stats{
		TotalPixels:  s.TotalPixels,
		TotalSamples: s.TotalSamples,
		Tiles:        s.Tiles,
		Workers:      s.Workers,
		DurationMs:   s.Duration.Milliseconds(),
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "trio"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 50, 1, 1000); err != nil {
		return nil, err
	}
	if req.Jobs, err = parseIntParam(query, "jobs", 32, 1, 2000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 0); err != nil {
		return nil, err
	}
	return req, nil
}

// newRaytracer builds a raytracer for the requested scene
func newRaytracer(req *RenderRequest, logger zerolog.Logger, opts ...renderer.Option) (*renderer.Raytracer, error) {
	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}

	config := renderer.RenderConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Jobs:            req.Jobs,
		NumWorkers:      0, // Auto-detect
		Seed:            req.Seed,
	}
	opts = append([]renderer.Option{renderer.WithLogger(logger)}, opts...)
	camera := sceneObj.NewCamera(req.Width, req.Height)
	return renderer.NewRaytracer(sceneObj.World, camera, req.Width, req.Height, config, opts...), nil
}

// handleRender renders a full image and responds with PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	logger := s.logger.With().Str("scene", req.Scene).Logger()
	rt, err := newRaytracer(req, logger)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	img, _, err := rt.Render()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("render error: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *raster.Image) (string, error) {
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
