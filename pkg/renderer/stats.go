package renderer

import (
	"time"

	"github.com/rs/zerolog"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int           // Image width
	Height       int           // Image height
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Tiles        int           // Number of tiles rendered
	Workers      int           // Number of workers used
	Duration     time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler
func (s RenderStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("width", s.Width).
		Int("height", s.Height).
		Int("pixels", s.TotalPixels).
		Int("samples", s.TotalSamples).
		Int("tiles", s.Tiles).
		Int("workers", s.Workers).
		Dur("duration", s.Duration)
}
