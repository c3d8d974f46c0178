package renderer

// RenderConfig contains rendering configuration
type RenderConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Jobs            int   // Number of horizontal bands the image is split into
	NumWorkers      int   // Number of parallel workers (0 = one per logical core)
	Seed            int64 // Base seed for per-row samplers (0 = time based)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Jobs:            32,
		NumWorkers:      0,
		Seed:            0,
	}
}

// withDefaults fills zero or negative fields from DefaultRenderConfig
func (c RenderConfig) withDefaults() RenderConfig {
	defaults := DefaultRenderConfig()
	if c.SamplesPerPixel <= 0 {
		c.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaults.MaxDepth
	}
	if c.Jobs <= 0 {
		c.Jobs = defaults.Jobs
	}
	if c.NumWorkers < 0 {
		c.NumWorkers = 0
	}
	return c
}
