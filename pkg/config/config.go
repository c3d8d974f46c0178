package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/df07/rayito/pkg/renderer"
)

// Config holds the settings for a CLI render. Zero values fall back to Default().
type Config struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	MaxDepth        int    `yaml:"max_depth"`
	Jobs            int    `yaml:"jobs"`
	Workers         int    `yaml:"workers"` // 0 = one per logical core
	Seed            int64  `yaml:"seed"`    // 0 = time based
	Output          string `yaml:"output,omitempty"`
	Format          string `yaml:"format"`    // ppm | png
	LogLevel        string `yaml:"log_level"` // zerolog level name
}

// Default returns the built-in settings
func Default() *Config {
	rc := renderer.DefaultRenderConfig()
	return &Config{
		Width:           400,
		Height:          200,
		SamplesPerPixel: rc.SamplesPerPixel,
		MaxDepth:        rc.MaxDepth,
		Jobs:            rc.Jobs,
		Workers:         rc.NumWorkers,
		Seed:            rc.Seed,
		Format:          "ppm",
		LogLevel:        "info",
	}
}

// Load reads a YAML config file on top of Default()
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Save writes the config as YAML
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("image size %dx%d must not be negative", c.Width, c.Height)
	case c.SamplesPerPixel < 0:
		return fmt.Errorf("samples_per_pixel must not be negative")
	case c.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative")
	case c.Jobs < 0:
		return fmt.Errorf("jobs must not be negative")
	case c.Workers < 0:
		return fmt.Errorf("workers must not be negative")
	}
	if c.Format != "ppm" && c.Format != "png" {
		return fmt.Errorf("unsupported format %q (want ppm or png)", c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// RenderConfig maps the file settings onto the renderer
func (c *Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		Jobs:            c.Jobs,
		NumWorkers:      c.Workers,
		Seed:            c.Seed,
	}
}
