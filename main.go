package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/rayito/pkg/config"
	"github.com/df07/rayito/pkg/loaders"
	"github.com/df07/rayito/pkg/raster"
	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

const (
	defaultVariant    = "trio"
	defaultConfigPath = "rayito.yaml"
)

var variants = []string{"blank", "gradient", "trio", "random"}

// options is the parsed command line
type options struct {
	cfg        *config.Config
	variant    string
	sceneFile  string
	configPath string
	help       bool
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts, err := parseArgs(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("invalid arguments")
	}
	if opts.help {
		return
	}

	level, _ := opts.cfg.Level()
	zerolog.SetGlobalLevel(level)

	if err := run(opts, time.Now(), log.Logger); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

// parseArgs resolves settings with precedence defaults < config file < explicit flags <
// positional width and height
func parseArgs(args []string, out io.Writer) (*options, error) {
	fs := flag.NewFlagSet("rayito", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		configPath = fs.String("config", defaultConfigPath, "path to a YAML render config")
		sceneFile  = fs.String("scene-file", "", "render a YAML scene file instead of a built-in variant")
		samples    = fs.Int("samples", 0, "samples per pixel")
		depth      = fs.Int("depth", 0, "maximum ray bounce depth")
		jobs       = fs.Int("jobs", 0, "number of horizontal bands")
		workers    = fs.Int("workers", 0, "parallel workers (0 = one per logical core)")
		seed       = fs.Int64("seed", 0, "base random seed (0 = time based)")
		output     = fs.String("o", "", "output file (default output/<variant>/render_<timestamp>.<format>)")
		format     = fs.String("format", "", "output format: ppm or png")
		logLevel   = fs.String("log-level", "", "log level: debug, info, warn, error")
		help       = fs.Bool("help", false, "show help information")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{sceneFile: *sceneFile, configPath: *configPath, help: *help}
	if opts.help {
		printUsage(fs, out)
		return opts, nil
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg := config.Default()
	if c, err := config.Load(*configPath); err == nil {
		cfg = c
	} else if explicit["config"] || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if explicit["samples"] {
		cfg.SamplesPerPixel = *samples
	}
	if explicit["depth"] {
		cfg.MaxDepth = *depth
	}
	if explicit["jobs"] {
		cfg.Jobs = *jobs
	}
	if explicit["workers"] {
		cfg.Workers = *workers
	}
	if explicit["seed"] {
		cfg.Seed = *seed
	}
	if explicit["o"] {
		cfg.Output = *output
	}
	if explicit["format"] {
		cfg.Format = *format
	}
	if explicit["log-level"] {
		cfg.LogLevel = *logLevel
	}

	positional := fs.Args()
	opts.variant = defaultVariant
	if len(positional) > 0 {
		opts.variant = positional[0]
	}
	if len(positional) > 1 {
		cfg.Width = parseDimension(positional[1], cfg.Width)
	}
	if len(positional) > 2 {
		cfg.Height = parseDimension(positional[2], cfg.Height)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts.cfg = cfg
	return opts, nil
}

// parseDimension returns the parsed positive size or fallback
func parseDimension(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func printUsage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintln(out, "rayito - tile-parallel path tracer")
	fmt.Fprintln(out, "Usage: rayito [options] [variant] [width] [height]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Variants:")
	fmt.Fprintln(out, "  blank    - all black image")
	fmt.Fprintln(out, "  gradient - red/green test gradient")
	fmt.Fprintln(out, "  trio     - three spheres with depth of field (default)")
	fmt.Fprintln(out, "  random   - grid of random spheres")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output is saved to output/<variant>/render_<timestamp>.<format> unless -o is set")
}

// run renders one image and writes it to disk
func run(opts *options, now time.Time, logger zerolog.Logger) error {
	cfg := opts.cfg

	img, err := renderVariant(opts, logger)
	if err != nil {
		return err
	}

	name := opts.variant
	if opts.sceneFile != "" {
		name = "file"
	}

	path := cfg.Output
	if path == "" {
		path = outputPath(name, cfg.Format, now)
	}
	if err := writeImage(path, img, cfg.Format); err != nil {
		return err
	}

	logger.Info().Str("path", path).Str("format", cfg.Format).Msg("Render saved")
	return nil
}

// renderVariant produces the image for the selected variant or scene file
func renderVariant(opts *options, logger zerolog.Logger) (*raster.Image, error) {
	cfg := opts.cfg

	var s *scene.Scene
	switch {
	case opts.sceneFile != "":
		loaded, err := loaders.LoadScene(opts.sceneFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	case opts.variant == "blank":
		return raster.Blank(cfg.Width, cfg.Height), nil
	case opts.variant == "gradient":
		return raster.Gradient(cfg.Width, cfg.Height), nil
	default:
		created, err := scene.Create(opts.variant, cfg.Seed)
		if errors.Is(err, scene.ErrUnknownScene) {
			logger.Warn().Str("variant", opts.variant).Strs("available", variants).Msg("Unknown variant, using trio")
			opts.variant = defaultVariant
			created, err = scene.Create(defaultVariant, cfg.Seed)
		}
		if err != nil {
			return nil, err
		}
		s = created
	}

	logger.Info().Str("scene", s.Name).Int("objects", s.ObjectCount()).Msg("Scene ready")

	rt := renderer.NewRaytracer(s.World, s.NewCamera(cfg.Width, cfg.Height), cfg.Width, cfg.Height,
		cfg.RenderConfig(), renderer.WithLogger(logger))
	img, _, err := rt.Render()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// outputPath returns output/<variant>/render_<timestamp>.<format>
func outputPath(variant, format string, now time.Time) string {
	return filepath.Join("output", variant, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format))
}

// writeImage encodes img to path, creating parent directories
func writeImage(path string, img *raster.Image, format string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := raster.Encode(file, img, format); err != nil {
		return err
	}
	return file.Close()
}
