package loaders

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/df07/rayito/pkg/core"
	"github.com/df07/rayito/pkg/geometry"
	"github.com/df07/rayito/pkg/material"
	"github.com/df07/rayito/pkg/renderer"
	"github.com/df07/rayito/pkg/scene"
)

const (
	defaultVFov            = 20.0
	defaultRefractiveIndex = 1.5
)

// SceneFile is the on-disk layout of a YAML scene
type SceneFile struct {
	Name    string       `yaml:"name"`
	Camera  CameraFile   `yaml:"camera"`
	Spheres []SphereFile `yaml:"spheres"`
}

// CameraFile describes the camera. Zero focus_distance focuses on look_at.
type CameraFile struct {
	LookFrom      Vector  `yaml:"look_from"`
	LookAt        Vector  `yaml:"look_at"`
	Up            Vector  `yaml:"up,omitempty"`
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance,omitempty"`
}

// SphereFile describes a single sphere
type SphereFile struct {
	Center   Vector       `yaml:"center"`
	Radius   float64      `yaml:"radius"`
	Material MaterialFile `yaml:"material"`
}

// MaterialFile describes a surface. Type is one of lambertian, metal or dielectric.
type MaterialFile struct {
	Type            string  `yaml:"type"`
	Albedo          Color   `yaml:"albedo,omitempty"`
	Fuzz            float64 `yaml:"fuzz,omitempty"`
	RefractiveIndex float64 `yaml:"refractive_index,omitempty"`
}

// Vector is a YAML [x, y, z] triple
type Vector struct {
	core.Vec3
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var values []float64
	if err := node.Decode(&values); err != nil {
		return fmt.Errorf("line %d: expected [x, y, z]: %w", node.Line, err)
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(values))
	}
	v.Vec3 = core.NewVec3(values[0], values[1], values[2])
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (v Vector) MarshalYAML() (interface{}, error) {
	return []float64{v.X, v.Y, v.Z}, nil
}

// Color is either an [r, g, b] triple in [0, 1] or an SVG color name such as "gold"
type Color struct {
	core.Vec3
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(node.Value))]
		if !ok {
			return fmt.Errorf("line %d: unknown color name %q", node.Line, node.Value)
		}
		c.Vec3 = fromRGBA(rgba)
		return nil
	}

	var v Vector
	if err := v.UnmarshalYAML(node); err != nil {
		return fmt.Errorf("invalid color: %w", err)
	}
	c.Vec3 = v.Vec3
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (c Color) MarshalYAML() (interface{}, error) {
	return []float64{c.X, c.Y, c.Z}, nil
}

func fromRGBA(rgba color.RGBA) core.Vec3 {
	return core.NewVec3(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255)
}

// LoadScene reads a YAML scene file. The file name without extension is used when
// the file has no name of its own.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := ParseScene(data, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes YAML scene data
func ParseScene(data []byte, name string) (*scene.Scene, error) {
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if file.Name != "" {
		name = file.Name
	}

	cameraConfig, err := file.Camera.toConfig()
	if err != nil {
		return nil, err
	}

	world := geometry.NewHittableList()
	for i, sf := range file.Spheres {
		if sf.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must be non-zero", i)
		}
		mat, err := sf.Material.toMaterial()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(geometry.NewSphere(sf.Center.Vec3, sf.Radius, mat))
	}

	return &scene.Scene{
		Name:   name,
		World:  world,
		Camera: cameraConfig,
	}, nil
}

func (c CameraFile) toConfig() (renderer.CameraConfig, error) {
	if c.LookFrom.Equals(c.LookAt.Vec3) {
		return renderer.CameraConfig{}, fmt.Errorf("camera look_from and look_at must differ")
	}
	vfov := c.VFov
	if vfov == 0 {
		vfov = defaultVFov
	}
	if vfov < 0 || vfov >= 180 {
		return renderer.CameraConfig{}, fmt.Errorf("camera vfov %g out of range (0, 180)", vfov)
	}
	if c.Aperture < 0 {
		return renderer.CameraConfig{}, fmt.Errorf("camera aperture must not be negative")
	}

	return renderer.CameraConfig{
		LookFrom:      c.LookFrom.Vec3,
		LookAt:        c.LookAt.Vec3,
		Up:            c.Up.Vec3,
		VFov:          vfov,
		AspectRatio:   2,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}, nil
}

func (m MaterialFile) toMaterial() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(m.Albedo.Vec3), nil
	case "metal":
		return material.NewMetal(m.Albedo.Vec3, m.Fuzz), nil
	case "dielectric", "glass":
		ri := m.RefractiveIndex
		if ri == 0 {
			ri = defaultRefractiveIndex
		}
		return material.NewDielectric(ri), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// SaveScene writes a scene in the YAML layout read by LoadScene
func SaveScene(path string, s *scene.Scene) error {
	file := SceneFile{
		Name: s.Name,
		Camera: CameraFile{
			LookFrom:      Vector{s.Camera.LookFrom},
			LookAt:        Vector{s.Camera.LookAt},
			Up:            Vector{s.Camera.Up},
			VFov:          s.Camera.VFov,
			Aperture:      s.Camera.Aperture,
			FocusDistance: s.Camera.FocusDistance,
		},
	}
	for _, sphere := range s.World.Objects() {
		file.Spheres = append(file.Spheres, SphereFile{
			Center:   Vector{sphere.Center},
			Radius:   sphere.Radius,
			Material: materialFile(sphere.Material),
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}

func materialFile(m material.Material) MaterialFile {
	switch m.Kind {
	case material.KindMetal:
		return MaterialFile{Type: "metal", Albedo: Color{m.Albedo}, Fuzz: m.Fuzz}
	case material.KindDielectric:
		return MaterialFile{Type: "dielectric", RefractiveIndex: m.RefractiveIndex}
	default:
		return MaterialFile{Type: "lambertian", Albedo: Color{m.Albedo}}
	}
}
