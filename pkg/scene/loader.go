package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/geometry"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// Vec3Cfg is an [x, y, z] triple in JSON
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	Center      *Vec3Cfg `json:"center,omitempty"`
	LookAt      *Vec3Cfg `json:"lookAt,omitempty"`
	Up          *Vec3Cfg `json:"up,omitempty"`
	VFov        float64  `json:"vfov,omitempty"`
	AspectRatio float64  `json:"aspectRatio,omitempty"`
}

type MaterialCfg struct {
	Color    Vec3Cfg `json:"color"`
	Emission Vec3Cfg `json:"emission,omitempty"`
	BRDF     string  `json:"brdf"`
	// Fixes Oren-Nayar sigma; omitted means resample on every evaluation
	Roughness *float64 `json:"roughness,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

type PlaneCfg struct {
	Point    Vec3Cfg `json:"point"`
	Normal   Vec3Cfg `json:"normal"`
	Material string  `json:"material"`
}

// Config is the JSON scene description
type Config struct {
	Name       string                 `json:"name"`
	Background Vec3Cfg                `json:"background,omitempty"`
	Camera     CameraCfg              `json:"camera,omitempty"`
	Materials  map[string]MaterialCfg `json:"materials"`
	Spheres    []SphereCfg            `json:"spheres,omitempty"`
	Planes     []PlaneCfg             `json:"planes,omitempty"`
}

// LoadFile reads a JSON scene from disk
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()

	s, err := LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return s, nil
}

// LoadJSON decodes a scene description and builds the scene
func LoadJSON(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return cfg.Build()
}

// Build validates the configuration and constructs the scene
func (cfg Config) Build() (*Scene, error) {
	materials := make(map[string]*material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	lookup := func(name string) (*material.Material, error) {
		m, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", name)
		}
		return m, nil
	}

	s := &Scene{
		Name:       cfg.Name,
		Camera:     MergeCameraConfig(DefaultCameraConfig(), cfg.Camera.build()),
		Background: cfg.Background.vec(),
	}

	for i, sc := range cfg.Spheres {
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sc.Radius)
		}
		m, err := lookup(sc.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, geometry.NewSphere(sc.Center.vec(), sc.Radius, m))
	}

	for i, pc := range cfg.Planes {
		normal := pc.Normal.vec()
		if normal.Length() == 0 {
			return nil, fmt.Errorf("plane %d: normal must be non-zero", i)
		}
		m, err := lookup(pc.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, geometry.NewPlane(pc.Point.vec(), normal, m))
	}

	if len(s.Shapes) == 0 {
		return nil, fmt.Errorf("scene %q has no shapes", cfg.Name)
	}
	return s, nil
}

func (mc MaterialCfg) build() (*material.Material, error) {
	kind, err := material.ParseKind(mc.BRDF)
	if err != nil {
		return nil, err
	}

	color, emission := mc.Color.vec(), mc.Emission.vec()
	for _, c := range []float64{color.X, color.Y, color.Z, emission.X, emission.Y, emission.Z} {
		if c < 0 {
			return nil, fmt.Errorf("color components must be non-negative")
		}
	}

	var brdf material.BRDF
	switch {
	case mc.Roughness != nil && kind != material.KindOrenNayar:
		return nil, fmt.Errorf("roughness only applies to %v, not %v", material.KindOrenNayar, kind)
	case mc.Roughness != nil:
		brdf = material.NewOrenNayarWithRoughness(*mc.Roughness)
	default:
		if brdf, err = material.New(kind); err != nil {
			return nil, err
		}
	}

	return material.NewMaterial(color, emission, brdf), nil
}

func (cc CameraCfg) build() CameraConfig {
	var c CameraConfig
	if cc.Center != nil {
		c.Center = cc.Center.vec()
	}
	if cc.LookAt != nil {
		c.LookAt = cc.LookAt.vec()
	}
	if cc.Up != nil {
		c.Up = cc.Up.vec()
	}
	c.VFov = cc.VFov
	c.AspectRatio = cc.AspectRatio
	return c
}
