// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/cassini/internal/engine/mesh"
	"github.com/Faultbox/cassini/internal/engine/surface"
	"github.com/Faultbox/cassini/internal/engine/transform"
	"github.com/Faultbox/cassini/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Surface SurfaceConfig `yaml:"surface"`
	Domain  DomainConfig  `yaml:"domain"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   bool          `yaml:"watch"` // reload this file when it changes

	source string
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// SurfaceConfig holds the Cassini surface constants.
type SurfaceConfig struct {
	A     float64 `yaml:"a"`
	K     float64 `yaml:"k"`
	Scale float64 `yaml:"scale"`
}

// DomainConfig holds the (u, z) sampling grid.
type DomainConfig struct {
	StepsU int     `yaml:"steps_u"`
	StepsZ int     `yaml:"steps_z"`
	MinU   float64 `yaml:"min_u"`
	MaxU   float64 `yaml:"max_u"`
	MinZ   float64 `yaml:"min_z"`
	MaxZ   float64 `yaml:"max_z"`
}

// ViewConfig holds the fixed parts of the frame transform and the colors.
type ViewConfig struct {
	ProjVal       float32    `yaml:"proj_val"`
	RotationAxis  [3]float32 `yaml:"rotation_axis"`
	RotationAngle float32    `yaml:"rotation_angle"`
	Translation   [3]float32 `yaml:"translation"`
	Color         [4]float32 `yaml:"color"`
	ClearColor    [4]float32 `yaml:"clear_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the reference surface and view.
func Default() *Config {
	d := mesh.DefaultDomain()
	s := surface.DefaultCassini()
	c := transform.DefaultComposer()
	return &Config{
		Window: WindowConfig{
			Title:  "Cassini surface",
			Width:  800,
			Height: 800,
			VSync:  true,
		},
		Surface: SurfaceConfig{
			A:     s.A,
			K:     s.K,
			Scale: s.Scale,
		},
		Domain: DomainConfig{
			StepsU: d.StepsU,
			StepsZ: d.StepsZ,
			MinU:   d.MinU,
			MaxU:   d.MaxU,
			MinZ:   d.MinZ,
			MaxZ:   d.MaxZ,
		},
		View: ViewConfig{
			ProjVal:       c.ProjVal,
			RotationAxis:  c.RotationAxis.Array(),
			RotationAngle: c.RotationAngle,
			Translation:   c.Translation.Array(),
			Color:         [4]float32{1, 1, 0, 1},
			ClearColor:    [4]float32{0, 0, 0, 1},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Cassini returns the surface described by the config.
func (c *Config) Cassini() surface.Cassini {
	return surface.Cassini{A: c.Surface.A, K: c.Surface.K, Scale: c.Surface.Scale}
}

// MeshDomain returns the sampling grid described by the config.
func (c *Config) MeshDomain() mesh.Domain {
	return mesh.Domain{
		MinU:   c.Domain.MinU,
		MaxU:   c.Domain.MaxU,
		MinZ:   c.Domain.MinZ,
		MaxZ:   c.Domain.MaxZ,
		StepsU: c.Domain.StepsU,
		StepsZ: c.Domain.StepsZ,
	}
}

// Composer returns the frame composer described by the config.
func (c *Config) Composer() transform.Composer {
	return transform.Composer{
		ProjVal:       c.View.ProjVal,
		RotationAxis:  math.Vec3From(c.View.RotationAxis),
		RotationAngle: c.View.RotationAngle,
		Translation:   math.Vec3From(c.View.Translation),
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	if err := c.MeshDomain().Validate(); err != nil {
		return fmt.Errorf("%w: domain: %w", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if !(c.View.ProjVal > 0) || gomath.IsInf(float64(c.View.ProjVal), 0) {
		return fmt.Errorf("%w: view.proj_val must be positive, got %g", ErrInvalid, c.View.ProjVal)
	}
	for _, v := range []float64{c.Surface.A, c.Surface.K, c.Surface.Scale} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: surface constants must be finite", ErrInvalid)
		}
	}
	return nil
}
