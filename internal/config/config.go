// Package config handles prism configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
)

// Camera controller modes.
const (
	ModeOrbit = "orbit"
	ModeFree  = "free"
)

// Config holds all settings.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
}

// CameraConfig holds view and controller settings.
type CameraConfig struct {
	FOV               float64 `yaml:"fov"` // Horizontal, in degrees
	Near              float64 `yaml:"near"`
	Far               float64 `yaml:"far"`
	Mode              string  `yaml:"mode"` // "orbit" or "free"
	Sensitivity       float64 `yaml:"sensitivity"`
	ScrollSensitivity float64 `yaml:"scroll_sensitivity"`
	MovementSpeed     float64 `yaml:"movement_speed"`
	FPS               int     `yaml:"fps"`
}

// LightConfig describes the directional light.
type LightConfig struct {
	Direction       [3]float64 `yaml:"direction"`
	Intensity       float64    `yaml:"intensity"`
	ShadowIntensity float64    `yaml:"shadow_intensity"`
}

// ModelConfig holds model loading settings.
type ModelConfig struct {
	Scale   float64 `yaml:"scale"`
	Shaded  bool    `yaml:"shaded"`
	Color   string  `yaml:"color"`   // "#rrggbb"; empty uses the loader default
	Texture string  `yaml:"texture"` // Optional image file
	Center  bool    `yaml:"center"`  // Recenter the model on its centroid
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			FOV:               70,
			Near:              1,
			Far:               20,
			Mode:              ModeOrbit,
			Sensitivity:       10,
			ScrollSensitivity: 0.5,
			MovementSpeed:     0.25,
			FPS:               30,
		},
		Light: LightConfig{
			Direction:       [3]float64{0, -0.5, 1},
			Intensity:       50,
			ShadowIntensity: 50,
		},
		Model: ModelConfig{
			Scale:  1,
			Shaded: true,
			Center: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov %v must be between 0 and 180", cam.FOV))
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera clip range [%v, %v] must satisfy 0 < near < far", cam.Near, cam.Far))
	}
	if cam.Mode != ModeOrbit && cam.Mode != ModeFree {
		errs = append(errs, fmt.Errorf("camera.mode %q must be %q or %q", cam.Mode, ModeOrbit, ModeFree))
	}
	if cam.FPS <= 0 {
		errs = append(errs, fmt.Errorf("camera.fps %d must be positive", cam.FPS))
	}
	if _, err := c.Model.RGBA(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Light returns the configured light, with intensities clamped to [0, 100].
func (l LightConfig) Light() lighting.Light {
	d := l.Direction
	return lighting.New(math3d.V3(d[0], d[1], d[2]), l.Intensity, l.ShadowIntensity)
}

// RGBA parses the model color. It returns nil when no color is configured.
func (m ModelConfig) RGBA() (*color.RGBA, error) {
	if m.Color == "" {
		return nil, nil
	}
	c, err := ParseColor(m.Color)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseColor parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
