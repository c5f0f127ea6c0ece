// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/controls"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Window   WindowConfig   `yaml:"window"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CameraConfig holds orbit bounds and the reset position.
// An unbounded max_r is written as .inf.
type CameraConfig struct {
	MinR          float64   `yaml:"min_r"`
	MaxR          float64   `yaml:"max_r"`
	MinTheta      float64   `yaml:"min_theta"`
	MaxTheta      float64   `yaml:"max_theta"`
	DefaultOrigin []float64 `yaml:"default_origin"` // x, y, z
	DefaultCoords []float64 `yaml:"default_coords"` // r, theta, phi
}

// ControlsConfig holds input sensitivities.
type ControlsConfig struct {
	RotateScale   float64 `yaml:"rotate_scale"`
	PanScale      float64 `yaml:"pan_scale"`
	WheelPanScale float64 `yaml:"wheel_pan_scale"`
	DollyScale    float64 `yaml:"dolly_scale"`
	TiltScale     float64 `yaml:"tilt_scale"`
	SpinScale     float64 `yaml:"spin_scale"`
	LinePixels    float64 `yaml:"line_pixels"` // Pixels per wheel notch
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	VSync  bool    `yaml:"vsync"`
	FovY   float64 `yaml:"fov_y"` // Degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the endpoint
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cam := camera.DefaultConfig()
	tuning := controls.DefaultTuning()
	origin := cam.DefaultOrigin.Array()
	coords := cam.DefaultCoords.Array()

	return &Config{
		Camera: CameraConfig{
			MinR:          cam.MinR,
			MaxR:          cam.MaxR,
			MinTheta:      cam.MinTheta,
			MaxTheta:      cam.MaxTheta,
			DefaultOrigin: origin[:],
			DefaultCoords: coords[:],
		},
		Controls: ControlsConfig{
			RotateScale:   tuning.RotateScale,
			PanScale:      tuning.PanScale,
			WheelPanScale: tuning.WheelPanScale,
			DollyScale:    tuning.DollyScale,
			TiltScale:     tuning.TiltScale,
			SpinScale:     tuning.SpinScale,
			LinePixels:    100,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FovY:   50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ToCamera converts the camera section into store bounds.
func (c CameraConfig) ToCamera() (camera.Config, error) {
	origin, ok := math.V3(c.DefaultOrigin)
	if !ok {
		return camera.Config{}, fmt.Errorf("%w: default_origin needs 3 values, got %d",
			camera.ErrInvalidConfig, len(c.DefaultOrigin))
	}
	coords, ok := math.V3(c.DefaultCoords)
	if !ok {
		return camera.Config{}, fmt.Errorf("%w: default_coords needs 3 values, got %d",
			camera.ErrInvalidConfig, len(c.DefaultCoords))
	}

	cfg := camera.Config{
		MinR:          c.MinR,
		MaxR:          c.MaxR,
		MinTheta:      c.MinTheta,
		MaxTheta:      c.MaxTheta,
		DefaultOrigin: origin,
		DefaultCoords: camera.Coords{R: coords.X, Theta: coords.Y, Phi: coords.Z},
	}
	if err := cfg.Validate(); err != nil {
		return camera.Config{}, err
	}
	return cfg, nil
}

// ToTuning converts the controls section into mapper sensitivities.
func (c ControlsConfig) ToTuning() (controls.Tuning, error) {
	t := controls.Tuning{
		RotateScale:   c.RotateScale,
		PanScale:      c.PanScale,
		WheelPanScale: c.WheelPanScale,
		DollyScale:    c.DollyScale,
		TiltScale:     c.TiltScale,
		SpinScale:     c.SpinScale,
	}
	if err := t.Validate(); err != nil {
		return controls.Tuning{}, err
	}
	return t, nil
}

// Validate checks every section that has constraints.
func (c *Config) Validate() error {
	if _, err := c.Camera.ToCamera(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if _, err := c.Controls.ToTuning(); err != nil {
		return err
	}
	if !(c.Controls.LinePixels > 0) {
		return fmt.Errorf("controls: line_pixels must be positive, got %v", c.Controls.LinePixels)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
