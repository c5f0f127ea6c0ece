// Package camera holds the spherical orbit-camera state, its configuration
// bounds and the store that commits and broadcasts state changes.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/orbitcam/pkg/math"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid camera config")

// Coords are spherical coordinates around the origin.
type Coords struct {
	R     float64 // Distance to origin
	Theta float64 // Polar (up-down) angle
	Phi   float64 // Azimuthal (left-right) angle
}

// Array returns the coords as [r, theta, phi].
func (c Coords) Array() [3]float64 {
	return [3]float64{c.R, c.Theta, c.Phi}
}

// IsFinite reports whether no component is NaN or infinite.
func (c Coords) IsFinite() bool {
	return math.IsFinite(c.R) && math.IsFinite(c.Theta) && math.IsFinite(c.Phi)
}

// State is the committed camera position consumed by renderers.
type State struct {
	Origin math.Vec3
	Coords Coords
}

// Arrays returns the state in the {origin, coords} shape handed to render adapters.
func (s State) Arrays() (origin, coords [3]float64) {
	return s.Origin.Array(), s.Coords.Array()
}

// Config holds the bounds applied to coords and the reset position.
type Config struct {
	MinR     float64
	MaxR     float64
	MinTheta float64
	MaxTheta float64

	DefaultOrigin math.Vec3
	DefaultCoords Coords
}

// DefaultBounds returns the normalizer's default bounds with a zero reset position.
func DefaultBounds() Config {
	return Config{
		MinR:     0,
		MaxR:     gomath.Inf(1),
		MinTheta: 0,
		MaxTheta: gomath.Pi / 2,
	}
}

// DefaultConfig returns DefaultBounds with a reset position looking at the
// world origin from five units away. MinR is raised to 1: at r = 0 both dolly
// and pan scale by r and the camera can no longer move.
func DefaultConfig() Config {
	cfg := DefaultBounds()
	cfg.MinR = 1
	cfg.DefaultCoords = Coords{R: 5, Theta: gomath.Pi / 4, Phi: gomath.Pi / 8}
	return cfg
}

// InitialState returns the state a fresh store starts from.
func (c Config) InitialState() State {
	return State{
		Origin: c.DefaultOrigin,
		Coords: Normalize(c, c.DefaultCoords),
	}
}

// Validate checks the config for values no normalization can make sense of.
// Inverted bounds are allowed; Normalize saturates them to the minimum.
func (c Config) Validate() error {
	bounds := []struct {
		name string
		v    float64
	}{
		{"min_r", c.MinR},
		{"max_r", c.MaxR},
		{"min_theta", c.MinTheta},
		{"max_theta", c.MaxTheta},
	}
	for _, b := range bounds {
		if gomath.IsNaN(b.v) {
			return fmt.Errorf("%w: %s is NaN", ErrInvalidConfig, b.name)
		}
	}
	// Infinite lower bounds would clamp every commit to a non-finite coord.
	if gomath.IsInf(c.MinR, 0) || gomath.IsInf(c.MinTheta, 0) {
		return fmt.Errorf("%w: min_r %v and min_theta %v must be finite", ErrInvalidConfig, c.MinR, c.MinTheta)
	}
	if gomath.IsInf(c.MaxR, -1) || gomath.IsInf(c.MaxTheta, -1) {
		return fmt.Errorf("%w: max_r %v and max_theta %v must not be -Inf", ErrInvalidConfig, c.MaxR, c.MaxTheta)
	}
	if c.MinR < 0 {
		return fmt.Errorf("%w: min_r %v is negative", ErrInvalidConfig, c.MinR)
	}
	if !c.DefaultOrigin.IsFinite() {
		return fmt.Errorf("%w: default origin %v is not finite", ErrInvalidConfig, c.DefaultOrigin)
	}
	if !c.DefaultCoords.IsFinite() {
		return fmt.Errorf("%w: default coords %v are not finite", ErrInvalidConfig, c.DefaultCoords)
	}
	return nil
}

// ConfigUpdate is a partial config change. Nil fields keep their current value.
type ConfigUpdate struct {
	MinR          *float64
	MaxR          *float64
	MinTheta      *float64
	MaxTheta      *float64
	DefaultOrigin *math.Vec3
	DefaultCoords *Coords
}

// Apply returns c with every non-nil field of u replaced.
func (u ConfigUpdate) Apply(c Config) Config {
	if u.MinR != nil {
		c.MinR = *u.MinR
	}
	if u.MaxR != nil {
		c.MaxR = *u.MaxR
	}
	if u.MinTheta != nil {
		c.MinTheta = *u.MinTheta
	}
	if u.MaxTheta != nil {
		c.MaxTheta = *u.MaxTheta
	}
	if u.DefaultOrigin != nil {
		c.DefaultOrigin = *u.DefaultOrigin
	}
	if u.DefaultCoords != nil {
		c.DefaultCoords = *u.DefaultCoords
	}
	return c
}
