// Package controls maps pointer and wheel input onto orbit-camera updates.
package controls

import "fmt"

// Tuning holds the divisors that convert input deltas into camera deltas.
// Larger values mean slower movement.
type Tuning struct {
	RotateScale   float64 // Pixels per radian when orbiting with the primary button
	PanScale      float64 // Pixel-distance units per origin unit when panning with the secondary button
	WheelPanScale float64 // Same as PanScale for alt+wheel panning
	DollyScale    float64 // Wheel units per r at distance 1; dolly speed grows with r
	TiltScale     float64 // DeltaZ units per radian of theta
	SpinScale     float64 // DeltaX units per radian of phi
}

// DefaultTuning returns the stock sensitivities.
func DefaultTuning() Tuning {
	return Tuning{
		RotateScale:   100,
		PanScale:      1000,
		WheelPanScale: 250,
		DollyScale:    500,
		TiltScale:     100,
		SpinScale:     200,
	}
}

// Validate rejects non-positive scales, which would flip or freeze movement.
func (t Tuning) Validate() error {
	scales := []struct {
		name string
		v    float64
	}{
		{"rotate_scale", t.RotateScale},
		{"pan_scale", t.PanScale},
		{"wheel_pan_scale", t.WheelPanScale},
		{"dolly_scale", t.DollyScale},
		{"tilt_scale", t.TiltScale},
		{"spin_scale", t.SpinScale},
	}
	for _, s := range scales {
		if !(s.v > 0) {
			return fmt.Errorf("controls: %s must be positive, got %v", s.name, s.v)
		}
	}
	return nil
}
