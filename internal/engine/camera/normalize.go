package camera

import "github.com/Faultbox/orbitcam/pkg/math"

// Normalize clamps r and theta to the configured bounds and wraps phi into [0, 2π).
// With inverted bounds (min > max) the component saturates to min.
func Normalize(cfg Config, c Coords) Coords {
	return Coords{
		R:     math.Clamp(c.R, cfg.MinR, cfg.MaxR),
		Theta: math.Clamp(c.Theta, cfg.MinTheta, cfg.MaxTheta),
		Phi:   math.EuclideanMod(c.Phi, math.TwoPi),
	}
}
