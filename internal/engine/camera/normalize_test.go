package camera

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/orbitcam/pkg/math"
)

func randomConfig(rng *rand.Rand) Config {
	minR := rng.Float64() * 10
	minTheta := rng.Float64() * gomath.Pi / 4
	return Config{
		MinR:     minR,
		MaxR:     minR + rng.Float64()*100,
		MinTheta: minTheta,
		MaxTheta: minTheta + rng.Float64()*gomath.Pi/2,
	}
}

func randomCoords(rng *rand.Rand) Coords {
	return Coords{
		R:     (rng.Float64() - 0.3) * 200,
		Theta: (rng.Float64() - 0.5) * 10,
		Phi:   (rng.Float64() - 0.5) * 100,
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		cfg := randomConfig(rng)
		c := randomCoords(rng)

		once := Normalize(cfg, c)
		twice := Normalize(cfg, once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %+v under %+v: %+v then %+v", c, cfg, once, twice)
		}
	}
}

func TestNormalizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		cfg := randomConfig(rng)
		got := Normalize(cfg, randomCoords(rng))

		if got.R < cfg.MinR || got.R > cfg.MaxR {
			t.Fatalf("r %v outside [%v, %v]", got.R, cfg.MinR, cfg.MaxR)
		}
		if got.Theta < cfg.MinTheta || got.Theta > cfg.MaxTheta {
			t.Fatalf("theta %v outside [%v, %v]", got.Theta, cfg.MinTheta, cfg.MaxTheta)
		}
		if got.Phi < 0 || got.Phi >= math.TwoPi {
			t.Fatalf("phi %v outside [0, 2π)", got.Phi)
		}
	}
}

func TestNormalizePhiPeriodic(t *testing.T) {
	cfg := DefaultBounds()
	for _, phi := range []float64{-7, -1, 0, 0.5, 3, 6.2, 12, 100} {
		a := Normalize(cfg, Coords{R: 1, Phi: phi}).Phi
		b := Normalize(cfg, Coords{R: 1, Phi: phi + math.TwoPi}).Phi
		// phi+2π rounds in float64, so the two results only agree approximately.
		if !math.ApproxEqual(a, b, 1e-9) {
			t.Errorf("phi %v: expected %v, got %v after adding 2π", phi, a, b)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := DefaultBounds()

	tests := []struct {
		name string
		in   Coords
		want Coords
	}{
		{"within bounds", Coords{5, 0.5, 1}, Coords{5, 0.5, 1}},
		{"negative r", Coords{-3, 0.5, 1}, Coords{0, 0.5, 1}},
		{"huge r stays", Coords{1e12, 0.5, 1}, Coords{1e12, 0.5, 1}},
		{"past top-down", Coords{5, 2, 1}, Coords{5, gomath.Pi / 2, 1}},
		{"below horizon", Coords{5, -0.2, 1}, Coords{5, 0, 1}},
		{"negative phi wraps", Coords{5, 0.5, -gomath.Pi / 2}, Coords{5, 0.5, 3 * gomath.Pi / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(cfg, tt.in)
			if got.R != tt.want.R || got.Theta != tt.want.Theta || !math.ApproxEqual(got.Phi, tt.want.Phi, 1e-12) {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeInvertedBounds(t *testing.T) {
	cfg := Config{MinR: 10, MaxR: 2, MinTheta: 1, MaxTheta: 0.5}

	for _, c := range []Coords{{0, 0, 0}, {5, 0.7, 0}, {50, 3, 0}} {
		got := Normalize(cfg, c)
		if got.R != 10 {
			t.Errorf("expected r to saturate to min_r 10, got %v", got.R)
		}
		if got.Theta != 1 {
			t.Errorf("expected theta to saturate to min_theta 1, got %v", got.Theta)
		}
	}
}

func TestNormalizePropagatesNaN(t *testing.T) {
	got := Normalize(DefaultBounds(), Coords{R: 1, Theta: 0.2, Phi: gomath.NaN()})
	if !gomath.IsNaN(got.Phi) {
		t.Errorf("expected NaN phi to propagate, got %v", got.Phi)
	}
}
