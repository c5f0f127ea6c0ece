package controls

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/input"
	"github.com/Faultbox/orbitcam/pkg/math"
)

const eps = 1e-9

func rotateConfig() camera.Config {
	cfg := camera.DefaultBounds()
	cfg.MinTheta = 0
	cfg.MaxTheta = 1.57
	return cfg
}

func TestHandlePointerRotate(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 1.0}}
	e := input.Event{Type: input.EventPointerMove, Buttons: input.ButtonPrimary, MovementX: 100, MovementY: 50}

	u := HandlePointer(e, state, rotateConfig(), DefaultTuning())

	cu, ok := u.(camera.CoordsUpdate)
	if !ok {
		t.Fatalf("expected CoordsUpdate, got %T", u)
	}
	want := camera.Coords{R: 5, Theta: 1.0, Phi: 0}
	if cu.Coords.R != want.R || !math.ApproxEqual(cu.Coords.Theta, want.Theta, eps) || !math.ApproxEqual(cu.Coords.Phi, want.Phi, eps) {
		t.Errorf("expected coords %+v, got %+v", want, cu.Coords)
	}
}

func TestHandlePointerRotateClampsTheta(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 1.5, Phi: 0.2}}
	e := input.Event{Buttons: input.ButtonPrimary, MovementY: 100}

	cu := HandlePointer(e, state, rotateConfig(), DefaultTuning()).(camera.CoordsUpdate)
	if cu.Coords.Theta != 1.57 {
		t.Errorf("expected theta clamped to 1.57, got %v", cu.Coords.Theta)
	}
}

func TestHandlePointerRotateWrapsPhi(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 0.1}}
	e := input.Event{Buttons: input.ButtonPrimary, MovementX: 20}

	cu := HandlePointer(e, state, rotateConfig(), DefaultTuning()).(camera.CoordsUpdate)
	if !math.ApproxEqual(cu.Coords.Phi, math.TwoPi-0.1, eps) {
		t.Errorf("expected phi wrapped to 2π-0.1, got %v", cu.Coords.Phi)
	}
}

func TestHandlePointerPanFollowsPhi(t *testing.T) {
	tests := []struct {
		name string
		phi  float64
		want math.Vec3
	}{
		{"phi zero pans along z", 0, math.Vec3{X: 0, Y: 0, Z: 0.05}},
		{"phi quarter turn pans along x", gomath.Pi / 2, math.Vec3{X: 0.05, Y: 0, Z: 0}},
		{"phi half turn pans along -z", gomath.Pi, math.Vec3{X: 0, Y: 0, Z: -0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: tt.phi}}
			e := input.Event{Buttons: input.ButtonSecondary, MovementX: 10}

			u := HandlePointer(e, state, rotateConfig(), DefaultTuning())
			ou, ok := u.(camera.OriginUpdate)
			if !ok {
				t.Fatalf("expected OriginUpdate, got %T", u)
			}
			if !math.ApproxEqual(ou.Origin.X, tt.want.X, eps) ||
				ou.Origin.Y != tt.want.Y ||
				!math.ApproxEqual(ou.Origin.Z, tt.want.Z, eps) {
				t.Errorf("expected origin %v, got %v", tt.want, ou.Origin)
			}
		})
	}
}

func TestHandlePointerPanScalesWithDistance(t *testing.T) {
	e := input.Event{Buttons: input.ButtonSecondary, MovementY: 10}
	near := HandlePointer(e, camera.State{Coords: camera.Coords{R: 5}}, rotateConfig(), DefaultTuning()).(camera.OriginUpdate)
	far := HandlePointer(e, camera.State{Coords: camera.Coords{R: 50}}, rotateConfig(), DefaultTuning()).(camera.OriginUpdate)

	if !math.ApproxEqual(far.Origin.X, near.Origin.X*10, eps) {
		t.Errorf("expected 10x pan at 10x distance, got near %v far %v", near.Origin, far.Origin)
	}
}

func TestHandlePointerPanKeepsOriginOffset(t *testing.T) {
	state := camera.State{
		Origin: math.Vec3{X: 1, Y: 2, Z: 3},
		Coords: camera.Coords{R: 10, Theta: 0.5, Phi: 0},
	}
	e := input.Event{Buttons: input.ButtonSecondary, MovementX: 100, MovementY: 100}

	ou := HandlePointer(e, state, rotateConfig(), DefaultTuning()).(camera.OriginUpdate)
	want := math.Vec3{X: 0, Y: 2, Z: 4}
	if !math.ApproxEqual(ou.Origin.X, want.X, eps) || ou.Origin.Y != want.Y || !math.ApproxEqual(ou.Origin.Z, want.Z, eps) {
		t.Errorf("expected origin %v, got %v", want, ou.Origin)
	}
}

func TestHandlePointerReset(t *testing.T) {
	cfg := rotateConfig()
	cfg.DefaultOrigin = math.Vec3{X: 1}
	cfg.DefaultCoords = camera.Coords{R: 7, Theta: 0.3, Phi: 2}

	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 1}}
	u := HandlePointer(input.Event{Buttons: input.ButtonTertiary}, state, cfg, DefaultTuning())

	want := camera.BothUpdate{Origin: cfg.DefaultOrigin, Coords: cfg.DefaultCoords}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}
}

func TestHandlePointerPriority(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 1}}
	cfg := rotateConfig()

	tests := []struct {
		name    string
		buttons input.Buttons
		want    string
	}{
		{"all three rotate", input.ButtonPrimary | input.ButtonSecondary | input.ButtonTertiary, "coords"},
		{"secondary and tertiary pan", input.ButtonSecondary | input.ButtonTertiary, "origin"},
		{"primary and tertiary rotate", input.ButtonPrimary | input.ButtonTertiary, "coords"},
		{"back button alone", input.ButtonBack, "nil"},
		{"nothing held", 0, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := HandlePointer(input.Event{Buttons: tt.buttons, MovementX: 3, MovementY: 4}, state, cfg, DefaultTuning())
			var got string
			switch u.(type) {
			case nil:
				got = "nil"
			case camera.CoordsUpdate:
				got = "coords"
			case camera.OriginUpdate:
				got = "origin"
			case camera.BothUpdate:
				got = "both"
			default:
				got = "other"
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s (%T)", tt.want, got, u)
			}
		})
	}
}

func TestHandleWheelDolly(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 10, Theta: 0.5, Phi: 1}}
	cu := HandleWheel(input.Event{Type: input.EventWheel, DeltaY: 50}, state, camera.DefaultBounds(), DefaultTuning()).(camera.CoordsUpdate)

	if !math.ApproxEqual(cu.Coords.R, 11, eps) {
		t.Errorf("expected r 11, got %v", cu.Coords.R)
	}
	if cu.Coords.Theta != 0.5 || cu.Coords.Phi != 1 {
		t.Errorf("expected theta and phi unchanged, got %+v", cu.Coords)
	}
}

func TestHandleWheelDollyClampsToBounds(t *testing.T) {
	cfg := camera.DefaultBounds()
	cfg.MinR = 2
	state := camera.State{Coords: camera.Coords{R: 3, Theta: 0.5}}

	cu := HandleWheel(input.Event{DeltaY: -5000}, state, cfg, DefaultTuning()).(camera.CoordsUpdate)
	if cu.Coords.R != 2 {
		t.Errorf("expected r clamped to 2, got %v", cu.Coords.R)
	}
}

func TestHandleWheelTiltAndSpin(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 10, Theta: 0.5, Phi: 1}}
	e := input.Event{DeltaX: 100, DeltaZ: 20}

	cu := HandleWheel(e, state, camera.DefaultBounds(), DefaultTuning()).(camera.CoordsUpdate)
	if !math.ApproxEqual(cu.Coords.Theta, 0.3, eps) {
		t.Errorf("expected theta 0.3, got %v", cu.Coords.Theta)
	}
	if !math.ApproxEqual(cu.Coords.Phi, 1.5, eps) {
		t.Errorf("expected phi 1.5, got %v", cu.Coords.Phi)
	}
	if cu.Coords.R != 10 {
		t.Errorf("expected r unchanged, got %v", cu.Coords.R)
	}
}

func TestHandleWheelCtrlSwapsDollyAndTilt(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 10, Theta: 0.5, Phi: 1}}
	e := input.Event{DeltaY: 20, DeltaZ: 50, CtrlKey: true}

	cu := HandleWheel(e, state, camera.DefaultBounds(), DefaultTuning()).(camera.CoordsUpdate)
	if !math.ApproxEqual(cu.Coords.R, 11, eps) {
		t.Errorf("expected deltaZ to dolly r to 11, got %v", cu.Coords.R)
	}
	if !math.ApproxEqual(cu.Coords.Theta, 0.3, eps) {
		t.Errorf("expected deltaY to tilt theta to 0.3, got %v", cu.Coords.Theta)
	}
}

func TestHandleWheelAltPans(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 0}}
	e := input.Event{DeltaX: 50, AltKey: true}

	u := HandleWheel(e, state, camera.DefaultBounds(), DefaultTuning())
	ou, ok := u.(camera.OriginUpdate)
	if !ok {
		t.Fatalf("expected OriginUpdate, got %T", u)
	}

	// Same as a secondary drag of -50px at the wheel pan scale.
	drag := ApplyPan(state, PanIntent{DX: -50}, DefaultTuning().WheelPanScale)
	if ou.Origin != drag {
		t.Errorf("expected origin %v, got %v", drag, ou.Origin)
	}
	if !math.ApproxEqual(ou.Origin.Z, -1, eps) {
		t.Errorf("expected z -1, got %v", ou.Origin.Z)
	}
}

func TestHandleWheelAltCtrlSwapsAxes(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 0}}

	plain := HandleWheel(input.Event{DeltaX: 50, AltKey: true}, state, camera.DefaultBounds(), DefaultTuning()).(camera.OriginUpdate)
	swapped := HandleWheel(input.Event{DeltaY: 50, AltKey: true, CtrlKey: true}, state, camera.DefaultBounds(), DefaultTuning()).(camera.OriginUpdate)

	if plain.Origin != swapped.Origin {
		t.Errorf("expected ctrl to route deltaY onto the x pan axis: %v vs %v", plain.Origin, swapped.Origin)
	}
}

func TestHandleWheelPropagatesNaN(t *testing.T) {
	state := camera.State{Coords: camera.Coords{R: 5, Theta: 0.5, Phi: 0}}
	cu := HandleWheel(input.Event{DeltaY: gomath.NaN()}, state, camera.DefaultBounds(), DefaultTuning()).(camera.CoordsUpdate)
	if !gomath.IsNaN(cu.Coords.R) {
		t.Errorf("expected NaN r, got %v", cu.Coords.R)
	}
}

func TestTuningValidate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Errorf("expected default tuning to be valid, got %v", err)
	}

	bad := DefaultTuning()
	bad.DollyScale = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected zero dolly scale to be rejected")
	}

	bad = DefaultTuning()
	bad.PanScale = gomath.NaN()
	if err := bad.Validate(); err == nil {
		t.Error("expected NaN pan scale to be rejected")
	}
}
