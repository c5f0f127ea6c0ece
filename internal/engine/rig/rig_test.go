package rig

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/pkg/math"
)

func TestEye(t *testing.T) {
	tests := []struct {
		name  string
		state camera.State
		want  math.Vec3
	}{
		{
			name:  "level on +x",
			state: camera.State{Coords: camera.Coords{R: 5}},
			want:  math.Vec3{X: 5},
		},
		{
			name:  "straight down",
			state: camera.State{Coords: camera.Coords{R: 5, Theta: gomath.Pi / 2}},
			want:  math.Vec3{Y: 5},
		},
		{
			name:  "quarter turn to -z",
			state: camera.State{Coords: camera.Coords{R: 2, Phi: gomath.Pi / 2}},
			want:  math.Vec3{Z: -2},
		},
		{
			name:  "offset by origin",
			state: camera.State{Origin: math.Vec3{X: 1, Y: 2, Z: 3}, Coords: camera.Coords{R: 1}},
			want:  math.Vec3{X: 2, Y: 2, Z: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eye(tt.state)
			if got.Sub(tt.want).Length() > 1e-9 {
				t.Errorf("expected eye %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEyeDistanceIsR(t *testing.T) {
	s := camera.State{
		Origin: math.Vec3{X: -3, Y: 1, Z: 8},
		Coords: camera.Coords{R: 12, Theta: 0.7, Phi: 4.1},
	}
	if d := Eye(s).Sub(s.Origin).Length(); gomath.Abs(d-12) > 1e-9 {
		t.Errorf("expected eye 12 units from origin, got %v", d)
	}
}

func newStore(t *testing.T) *camera.Store {
	t.Helper()
	cfg := camera.DefaultConfig()
	cfg.DefaultOrigin = math.Vec3{X: 1}
	s, err := camera.NewStore(cfg)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestAttachSyncsFirstFrame(t *testing.T) {
	store := newStore(t)
	r := New(DefaultLens())

	detach := r.Attach(store)
	defer detach()

	if r.State() != store.State() {
		t.Errorf("expected rig state %+v after attach, got %+v", store.State(), r.State())
	}
	if !r.Dirty() {
		t.Error("expected rig to request a frame after attach")
	}
}

func TestAttachFollowsCommits(t *testing.T) {
	store := newStore(t)
	r := New(DefaultLens())
	detach := r.Attach(store)
	r.ClearDirty()

	_ = store.Set(camera.CoordsUpdate{Coords: camera.Coords{R: 10, Theta: 0.3, Phi: 2}})
	if !r.Dirty() {
		t.Error("expected commit to mark rig dirty")
	}
	want := toVec3(Eye(store.State()))
	if !r.EyePosition().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected eye %v, got %v", want, r.EyePosition())
	}

	detach()
	detach()
	r.ClearDirty()
	_ = store.Set(camera.NoUpdate{})
	if r.Dirty() {
		t.Error("expected detached rig to ignore commits")
	}
}

func TestViewLooksAtOrigin(t *testing.T) {
	r := New(DefaultLens())
	r.Apply(camera.State{
		Origin: math.Vec3{X: 2, Y: 0, Z: -1},
		Coords: camera.Coords{R: 6, Theta: 0.4, Phi: 1.2},
	})

	// The origin lands on the view-space -Z axis, R units away.
	p := r.View().Mul4x1(mgl32.Vec4{2, 0, -1, 1})
	if gomath.Abs(float64(p.X())) > 1e-4 || gomath.Abs(float64(p.Y())) > 1e-4 {
		t.Errorf("expected origin centred in view, got %v", p)
	}
	if gomath.Abs(float64(p.Z())+6) > 1e-4 {
		t.Errorf("expected origin 6 units in front of the camera, got z %v", p.Z())
	}
}

func TestSetAspect(t *testing.T) {
	r := New(DefaultLens())
	before := r.Projection()

	r.SetAspect(1)
	if r.Projection() == before {
		t.Error("expected projection to change with aspect")
	}
	if !r.Dirty() {
		t.Error("expected aspect change to mark rig dirty")
	}

	r.ClearDirty()
	r.SetAspect(0)
	if r.Dirty() {
		t.Error("expected zero aspect to be ignored")
	}
}

func TestViewProjection(t *testing.T) {
	r := New(DefaultLens())
	r.Apply(camera.State{Coords: camera.Coords{R: 5, Theta: 0.5}})

	want := r.Projection().Mul4(r.View())
	if r.ViewProjection() != want {
		t.Error("expected ViewProjection to equal Projection * View")
	}
}

func TestViewStraightDownIsFinite(t *testing.T) {
	r := New(DefaultLens())
	r.Apply(camera.State{Coords: camera.Coords{R: 5, Theta: gomath.Pi / 2, Phi: 0.3}})

	for i, v := range r.View() {
		if gomath.IsNaN(float64(v)) || gomath.IsInf(float64(v), 0) {
			t.Fatalf("expected finite view matrix, got %v at %d", v, i)
		}
	}
}
