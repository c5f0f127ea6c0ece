// Package rig follows a camera store and keeps a view and projection matrix
// in sync with it, for renderers that place a camera imperatively.
package rig

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/metrics"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// Lens holds the projection parameters.
type Lens struct {
	FovY   float32 // Vertical field of view, radians
	Aspect float32 // Width / height
	Near   float32
	Far    float32
}

// DefaultLens returns a 50° lens for a 16:9 viewport.
func DefaultLens() Lens {
	return Lens{
		FovY:   mgl32.DegToRad(50),
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    1000,
	}
}

// Rig is a camera placed by a store's state.
type Rig struct {
	lens Lens

	state camera.State
	eye   mgl32.Vec3
	view  mgl32.Mat4
	dirty bool
}

// New creates a rig with the given lens. It shows nothing useful until Attach
// or Apply is called.
func New(lens Lens) *Rig {
	return &Rig{
		lens: lens,
		view: mgl32.Ident4(),
	}
}

// Attach subscribes the rig to store and syncs it with the current state.
// The returned function detaches it and is safe to call more than once.
func (r *Rig) Attach(store *camera.Store) (detach func()) {
	unsubscribe := store.Subscribe(r.Apply)
	metrics.SubscriberAttached()

	// A freshly attached rig has no state yet; force one out of the store.
	store.ForceUpdate()

	detached := false
	return func() {
		if detached {
			return
		}
		detached = true
		unsubscribe()
		metrics.SubscriberDetached()
	}
}

// Apply moves the rig to s and marks it dirty.
func (r *Rig) Apply(s camera.State) {
	r.state = s
	r.eye = toVec3(Eye(s))
	r.view = mgl32.LookAtV(r.eye, toVec3(s.Origin), toVec3(Up(s)))
	r.dirty = true
}

// SetAspect updates the projection aspect ratio, for example on window resize.
func (r *Rig) SetAspect(aspect float32) {
	if aspect > 0 {
		r.lens.Aspect = aspect
		r.dirty = true
	}
}

// State returns the last applied state.
func (r *Rig) State() camera.State {
	return r.state
}

// EyePosition returns the world-space camera position.
func (r *Rig) EyePosition() mgl32.Vec3 {
	return r.eye
}

// View returns the view matrix.
func (r *Rig) View() mgl32.Mat4 {
	return r.view
}

// Projection returns the perspective projection matrix.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(r.lens.FovY, r.lens.Aspect, r.lens.Near, r.lens.Far)
}

// ViewProjection returns projection * view.
func (r *Rig) ViewProjection() mgl32.Mat4 {
	return r.Projection().Mul4(r.view)
}

// Dirty reports whether the rig moved since the last ClearDirty, meaning a
// new frame should be drawn.
func (r *Rig) Dirty() bool {
	return r.dirty
}

// ClearDirty acknowledges the last move.
func (r *Rig) ClearDirty() {
	r.dirty = false
}

// Eye returns the world-space camera position for s. The camera starts at
// +X·r, is tilted up by theta and then swung around +Y by phi, so theta = π/2
// looks straight down.
func Eye(s camera.State) math.Vec3 {
	c := s.Coords
	sinT, cosT := gomath.Sincos(c.Theta)
	sinP, cosP := gomath.Sincos(c.Phi)
	return s.Origin.Add(math.Vec3{
		X: c.R * cosT * cosP,
		Y: c.R * sinT,
		Z: -c.R * cosT * sinP,
	})
}

// Up returns the camera's up vector for s. It tilts with theta, so it stays
// well defined when looking straight down.
func Up(s camera.State) math.Vec3 {
	sinT, cosT := gomath.Sincos(s.Coords.Theta)
	sinP, cosP := gomath.Sincos(s.Coords.Phi)
	return math.Vec3{X: -sinT * cosP, Y: cosT, Z: sinT * sinP}
}

func toVec3(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
