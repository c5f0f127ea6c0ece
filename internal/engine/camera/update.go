package camera

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orbitcam/pkg/math"
)

var (
	// ErrNilUpdate is returned when Set is called without an update.
	ErrNilUpdate = errors.New("nil camera update")

	// ErrInvalidState is returned when an update carries NaN or infinite values.
	ErrInvalidState = errors.New("invalid camera state")
)

// Update is a change to commit to a Store. The only implementations are
// NoUpdate, OriginUpdate, CoordsUpdate and BothUpdate.
type Update interface {
	update()
}

// NoUpdate changes nothing. Committing it still notifies subscribers.
type NoUpdate struct{}

// OriginUpdate moves the target point and keeps the coords.
type OriginUpdate struct {
	Origin math.Vec3
}

// CoordsUpdate moves the camera around the target and keeps the origin.
type CoordsUpdate struct {
	Coords Coords
}

// BothUpdate replaces origin and coords.
type BothUpdate struct {
	Origin math.Vec3
	Coords Coords
}

func (NoUpdate) update()     {}
func (OriginUpdate) update() {}
func (CoordsUpdate) update() {}
func (BothUpdate) update()   {}

// Merge applies u to prev. Coords are normalized against cfg, the origin is
// stored as given.
func Merge(prev State, u Update, cfg Config) (State, error) {
	next := prev
	switch u := u.(type) {
	case nil:
		return prev, ErrNilUpdate
	case NoUpdate:
		return prev, nil
	case OriginUpdate:
		next.Origin = u.Origin
	case CoordsUpdate:
		next.Coords = u.Coords
	case BothUpdate:
		next.Origin = u.Origin
		next.Coords = u.Coords
	default:
		panic(fmt.Sprintf("camera: unhandled update type %T", u))
	}

	if !next.Origin.IsFinite() {
		return prev, fmt.Errorf("%w: origin %v", ErrInvalidState, next.Origin)
	}
	if !next.Coords.IsFinite() {
		return prev, fmt.Errorf("%w: coords %v", ErrInvalidState, next.Coords)
	}

	next.Coords = Normalize(cfg, next.Coords)
	return next, nil
}
