package controls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/input"
	"github.com/Faultbox/orbitcam/internal/logger"
	"github.com/Faultbox/orbitcam/internal/metrics"
)

// handler computes an update from an event, the current state and config.
type handler func(input.Event, camera.State, camera.Config, Tuning) camera.Update

// Router dispatches input events to the matching handler and commits the
// result to a camera store.
type Router struct {
	store  *camera.Store
	tuning Tuning
	log    *zap.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTuning overrides the default sensitivities.
func WithTuning(t Tuning) RouterOption {
	return func(r *Router) {
		r.tuning = t
	}
}

// NewRouter creates a router committing to store.
func NewRouter(store *camera.Store, opts ...RouterOption) *Router {
	r := &Router{
		store:  store,
		tuning: DefaultTuning(),
		log:    logger.Named("controls"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tuning returns the sensitivities in use.
func (r *Router) Tuning() Tuning {
	return r.tuning
}

// SetTuning replaces the sensitivities from the next event on.
func (r *Router) SetTuning(t Tuning) {
	r.tuning = t
}

// Route handles one event. Pointer and wheel events are mapped against the
// store's current state and config; any other kind is ignored.
func (r *Router) Route(e input.Event) {
	var h handler
	switch {
	case e.Type.IsPointer():
		h = HandlePointer
	case e.Type == input.EventWheel:
		h = HandleWheel
	default:
		metrics.ObserveEvent(e.Type.String(), metrics.ResultIgnored)
		return
	}

	u := h(e, r.store.State(), r.store.Config(), r.tuning)
	if u == nil {
		metrics.ObserveEvent(e.Type.String(), metrics.ResultNoop)
		return
	}

	if err := r.store.Set(u); err != nil {
		r.log.Warn("dropping event",
			zap.Stringer("type", e.Type),
			zap.Uint32("buttons", uint32(e.Buttons)),
			zap.Error(err),
		)
		metrics.ObserveEvent(e.Type.String(), metrics.ResultRejected)
		return
	}
	metrics.ObserveEvent(e.Type.String(), metrics.ResultCommit)
}

// RouteAll handles events in order.
func (r *Router) RouteAll(events []input.Event) {
	for _, e := range events {
		r.Route(e)
	}
}
