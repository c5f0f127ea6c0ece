package camera

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/logger"
)

// Listener receives every committed state, after normalization.
type Listener func(State)

// ConfigListener receives every committed config.
type ConfigListener func(Config)

type subscription[T any] struct {
	fn     func(T)
	active bool
}

// Store owns one camera's state and config. It is not safe for concurrent
// use: all calls are expected from the goroutine that handles input.
type Store struct {
	config Config
	state  State

	listeners       []*subscription[State]
	configListeners []*subscription[Config]

	log *zap.Logger
}

// NewStore creates a store positioned at the config's default origin and coords.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Store{
		config: cfg,
		state:  cfg.InitialState(),
		log:    logger.Named("camera"),
	}
	s.log.Debug("store created",
		zap.Any("origin", s.state.Origin),
		zap.Any("coords", s.state.Coords),
	)
	return s, nil
}

// State returns the current committed state.
func (s *Store) State() State {
	return s.state
}

// Config returns the current config.
func (s *Store) Config() Config {
	return s.config
}

// Set merges u into the current state and notifies subscribers.
// NoUpdate notifies with the unchanged state. A nil update or one carrying
// non-finite values is rejected and the state is left untouched.
func (s *Store) Set(u Update) error {
	next, err := Merge(s.state, u, s.config)
	if err != nil {
		s.log.Warn("update rejected", zap.Error(err))
		return err
	}
	s.state = next

	if ce := s.log.Check(zap.DebugLevel, "commit"); ce != nil {
		origin, coords := next.Arrays()
		ce.Write(
			zap.String("update", fmt.Sprintf("%T", u)),
			zap.Float64s("origin", origin[:]),
			zap.Float64s("coords", coords[:]),
		)
	}

	notify(s.listeners, next)
	return nil
}

// ForceUpdate notifies subscribers with the current state without changing it.
// Newly attached consumers use it to sync their first frame.
func (s *Store) ForceUpdate() {
	// NoUpdate never fails.
	_ = s.Set(NoUpdate{})
}

// Reset moves the camera back to the config's default origin and coords.
func (s *Store) Reset() error {
	return s.Set(BothUpdate{
		Origin: s.config.DefaultOrigin,
		Coords: s.config.DefaultCoords,
	})
}

// UpdatePosition commits the update fn derives from the current state.
// A nil result commits nothing and notifies nobody.
func (s *Store) UpdatePosition(fn func(State) Update) error {
	u := fn(s.state)
	if u == nil {
		return nil
	}
	return s.Set(u)
}

// Subscribe registers fn for every committed state. Listeners run
// synchronously in subscription order. The returned function removes the
// listener; calling it more than once, or after the store is discarded, is safe.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		panic("camera: nil listener")
	}
	sub := &subscription[State]{fn: fn, active: true}
	s.listeners = append(s.listeners, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		s.listeners = remove(s.listeners, sub)
	}
}

// SubscribeConfig registers fn for every committed config change.
func (s *Store) SubscribeConfig(fn ConfigListener) (unsubscribe func()) {
	if fn == nil {
		panic("camera: nil config listener")
	}
	sub := &subscription[Config]{fn: fn, active: true}
	s.configListeners = append(s.configListeners, sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		s.configListeners = remove(s.configListeners, sub)
	}
}

// SetConfig replaces the config. The state is not touched: new bounds apply
// from the next commit on.
func (s *Store) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		s.log.Warn("config rejected", zap.Error(err))
		return err
	}
	s.config = cfg
	s.log.Debug("config updated",
		zap.Float64("min_r", cfg.MinR),
		zap.Float64("max_r", cfg.MaxR),
		zap.Float64("min_theta", cfg.MinTheta),
		zap.Float64("max_theta", cfg.MaxTheta),
	)
	notify(s.configListeners, cfg)
	return nil
}

// UpdateConfig applies a partial config change.
func (s *Store) UpdateConfig(u ConfigUpdate) error {
	return s.SetConfig(u.Apply(s.config))
}

// notify calls every listener active at call time. Listeners removed during
// the loop are skipped.
func notify[T any](subs []*subscription[T], v T) {
	snapshot := make([]*subscription[T], len(subs))
	copy(snapshot, subs)
	for _, sub := range snapshot {
		if sub.active {
			sub.fn(v)
		}
	}
}

func remove[T any](subs []*subscription[T], target *subscription[T]) []*subscription[T] {
	for i, sub := range subs {
		if sub == target {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
