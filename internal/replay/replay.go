// Package replay runs recorded input traces through the camera controls
// without a window, producing the state after every event.
package replay

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/controls"
	"github.com/Faultbox/orbitcam/internal/engine/input"
)

// Trace is a recorded sequence of input events.
type Trace struct {
	Name   string        `yaml:"name,omitempty"`
	Events []EventRecord `yaml:"events"`
}

// EventRecord is the YAML form of an input.Event.
type EventRecord struct {
	Type      string  `yaml:"type"`
	Buttons   uint32  `yaml:"buttons,omitempty"`
	MovementX float64 `yaml:"movement_x,omitempty"`
	MovementY float64 `yaml:"movement_y,omitempty"`
	DeltaX    float64 `yaml:"delta_x,omitempty"`
	DeltaY    float64 `yaml:"delta_y,omitempty"`
	DeltaZ    float64 `yaml:"delta_z,omitempty"`
	Alt       bool    `yaml:"alt,omitempty"`
	Ctrl      bool    `yaml:"ctrl,omitempty"`
}

// Record converts an event for storage.
func Record(e input.Event) EventRecord {
	return EventRecord{
		Type:      e.Type.String(),
		Buttons:   uint32(e.Buttons),
		MovementX: e.MovementX,
		MovementY: e.MovementY,
		DeltaX:    e.DeltaX,
		DeltaY:    e.DeltaY,
		DeltaZ:    e.DeltaZ,
		Alt:       e.AltKey,
		Ctrl:      e.CtrlKey,
	}
}

// Event converts the record back. Unknown type names are an error so typos in
// hand-written traces do not silently turn into ignored events.
func (r EventRecord) Event() (input.Event, error) {
	t := input.ParseEventType(r.Type)
	if t == input.EventUnknown {
		return input.Event{}, fmt.Errorf("unknown event type %q", r.Type)
	}
	return input.Event{
		Type:      t,
		Buttons:   input.Buttons(r.Buttons),
		MovementX: r.MovementX,
		MovementY: r.MovementY,
		DeltaX:    r.DeltaX,
		DeltaY:    r.DeltaY,
		DeltaZ:    r.DeltaZ,
		AltKey:    r.Alt,
		CtrlKey:   r.Ctrl,
	}, nil
}

// Append records e at the end of the trace.
func (t *Trace) Append(e input.Event) {
	t.Events = append(t.Events, Record(e))
}

// InputEvents converts every record.
func (t *Trace) InputEvents() ([]input.Event, error) {
	events := make([]input.Event, 0, len(t.Events))
	for i, r := range t.Events {
		e, err := r.Event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Parse decodes a YAML trace.
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads a YAML trace from path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	return t, nil
}

// SaveTo writes the trace as YAML.
func (t *Trace) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Step is the outcome of one replayed event.
type Step struct {
	Index     int
	Event     input.Event
	State     camera.State // State after the event
	Committed bool         // Whether the event notified listeners
}

// Run routes the trace's events through a fresh store built from cfg and
// returns one step per event.
func Run(t *Trace, cfg camera.Config, tuning controls.Tuning) ([]Step, error) {
	events, err := t.InputEvents()
	if err != nil {
		return nil, err
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	store, err := camera.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	router := controls.NewRouter(store, controls.WithTuning(tuning))

	notified := false
	unsubscribe := store.Subscribe(func(camera.State) { notified = true })
	defer unsubscribe()

	steps := make([]Step, 0, len(events))
	for i, e := range events {
		notified = false
		router.Route(e)
		steps = append(steps, Step{
			Index:     i,
			Event:     e,
			State:     store.State(),
			Committed: notified,
		})
	}
	return steps, nil
}

// StepRecord is the YAML form of a Step.
type StepRecord struct {
	Index     int        `yaml:"index"`
	Type      string     `yaml:"type"`
	Committed bool       `yaml:"committed"`
	Origin    [3]float64 `yaml:"origin,flow"`
	Coords    [3]float64 `yaml:"coords,flow"`
}

// Records converts steps for output.
func Records(steps []Step) []StepRecord {
	out := make([]StepRecord, len(steps))
	for i, s := range steps {
		origin, coords := s.State.Arrays()
		out[i] = StepRecord{
			Index:     s.Index,
			Type:      s.Event.Type.String(),
			Committed: s.Committed,
			Origin:    origin,
			Coords:    coords,
		}
	}
	return out
}
