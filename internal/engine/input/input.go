// Package input defines the normalized pointer and wheel events the camera
// controls consume, independent of the window system that produced them.
package input

// EventType identifies the kind of input event.
type EventType int

const (
	EventUnknown EventType = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel

	// Kinds a host may forward alongside the ones above. Controls ignore them.
	EventPointerOver
	EventPointerEnter
	EventPointerCancel
	EventPointerOut
	EventContextMenu
)

var eventNames = map[EventType]string{
	EventUnknown:       "unknown",
	EventPointerDown:   "pointerdown",
	EventPointerMove:   "pointermove",
	EventPointerUp:     "pointerup",
	EventWheel:         "wheel",
	EventPointerOver:   "pointerover",
	EventPointerEnter:  "pointerenter",
	EventPointerCancel: "pointercancel",
	EventPointerOut:    "pointerout",
	EventContextMenu:   "contextmenu",
}

var eventTypes = func() map[string]EventType {
	m := make(map[string]EventType, len(eventNames))
	for t, name := range eventNames {
		m[name] = t
	}
	return m
}()

// String returns the DOM-style event name.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return eventNames[EventUnknown]
}

// ParseEventType maps a DOM-style event name to its EventType.
// Unrecognized names map to EventUnknown.
func ParseEventType(name string) EventType {
	if t, ok := eventTypes[name]; ok {
		return t
	}
	return EventUnknown
}

// IsPointer reports whether t is one of the pointer kinds that drive the camera.
func (t EventType) IsPointer() bool {
	return t == EventPointerDown || t == EventPointerMove || t == EventPointerUp
}

// Event is a pointer or wheel event. Only the fields the camera controls read
// are carried; everything else a native event has is dropped by the source.
type Event struct {
	Type    EventType
	Buttons Buttons

	// Pointer movement since the previous event, in pixels.
	MovementX float64
	MovementY float64

	// Wheel deltas, DOM convention: positive DeltaY scrolls down.
	DeltaX float64
	DeltaY float64
	DeltaZ float64

	AltKey  bool // Alt held, or a trackpad two-finger swipe
	CtrlKey bool // Ctrl held, or a trackpad pinch
}
