// Package sdlsource turns SDL2 events into input events for the camera controls.
package sdlsource

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitcam/internal/engine/input"
)

// DefaultLinePixels is how many pixels one wheel notch is worth, matching the
// line height browsers use when converting line-mode wheel deltas.
const DefaultLinePixels = 100

// Source polls SDL and collects the translated events of one frame.
type Source struct {
	// LinePixels scales SDL's integer wheel notches into pixel deltas.
	LinePixels float64

	events []input.Event
	held   input.Buttons

	resized       bool
	width, height int
}

// New creates a new SDL input source.
func New() *Source {
	return &Source{
		LinePixels: DefaultLinePixels,
		events:     make([]input.Event, 0, 32),
	}
}

// Update polls SDL events and converts them to input events.
// Returns true if the window was asked to close.
func (s *Source) Update() bool {
	s.events = s.events[:0]
	s.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				s.resized = true
				s.width, s.height = int(e.Data1), int(e.Data2)
			}
			if e.Event == sdl.WINDOWEVENT_LEAVE {
				s.events = append(s.events, input.Event{Type: input.EventPointerOut, Buttons: s.held})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return true
			}

		default:
			if ev, ok := s.Translate(event, sdl.GetModState()); ok {
				s.events = append(s.events, ev)
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (s *Source) Events() []input.Event {
	return s.events
}

// Resized reports the new window size if the window changed size during the last Update.
func (s *Source) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

// Translate converts one SDL mouse event. Non-mouse events return false.
func (s *Source) Translate(event sdl.Event, mod sdl.Keymod) (input.Event, bool) {
	alt := mod&sdl.KMOD_ALT != 0
	ctrl := mod&sdl.KMOD_CTRL != 0

	switch e := event.(type) {
	case *sdl.MouseMotionEvent:
		s.held = Buttons(e.State)
		return input.Event{
			Type:      input.EventPointerMove,
			Buttons:   s.held,
			MovementX: float64(e.XRel),
			MovementY: float64(e.YRel),
			AltKey:    alt,
			CtrlKey:   ctrl,
		}, true

	case *sdl.MouseButtonEvent:
		bit := Buttons(sdlMask(uint32(e.Button)))
		typ := input.EventPointerDown
		if e.State == sdl.PRESSED {
			s.held |= bit
		} else {
			s.held &^= bit
			typ = input.EventPointerUp
		}
		return input.Event{
			Type:    typ,
			Buttons: s.held,
			AltKey:  alt,
			CtrlKey: ctrl,
		}, true

	case *sdl.MouseWheelEvent:
		dx := float64(e.X) * s.LinePixels
		// SDL reports scrolling away from the user as positive Y.
		dy := -float64(e.Y) * s.LinePixels
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dx, dy = -dx, -dy
		}
		return input.Event{
			Type:    input.EventWheel,
			Buttons: s.held,
			DeltaX:  dx,
			DeltaY:  dy,
			AltKey:  alt,
			CtrlKey: ctrl,
		}, true
	}

	return input.Event{}, false
}

// Buttons converts an SDL button state mask (left, middle, right, x1, x2)
// into the pointer convention (primary, secondary, tertiary, back, forward).
func Buttons(state uint32) input.Buttons {
	var b input.Buttons
	if state&sdlMask(uint32(sdl.BUTTON_LEFT)) != 0 {
		b |= input.ButtonPrimary
	}
	if state&sdlMask(uint32(sdl.BUTTON_RIGHT)) != 0 {
		b |= input.ButtonSecondary
	}
	if state&sdlMask(uint32(sdl.BUTTON_MIDDLE)) != 0 {
		b |= input.ButtonTertiary
	}
	if state&sdlMask(uint32(sdl.BUTTON_X1)) != 0 {
		b |= input.ButtonBack
	}
	if state&sdlMask(uint32(sdl.BUTTON_X2)) != 0 {
		b |= input.ButtonForward
	}
	return b
}

// sdlMask mirrors the SDL_BUTTON macro.
func sdlMask(button uint32) uint32 {
	return 1 << (button - 1)
}
