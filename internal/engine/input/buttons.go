package input

// Buttons is a bitmask of held pointer buttons.
type Buttons uint32

const (
	ButtonPrimary   Buttons = 1 << iota // Usually left
	ButtonSecondary                     // Usually right
	ButtonTertiary                      // Usually middle
	ButtonBack
	ButtonForward
)

// Has reports whether every button in b2 is held.
func (b Buttons) Has(b2 Buttons) bool {
	return b&b2 == b2 && b2 != 0
}

// Array expands the first five bits into booleans:
// primary, secondary, tertiary, back, forward.
func (b Buttons) Array() [5]bool {
	return [5]bool{
		b&ButtonPrimary != 0,
		b&ButtonSecondary != 0,
		b&ButtonTertiary != 0,
		b&ButtonBack != 0,
		b&ButtonForward != 0,
	}
}

// ButtonRole is the single button an event is attributed to.
type ButtonRole int

const (
	RoleNone ButtonRole = iota
	RolePrimary
	RoleSecondary
	RoleTertiary
)

func (r ButtonRole) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleTertiary:
		return "tertiary"
	default:
		return "none"
	}
}

// Role picks one role when several buttons are held: primary wins over
// secondary, which wins over tertiary. Back and forward have no role.
func (b Buttons) Role() ButtonRole {
	switch {
	case b&ButtonPrimary != 0:
		return RolePrimary
	case b&ButtonSecondary != 0:
		return RoleSecondary
	case b&ButtonTertiary != 0:
		return RoleTertiary
	default:
		return RoleNone
	}
}
