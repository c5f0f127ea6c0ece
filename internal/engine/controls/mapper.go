package controls

import (
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/input"
)

// HandlePointer maps a pointer event onto an update. The held button decides:
// primary orbits, secondary pans, tertiary resets. Returns nil when no
// button with a role is held.
func HandlePointer(e input.Event, state camera.State, cfg camera.Config, t Tuning) camera.Update {
	c := state.Coords

	switch e.Buttons.Role() {
	case input.RolePrimary:
		return camera.CoordsUpdate{Coords: camera.Normalize(cfg, camera.Coords{
			R:     c.R,
			Theta: c.Theta + e.MovementY/t.RotateScale,
			Phi:   c.Phi - e.MovementX/t.RotateScale,
		})}

	case input.RoleSecondary:
		return camera.OriginUpdate{
			Origin: ApplyPan(state, PanIntent{DX: e.MovementX, DY: e.MovementY}, t.PanScale),
		}

	case input.RoleTertiary:
		return camera.BothUpdate{
			Origin: cfg.DefaultOrigin,
			Coords: cfg.DefaultCoords,
		}
	}

	return nil
}

// HandleWheel maps a wheel event onto an update.
//
// With alt held the wheel pans. Wheel deltas point the opposite way to a drag,
// so they are negated; ctrl swaps the axes so a single-axis wheel can pan both ways.
//
// Otherwise the wheel dollies (deltaY, faster when far away), tilts (deltaZ)
// and spins (deltaX). Ctrl swaps deltaY and deltaZ, since trackpad pinches
// arrive as ctrl+wheel on the axis a plain wheel uses for dolly.
func HandleWheel(e input.Event, state camera.State, cfg camera.Config, t Tuning) camera.Update {
	if e.AltKey {
		dx, dy := e.DeltaX, e.DeltaY
		if e.CtrlKey {
			dx, dy = dy, dx
		}
		return camera.OriginUpdate{
			Origin: ApplyPan(state, PanIntent{DX: -dx, DY: -dy}, t.WheelPanScale),
		}
	}

	dy, dz := e.DeltaY, e.DeltaZ
	if e.CtrlKey {
		dy, dz = dz, dy
	}

	c := state.Coords
	return camera.CoordsUpdate{Coords: camera.Normalize(cfg, camera.Coords{
		R:     c.R + dy/(t.DollyScale/c.R),
		Theta: c.Theta - dz/t.TiltScale,
		Phi:   c.Phi + e.DeltaX/t.SpinScale,
	})}
}
