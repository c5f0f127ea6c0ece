package controls

import (
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/pkg/math"
)

// PanIntent is a screen-space pan gesture. DX grows to the right, DY grows downward.
type PanIntent struct {
	DX, DY float64
}

// ApplyPan returns the origin after panning by intent. The screen vector is
// rotated by -phi so a drag follows the screen axes whatever the azimuth,
// and scaled by r/scale so panning speeds up as the camera moves away.
func ApplyPan(state camera.State, intent PanIntent, scale float64) math.Vec3 {
	r := state.Coords.R
	s := math.Vec2{X: intent.DX, Y: intent.DY}.
		Rotate(-state.Coords.Phi).
		Scale(r / scale)

	o := state.Origin
	return math.Vec3{
		X: o.X - s.Y,
		Y: o.Y,
		Z: o.Z + s.X,
	}
}
