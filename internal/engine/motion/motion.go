// Package motion advances object and light poses as pure functions of
// elapsed time. Nothing here accumulates per-frame state: a mode, a
// parameter set and a time value always produce the same pose, so
// switching draw rates cannot change visual speed.
package motion

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the object's procedural motion.
type Mode int

const (
	ModeOrbital Mode = iota
	ModeBobbing
	ModeFigureEight
	ModeNone
)

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "orbital":
		return ModeOrbital, nil
	case "bobbing":
		return ModeBobbing, nil
	case "figure_eight":
		return ModeFigureEight, nil
	case "none":
		return ModeNone, nil
	}
	return ModeNone, fmt.Errorf("unknown motion mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeOrbital:
		return "orbital"
	case ModeBobbing:
		return "bobbing"
	case ModeFigureEight:
		return "figure_eight"
	case ModeNone:
		return "none"
	}
	return "unknown"
}

// Params holds the fixed per-mode constants.
type Params struct {
	OrbitRadius  float32
	OrbitSpeed   float32 // rad/s
	BobAmplitude float32
	BobSpeed     float32 // rad/s
	EightRadius  float32
	EightSpeed   float32 // rad/s
	BaseHeight   float32
}

// Offset returns the object's position offset and facing yaw for the
// given mode at elapsed time t (seconds).
func Offset(mode Mode, t float32, p Params) (mgl32.Vec3, float32) {
	switch mode {
	case ModeOrbital:
		a := p.OrbitSpeed * t
		pos := mgl32.Vec3{
			p.OrbitRadius * math32.Cos(a),
			p.BaseHeight,
			p.OrbitRadius * math32.Sin(a),
		}
		// Face along the path tangent: velocity is (-sin a, 0, cos a).
		yaw := math32.Atan2(-math32.Sin(a), math32.Cos(a))
		return pos, yaw

	case ModeBobbing:
		return mgl32.Vec3{0, p.BaseHeight + p.BobAmplitude*math32.Sin(p.BobSpeed*t), 0}, 0

	case ModeFigureEight:
		a := p.EightSpeed * t
		s := math32.Sin(a)
		return mgl32.Vec3{
			p.EightRadius * s,
			p.BaseHeight,
			p.EightRadius * s * math32.Cos(a),
		}, 0

	default: // ModeNone: the object holds its last manually-set pose.
		return mgl32.Vec3{}, 0
	}
}

// SpinYaw returns the auto-rotation angle about +Y at time t, in
// radians, for a spin rate given in degrees per second.
func SpinYaw(t, degPerSec float32) float32 {
	return mgl32.DegToRad(degPerSec) * t
}

// LightPath describes optional procedural motion for the light source.
// Enabled components compose: orbit replaces the base position, bobbing
// offsets height, and the figure-eight path offsets x/z.
type LightPath struct {
	Base mgl32.Vec3

	Orbit       bool
	OrbitRadius float32
	OrbitSpeed  float32 // deg/s
	OrbitCenter mgl32.Vec3

	Bob          bool
	BobAmplitude float32
	BobSpeed     float32 // Hz
	BobBaseY     float32

	Eight      bool
	EightScale float32
	EightSpeed float32

	// The light is kept at or above this height so the planar shadow
	// never degenerates from the light sinking through the ground.
	MinHeight float32
}

// Position returns the light position at elapsed time t.
func (lp LightPath) Position(t float32) mgl32.Vec3 {
	pos := lp.Base

	if lp.Orbit {
		a := mgl32.DegToRad(lp.OrbitSpeed) * t
		pos = mgl32.Vec3{
			lp.OrbitCenter.X() + lp.OrbitRadius*math32.Cos(a),
			lp.OrbitCenter.Y(),
			lp.OrbitCenter.Z() + lp.OrbitRadius*math32.Sin(a),
		}
	}

	if lp.Bob {
		if !lp.Orbit {
			pos[1] = lp.BobBaseY
		}
		pos[1] += lp.BobAmplitude * math32.Sin(2*math32.Pi*lp.BobSpeed*t)
	}

	if lp.Eight {
		a := lp.EightSpeed * t
		pos[0] += lp.EightScale * math32.Sin(a)
		pos[2] += lp.EightScale * math32.Sin(2*a) / 2
	}

	if pos.Y() < lp.MinHeight {
		pos[1] = lp.MinHeight
	}
	return pos
}
