package segment

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/orbitlab/shipview/internal/engine/mesh"
)

// ColoringMode selects how face colors are derived.
type ColoringMode int

const (
	// ColoringSolid paints every face with defaultColor.
	ColoringSolid ColoringMode = iota
	// ColoringRegion paints each face with its region's scheme color.
	ColoringRegion
	// ColoringAngle grades brightness by how much a face points at the
	// viewer.
	ColoringAngle
	// ColoringMixed combines region colors with angle brightness.
	ColoringMixed
	// ColoringAnimated pulses region colors over time.
	ColoringAnimated

	coloringModeCount
)

var coloringModeNames = [...]string{"solid", "region", "angle", "mixed", "animated"}

func (m ColoringMode) String() string {
	if m < 0 || int(m) >= len(coloringModeNames) {
		return fmt.Sprintf("coloring(%d)", int(m))
	}
	return coloringModeNames[m]
}

// Next cycles to the following coloring mode, wrapping after the last.
func (m ColoringMode) Next() ColoringMode {
	return (m + 1) % coloringModeCount
}

// ParseColoringMode maps a config string to a ColoringMode.
func ParseColoringMode(s string) (ColoringMode, error) {
	for i, name := range coloringModeNames {
		if s == name {
			return ColoringMode(i), nil
		}
	}
	return ColoringSolid, fmt.Errorf("unknown coloring mode %q", s)
}

// Scheme is a named palette of region colors.
type Scheme int

const (
	SchemeStarfleet Scheme = iota
	SchemeBattle
	SchemeExploration

	schemeCount
)

var schemeNames = [...]string{"starfleet", "battle", "exploration"}

// Next cycles starfleet -> battle -> exploration -> starfleet.
func (s Scheme) Next() Scheme {
	return (s + 1) % schemeCount
}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// ParseScheme maps a config string to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	for i, name := range schemeNames {
		if s == name {
			return Scheme(i), nil
		}
	}
	return SchemeStarfleet, fmt.Errorf("unknown color scheme %q", s)
}

// defaultColor is the hull blue-gray used for solid mode and as the
// fallback region color.
var defaultColor = mgl32.Vec3{0.7, 0.8, 0.9}

// palettes holds region colors per scheme, indexed [Scheme][Region].
var palettes = [...][regionCount]mgl32.Vec3{
	SchemeStarfleet: {
		RegionSaucer:      {0.7, 0.8, 0.9},
		RegionBridge:      {0.9, 0.9, 0.95},
		RegionEngineering: {0.6, 0.7, 0.8},
		RegionPylon:       {0.6, 0.75, 0.8},
		RegionNacelle:     {0.5, 0.6, 0.9},
	},
	SchemeBattle: {
		RegionSaucer:      {0.8, 0.3, 0.3},
		RegionBridge:      {1.0, 0.8, 0.0},
		RegionEngineering: {0.4, 0.4, 0.4},
		RegionPylon:       {0.3, 0.3, 0.3},
		RegionNacelle:     {0.9, 0.1, 0.1},
	},
	SchemeExploration: {
		RegionSaucer:      {0.2, 0.8, 0.3},
		RegionBridge:      {0.9, 0.9, 0.1},
		RegionEngineering: {0.1, 0.6, 0.7},
		RegionPylon:       {0.1, 0.5, 0.2},
		RegionNacelle:     {0.8, 0.2, 0.9},
	},
}

// RegionColor returns the scheme color for a region.
func RegionColor(s Scheme, r Region) mgl32.Vec3 {
	if s < 0 || int(s) >= len(palettes) || r < 0 || r >= regionCount {
		return defaultColor
	}
	return palettes[s][r]
}

// viewReference is the fixed direction used for angle-based brightness.
// Faces are graded in model space, so the reference stays constant
// while the model spins.
var viewReference = mgl32.Vec3{0, 0, 1}

// FaceColors computes a color per face for the given mode. labels must
// come from Classify on the same mesh. t is animation time in seconds;
// only the animated mode reads it, and the output is a pure function of
// its inputs.
func FaceColors(mode ColoringMode, scheme Scheme, m *mesh.Mesh, labels []Region, t float32) []mgl32.Vec3 {
	colors := make([]mgl32.Vec3, m.FaceCount())
	for i := range colors {
		switch mode {
		case ColoringSolid:
			colors[i] = defaultColor
		case ColoringRegion:
			colors[i] = RegionColor(scheme, labels[i])
		case ColoringAngle:
			b := 0.2 + 0.8*facing(m.FaceNormal(i))
			colors[i] = mgl32.Vec3{b, b, b}
		case ColoringMixed:
			b := 0.3 + 0.7*facing(m.FaceNormal(i))
			base := RegionColor(scheme, labels[i])
			colors[i] = clampColor(base.Mul(0.6 + 0.4*b))
		case ColoringAnimated:
			colors[i] = animatedColor(scheme, labels[i], t)
		default:
			colors[i] = defaultColor
		}
	}
	return colors
}

// facing is the clamped cosine between a face normal and the view
// reference.
func facing(n mgl32.Vec3) float32 {
	d := n.Dot(viewReference)
	if d < 0 {
		return 0
	}
	return d
}

// animatedColor pulses a region's scheme color. Each region gets its
// own pulse rate and hue drift so the hull reads as alive rather than
// uniformly blinking.
func animatedColor(scheme Scheme, r Region, t float32) mgl32.Vec3 {
	base := RegionColor(scheme, r)

	var pulse float32
	var shift mgl32.Vec3
	switch r {
	case RegionNacelle:
		pulse = 1.0 + 0.2*math32.Sin(t*4.0)
		shift = mgl32.Vec3{0.1, 0.0, 0.2}.Mul(math32.Sin(t * 2.0))
	case RegionBridge:
		pulse = 1.0 + 0.1*math32.Sin(t*1.5)
		shift = mgl32.Vec3{0.05, 0.05, 0.0}.Mul(math32.Sin(t * 0.8))
	case RegionEngineering:
		pulse = 1.0 + 0.15*math32.Sin(t*2.5)
		shift = mgl32.Vec3{0.0, 0.08, 0.08}.Mul(math32.Sin(t * 1.2))
	default:
		pulse = 1.0 + 0.05*math32.Sin(t)
	}

	return clampColor(base.Add(shift).Mul(pulse))
}

func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		if c[i] < 0 {
			c[i] = 0
		} else if c[i] > 1 {
			c[i] = 1
		}
	}
	return c
}
