// Package state holds the live toggle set mutated by discrete input
// events and read by the rest of the frame. Toggles are independent
// flags, not one combined state machine; every transition flips or
// cycles a single field, so firing the same event twice restores the
// original value.
package state

import (
	"fmt"

	"github.com/orbitlab/shipview/internal/config"
	"github.com/orbitlab/shipview/internal/engine/motion"
	"github.com/orbitlab/shipview/internal/engine/segment"
)

// RenderMode selects the draw primitive topology. It changes how
// triangles are rasterized, never what color they shade to.
type RenderMode int

const (
	RenderFilled RenderMode = iota
	RenderWireframe
	RenderPoints

	renderModeCount
)

var renderModeNames = [...]string{"filled", "wireframe", "points"}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(renderModeNames) {
		return fmt.Sprintf("render(%d)", int(m))
	}
	return renderModeNames[m]
}

// Next cycles filled -> wireframe -> points -> filled.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % renderModeCount
}

// ParseRenderMode maps a config string to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range renderModeNames {
		if s == name {
			return RenderMode(i), nil
		}
	}
	return RenderFilled, fmt.Errorf("unknown render mode %q", s)
}

// Toggles is the full flag set a frame reads. It is a plain value so
// tests and the frame loop can pass it around without a live window.
type Toggles struct {
	Lighting     bool
	Shadows      bool
	Ground       bool
	Paused       bool
	RenderMode   RenderMode
	MotionMode   motion.Mode
	ColoringMode segment.ColoringMode
	Scheme       segment.Scheme
}

// State owns the toggles and remembers the configured startup values
// for reset.
type State struct {
	current Toggles
	initial Toggles
}

// FromConfig builds the state machine from the documented startup
// defaults. Unrecognized mode strings are configuration errors.
func FromConfig(cfg config.StartupConfig) (*State, error) {
	renderMode, err := ParseRenderMode(cfg.RenderMode)
	if err != nil {
		return nil, err
	}
	motionMode, err := motion.ParseMode(cfg.MotionMode)
	if err != nil {
		return nil, err
	}
	coloringMode, err := segment.ParseColoringMode(cfg.ColoringMode)
	if err != nil {
		return nil, err
	}
	scheme, err := segment.ParseScheme(cfg.ColorScheme)
	if err != nil {
		return nil, err
	}

	t := Toggles{
		Lighting:     cfg.Lighting,
		Shadows:      cfg.Shadows,
		Ground:       cfg.Ground,
		RenderMode:   renderMode,
		MotionMode:   motionMode,
		ColoringMode: coloringMode,
		Scheme:       scheme,
	}
	return &State{current: t, initial: t}, nil
}

// Toggles returns the current flag set.
func (s *State) Toggles() Toggles {
	return s.current
}

// Reset restores every flag to its startup value.
func (s *State) Reset() {
	s.current = s.initial
}

// ToggleLighting flips the lighting flag and returns the new value.
func (s *State) ToggleLighting() bool {
	s.current.Lighting = !s.current.Lighting
	return s.current.Lighting
}

// ToggleShadows flips the shadow flag and returns the new value.
func (s *State) ToggleShadows() bool {
	s.current.Shadows = !s.current.Shadows
	return s.current.Shadows
}

// ToggleGround flips the ground-plane flag and returns the new value.
func (s *State) ToggleGround() bool {
	s.current.Ground = !s.current.Ground
	return s.current.Ground
}

// TogglePause flips the animation pause flag and returns the new value.
func (s *State) TogglePause() bool {
	s.current.Paused = !s.current.Paused
	return s.current.Paused
}

// CycleRenderMode advances to the next render mode and returns it.
func (s *State) CycleRenderMode() RenderMode {
	s.current.RenderMode = s.current.RenderMode.Next()
	return s.current.RenderMode
}

// CycleColoringMode advances to the next coloring mode and returns it.
func (s *State) CycleColoringMode() segment.ColoringMode {
	s.current.ColoringMode = s.current.ColoringMode.Next()
	return s.current.ColoringMode
}

// CycleScheme advances to the next color scheme and returns it.
func (s *State) CycleScheme() segment.Scheme {
	s.current.Scheme = s.current.Scheme.Next()
	return s.current.Scheme
}

// SetMotionMode switches the motion mode. An out-of-range mode is
// rejected and the prior value kept.
func (s *State) SetMotionMode(m motion.Mode) error {
	switch m {
	case motion.ModeOrbital, motion.ModeBobbing, motion.ModeFigureEight, motion.ModeNone:
		s.current.MotionMode = m
		return nil
	}
	return fmt.Errorf("invalid motion mode %d", int(m))
}
