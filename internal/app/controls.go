package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/orbitlab/shipview/internal/engine/input"
	"github.com/orbitlab/shipview/internal/engine/motion"
	"github.com/orbitlab/shipview/internal/engine/segment"
	"github.com/orbitlab/shipview/internal/logger"
)

// Discrete controls fire on key-press edges (input drops auto-repeat):
//
//	L lighting   X shadows    Z render mode   G ground
//	M coloring   C scheme     1-4 motion mode
//	Space pause  +/- speed    [ ] shininess   R reset  Esc quit
//
// Continuous controls are sampled while held: W/S zoom, A/D orbit,
// Q/E pitch, Shift turbo, left-drag look.
func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.renderer.Resize(e.Width, e.Height)

		case input.EventMouseDrag:
			a.camera.Drag(float32(e.DragX), float32(e.DragY))

		case input.EventKeyDown:
			a.handleKeyPress(e.Key)
		}
	}
}

func (a *App) handleKeyPress(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_L:
		on := a.toggles.ToggleLighting()
		logger.Info("lighting toggled", zap.Bool("enabled", on))

	case sdl.SCANCODE_X:
		on := a.toggles.ToggleShadows()
		logger.Info("shadows toggled", zap.Bool("enabled", on))

	case sdl.SCANCODE_G:
		on := a.toggles.ToggleGround()
		logger.Info("ground toggled", zap.Bool("visible", on))

	case sdl.SCANCODE_Z:
		mode := a.toggles.CycleRenderMode()
		logger.Info("render mode changed", zap.Stringer("mode", mode))

	case sdl.SCANCODE_M:
		mode := a.toggles.CycleColoringMode()
		a.colorsDirty = true
		logger.Info("coloring mode changed", zap.Stringer("mode", mode))

	case sdl.SCANCODE_C:
		scheme := a.toggles.CycleScheme()
		a.colorsDirty = true
		logger.Info("color scheme changed", zap.Stringer("scheme", scheme))

	case sdl.SCANCODE_1:
		a.setMotionMode(motion.ModeOrbital)
	case sdl.SCANCODE_2:
		a.setMotionMode(motion.ModeBobbing)
	case sdl.SCANCODE_3:
		a.setMotionMode(motion.ModeFigureEight)
	case sdl.SCANCODE_4:
		a.setMotionMode(motion.ModeNone)

	case sdl.SCANCODE_SPACE:
		paused := a.toggles.TogglePause()
		a.clock.SetPaused(paused)
		logger.Info("animation pause toggled", zap.Bool("paused", paused))

	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		speed := a.clock.AdjustSpeed(0.25)
		logger.Info("animation speed changed", zap.Float32("speed", speed))

	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		speed := a.clock.AdjustSpeed(-0.25)
		logger.Info("animation speed changed", zap.Float32("speed", speed))

	case sdl.SCANCODE_LEFTBRACKET:
		a.materials = a.materials.AdjustShininess(-8)
		logger.Info("shininess changed",
			zap.Float32("hull", a.materials[segment.RegionSaucer].Shininess))

	case sdl.SCANCODE_RIGHTBRACKET:
		a.materials = a.materials.AdjustShininess(8)
		logger.Info("shininess changed",
			zap.Float32("hull", a.materials[segment.RegionSaucer].Shininess))

	case sdl.SCANCODE_R:
		a.reset()
	}
}

func (a *App) setMotionMode(m motion.Mode) {
	if err := a.toggles.SetMotionMode(m); err != nil {
		logger.Warn("motion mode rejected", zap.Error(err))
		return
	}
	logger.Info("motion mode changed", zap.Stringer("mode", m))
}

// handleHeldKeys samples continuous camera controls, scaled by the
// frame delta so movement speed is draw-rate independent.
func (a *App) handleHeldKeys(dt float32) {
	turbo := a.input.IsKeyHeld(sdl.SCANCODE_LSHIFT) || a.input.IsKeyHeld(sdl.SCANCODE_RSHIFT)

	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		a.camera.Zoom(1, dt, turbo)
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) {
		a.camera.Zoom(-1, dt, turbo)
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		a.camera.Orbit(-1, dt, turbo)
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		a.camera.Orbit(1, dt, turbo)
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_Q) {
		a.camera.Tilt(1, dt, turbo)
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_E) {
		a.camera.Tilt(-1, dt, turbo)
	}
}
