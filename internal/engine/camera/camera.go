// Package camera provides the orbit camera used to inspect the model.
package camera

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/orbitlab/shipview/internal/config"
)

// Spring tuning for the smoothed orbit controls. Critically damped so
// the camera settles without overshoot.
const (
	springFrequency = 6.0
	springDamping   = 1.0

	// springTick is the fixed integration step. Update consumes frame
	// time in whole ticks, so convergence speed does not depend on the
	// draw rate.
	springTick = 1.0 / 240
)

// Orbit circles a center point on spherical coordinates. Input adjusts
// target yaw/pitch/distance; the rendered pose follows through springs
// so key taps and mouse flicks read as smooth motion.
type Orbit struct {
	Center mgl32.Vec3

	// Rendered pose, radians.
	yaw, pitch, distance float32

	// Where input wants the pose to be.
	targetYaw, targetPitch, targetDistance float32

	yawVel, pitchVel, distVel float32
	spring                    harmonica.Spring
	tickAcc                   float32

	cfg        config.CameraConfig
	pitchLimit float32 // radians
}

// New builds an orbit camera from configuration, starting at the
// configured distance looking at the origin.
func New(cfg config.CameraConfig) *Orbit {
	c := &Orbit{
		cfg:        cfg,
		pitchLimit: mgl32.DegToRad(cfg.PitchLimitDegrees),
		spring:     harmonica.NewSpring(springTick, springFrequency, springDamping),
	}
	c.Reset()
	return c
}

// Reset snaps the camera back to the configured start pose.
func (c *Orbit) Reset() {
	c.Center = mgl32.Vec3{}
	c.yaw, c.pitch, c.distance = 0, 0, c.cfg.Distance
	c.targetYaw, c.targetPitch, c.targetDistance = 0, 0, c.cfg.Distance
	c.yawVel, c.pitchVel, c.distVel = 0, 0, 0
	c.tickAcc = 0
}

// speed applies the turbo multiplier to a base rate.
func (c *Orbit) speed(base float32, turbo bool) float32 {
	if turbo {
		return base * c.cfg.TurboMultiplier
	}
	return base
}

// Orbit rotates the target yaw. dir is -1..1 from the key pair, dt in
// seconds.
func (c *Orbit) Orbit(dir, dt float32, turbo bool) {
	c.targetYaw += mgl32.DegToRad(c.speed(c.cfg.OrbitSpeed, turbo)) * dir * dt
}

// Tilt rotates the target pitch, clamped short of the poles.
func (c *Orbit) Tilt(dir, dt float32, turbo bool) {
	c.targetPitch += mgl32.DegToRad(c.speed(c.cfg.PitchSpeed, turbo)) * dir * dt
	c.targetPitch = clamp(c.targetPitch, -c.pitchLimit, c.pitchLimit)
}

// Zoom moves the target distance. Positive dir zooms in.
func (c *Orbit) Zoom(dir, dt float32, turbo bool) {
	c.targetDistance -= c.speed(c.cfg.ZoomSpeed, turbo) * dir * dt
	c.targetDistance = clamp(c.targetDistance, c.cfg.MinDistance, c.cfg.MaxDistance)
}

// Drag applies a mouse-drag delta in pixels to yaw and pitch.
func (c *Orbit) Drag(dx, dy float32) {
	c.targetYaw -= dx * c.cfg.MouseSensitivity
	c.targetPitch += dy * c.cfg.MouseSensitivity
	c.targetPitch = clamp(c.targetPitch, -c.pitchLimit, c.pitchLimit)
}

// Update advances the springs toward the targets by dt seconds,
// integrating in fixed ticks.
func (c *Orbit) Update(dt float32) {
	c.tickAcc += dt
	for c.tickAcc >= springTick {
		c.tickAcc -= springTick
		c.step()
	}
}

// step integrates each spring one tick.
func (c *Orbit) step() {
	y, yv := c.spring.Update(float64(c.yaw), float64(c.yawVel), float64(c.targetYaw))
	p, pv := c.spring.Update(float64(c.pitch), float64(c.pitchVel), float64(c.targetPitch))
	d, dv := c.spring.Update(float64(c.distance), float64(c.distVel), float64(c.targetDistance))

	c.yaw, c.yawVel = float32(y), float32(yv)
	c.pitch, c.pitchVel = float32(p), float32(pv)
	c.distance, c.distVel = float32(d), float32(dv)
}

// Position returns the camera position in world space.
func (c *Orbit) Position() mgl32.Vec3 {
	x := c.distance * math32.Cos(c.pitch) * math32.Sin(c.yaw)
	y := c.distance * math32.Sin(c.pitch)
	z := c.distance * math32.Cos(c.pitch) * math32.Cos(c.yaw)
	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the world-to-view transform, looking at Center.
func (c *Orbit) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// Distance reports the rendered (smoothed) orbit distance.
func (c *Orbit) Distance() float32 {
	return c.distance
}

// Yaw reports the rendered yaw in radians.
func (c *Orbit) Yaw() float32 {
	return c.yaw
}

// Pitch reports the rendered pitch in radians.
func (c *Orbit) Pitch() float32 {
	return c.pitch
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
