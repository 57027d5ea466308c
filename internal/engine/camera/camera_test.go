package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/orbitlab/shipview/internal/config"
)

const tolerance = 1e-3

func newCamera() *Orbit {
	return New(config.Default().Camera)
}

// settle simulates enough frames for the pose to reach its target.
func settle(c *Orbit) {
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
	}
}

func TestStartPose(t *testing.T) {
	c := newCamera()

	pos := c.Position()
	want := mgl32.Vec3{0, 0, 8}
	if pos.Sub(want).Len() > tolerance {
		t.Errorf("start position = %v, want %v", pos, want)
	}
}

func TestOrbitConverges(t *testing.T) {
	c := newCamera()

	// Hold the yaw key at 100 deg/s for 0.9s: a quarter turn.
	for i := 0; i < 90; i++ {
		c.Orbit(1, 0.01, false)
	}
	settle(c)

	if math32.Abs(c.Yaw()-mgl32.DegToRad(90)) > tolerance {
		t.Errorf("yaw = %f rad, want %f", c.Yaw(), mgl32.DegToRad(90))
	}

	// A quarter turn moves the camera onto the +X axis.
	pos := c.Position()
	want := mgl32.Vec3{8, 0, 0}
	if pos.Sub(want).Len() > 0.01 {
		t.Errorf("position after quarter turn = %v, want %v", pos, want)
	}
}

func TestPitchClamp(t *testing.T) {
	c := newCamera()

	// Far more tilt input than the limit allows.
	for i := 0; i < 1000; i++ {
		c.Tilt(1, 0.1, true)
	}
	settle(c)

	limit := mgl32.DegToRad(89)
	if c.Pitch() > limit+tolerance {
		t.Errorf("pitch %f exceeded limit %f", c.Pitch(), limit)
	}
}

func TestZoomClamp(t *testing.T) {
	c := newCamera()

	for i := 0; i < 1000; i++ {
		c.Zoom(1, 0.1, true) // zoom in
	}
	settle(c)
	if c.Distance() < 2-tolerance {
		t.Errorf("distance %f below minimum", c.Distance())
	}

	for i := 0; i < 2000; i++ {
		c.Zoom(-1, 0.1, true) // zoom out
	}
	settle(c)
	if c.Distance() > 50+tolerance {
		t.Errorf("distance %f above maximum", c.Distance())
	}
}

func TestTurboScalesMovement(t *testing.T) {
	slow := newCamera()
	fast := newCamera()

	slow.Orbit(1, 0.1, false)
	fast.Orbit(1, 0.1, true)
	settle(slow)
	settle(fast)

	ratio := fast.Yaw() / slow.Yaw()
	if math32.Abs(ratio-3.0) > 0.01 {
		t.Errorf("turbo ratio = %f, want 3", ratio)
	}
}

func TestDragAdjustsYawAndPitch(t *testing.T) {
	c := newCamera()

	c.Drag(100, 50)
	settle(c)

	if c.Yaw() == 0 {
		t.Error("horizontal drag did not change yaw")
	}
	if c.Pitch() == 0 {
		t.Error("vertical drag did not change pitch")
	}

	// Pitch from drag also respects the clamp.
	c.Drag(0, 1e6)
	settle(c)
	if c.Pitch() > mgl32.DegToRad(89)+tolerance {
		t.Errorf("drag pushed pitch past limit: %f", c.Pitch())
	}
}

// The same wall-clock time smoothed at different frame rates must land
// on the same pose.
func TestUpdateRateIndependent(t *testing.T) {
	coarse := newCamera()
	fine := newCamera()
	coarse.Drag(200, 80)
	fine.Drag(200, 80)

	// Two seconds stepped at 30 Hz and at 120 Hz.
	for i := 0; i < 60; i++ {
		coarse.Update(1.0 / 30)
	}
	for i := 0; i < 240; i++ {
		fine.Update(1.0 / 120)
	}

	if math32.Abs(coarse.Yaw()-fine.Yaw()) > tolerance {
		t.Errorf("yaw diverged across frame rates: %f vs %f", coarse.Yaw(), fine.Yaw())
	}
	if math32.Abs(coarse.Pitch()-fine.Pitch()) > tolerance {
		t.Errorf("pitch diverged across frame rates: %f vs %f", coarse.Pitch(), fine.Pitch())
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := newCamera()
	c.Drag(37, 13)
	settle(c)

	view := c.ViewMatrix()

	// The center must land on the view-space -Z axis at orbit distance.
	p := view.Mul4x1(c.Center.Vec4(1))
	if math32.Abs(p.X()) > tolerance || math32.Abs(p.Y()) > tolerance {
		t.Errorf("center off the view axis: %v", p)
	}
	if math32.Abs(p.Z()+c.Distance()) > tolerance {
		t.Errorf("center depth = %f, want %f", p.Z(), -c.Distance())
	}
}

func TestResetRestoresPose(t *testing.T) {
	c := newCamera()
	c.Drag(500, 200)
	for i := 0; i < 100; i++ {
		c.Zoom(1, 0.1, true)
		c.Update(1.0 / 60)
	}

	c.Reset()

	pos := c.Position()
	want := mgl32.Vec3{0, 0, 8}
	if pos.Sub(want).Len() > tolerance {
		t.Errorf("position after reset = %v, want %v", pos, want)
	}
	if c.Distance() != 8 || c.Yaw() != 0 || c.Pitch() != 0 {
		t.Errorf("reset left pose behind: d=%f yaw=%f pitch=%f",
			c.Distance(), c.Yaw(), c.Pitch())
	}

	// Springs must not keep pulling toward the old target.
	settle(c)
	if c.Position().Sub(want).Len() > tolerance {
		t.Errorf("camera drifted after reset: %v", c.Position())
	}
}
