package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-5

var (
	whiteLight = Light{
		Position: mgl32.Vec3{0, 10, 0},
		Ambient:  mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:  mgl32.Vec3{1, 1, 1},
		Specular: mgl32.Vec3{1, 1, 1},
	}
	grayMat = Material{
		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
		Specular:  mgl32.Vec3{0.8, 0.8, 0.8},
		Shininess: 32,
	}
)

// Back-facing surfaces receive no diffuse or specular light, only ambient.
func TestBackFacingGetsAmbientOnly(t *testing.T) {
	dirs := []mgl32.Vec3{
		{0, -1, 0},                      // directly opposed
		{1, 0, 0},                       // grazing, N·L = 0
		mgl32.Vec3{1, -1, 0}.Normalize(), // below the horizon
	}

	ambient := mgl32.Vec3{
		whiteLight.Ambient.X() * grayMat.Ambient.X(),
		whiteLight.Ambient.Y() * grayMat.Ambient.Y(),
		whiteLight.Ambient.Z() * grayMat.Ambient.Z(),
	}

	for _, l := range dirs {
		got := Shade(mgl32.Vec3{0, 1, 0}, l, mgl32.Vec3{0, 1, 0}, grayMat, whiteLight)
		for i := 0; i < 3; i++ {
			if math32.Abs(got[i]-ambient[i]) > tolerance {
				t.Errorf("light dir %v: got %v, want ambient only %v", l, got, ambient)
				break
			}
		}
	}
}

func TestHeadOnDiffuse(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}

	// Dim enough that the head-on sum stays inside the unit range.
	dim := Material{
		Ambient:   mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:   mgl32.Vec3{0.3, 0.3, 0.3},
		Specular:  mgl32.Vec3{0.2, 0.2, 0.2},
		Shininess: 32,
	}
	got := Shade(n, n, n, dim, whiteLight)

	// ambient 0.1*0.2 + diffuse 1*0.3*1 + specular 1*0.2*1^32
	want := float32(0.02 + 0.3 + 0.2)
	if math32.Abs(got.X()-want) > tolerance {
		t.Errorf("head-on shade = %v, want %f per channel", got, want)
	}

	// grayMat sums to 1.32 head-on, which clamps to white.
	hot := Shade(n, n, n, grayMat, whiteLight)
	if hot != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("overdriven head-on shade = %v, want clamped to (1,1,1)", hot)
	}
}

func TestDiffuseFalloffWithAngle(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	view := mgl32.Vec3{0, 0, 1} // viewer off to the side, no specular

	head := Shade(n, mgl32.Vec3{0, 1, 0}, view, grayMat, whiteLight)
	angled := Shade(n, mgl32.Vec3{1, 1, 0}.Normalize(), view, grayMat, whiteLight)

	if angled.X() >= head.X() {
		t.Errorf("expected angled light dimmer: head-on %v, angled %v", head, angled)
	}
}

func TestSpecularPeaksAtMirrorDirection(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	l := mgl32.Vec3{-1, 1, 0}.Normalize()
	mirror := mgl32.Vec3{1, 1, 0}.Normalize() // reflection of l about n

	atMirror := Shade(n, l, mirror, grayMat, whiteLight)
	offMirror := Shade(n, l, mgl32.Vec3{0, 1, 0}, grayMat, whiteLight)

	if atMirror.X() <= offMirror.X() {
		t.Errorf("expected specular peak at mirror direction: %v vs %v", atMirror, offMirror)
	}
}

func TestShadeClampsToUnitRange(t *testing.T) {
	hot := Light{
		Position: mgl32.Vec3{0, 1, 0},
		Ambient:  mgl32.Vec3{1, 1, 1},
		Diffuse:  mgl32.Vec3{1, 1, 1},
		Specular: mgl32.Vec3{1, 1, 1},
	}
	bright := Material{
		Ambient:   mgl32.Vec3{1, 1, 1},
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Specular:  mgl32.Vec3{1, 1, 1},
		Shininess: 1,
	}

	n := mgl32.Vec3{0, 1, 0}
	got := Shade(n, n, n, bright, hot)
	for i := 0; i < 3; i++ {
		if got[i] > 1 || got[i] < 0 {
			t.Fatalf("shade out of range: %v", got)
		}
	}
}

func TestShadeAtDerivesDirections(t *testing.T) {
	light := whiteLight
	light.Position = mgl32.Vec3{0, 5, 0}

	// Surface at origin facing up, eye straight above: same setup as a
	// head-on Shade call.
	got := ShadeAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 3, 0}, grayMat, light)
	want := Shade(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}, grayMat, light)

	for i := 0; i < 3; i++ {
		if math32.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("ShadeAt = %v, want %v", got, want)
			break
		}
	}
}

func TestAdjustShininessClamps(t *testing.T) {
	m := grayMat

	m = m.AdjustShininess(1000)
	if m.Shininess != MaxShininess {
		t.Errorf("shininess = %f, want clamped to %f", m.Shininess, float32(MaxShininess))
	}

	m = m.AdjustShininess(-1000)
	if m.Shininess != MinShininess {
		t.Errorf("shininess = %f, want clamped to %f", m.Shininess, float32(MinShininess))
	}

	m = m.AdjustShininess(15)
	if m.Shininess != MinShininess+15 {
		t.Errorf("shininess = %f, want %f", m.Shininess, float32(MinShininess+15))
	}
}
