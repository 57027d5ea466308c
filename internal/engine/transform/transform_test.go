package transform

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-5

func matNearIdentity(t *testing.T, m mgl32.Mat4, context string) {
	t.Helper()
	id := mgl32.Ident4()
	for i := 0; i < 16; i++ {
		if math32.Abs(m[i]-id[i]) > tolerance {
			t.Fatalf("%s: element %d = %f, want %f", context, i, m[i], id[i])
		}
	}
}

func TestIdentityPose(t *testing.T) {
	p := NewPose()
	matNearIdentity(t, p.Matrix(), "identity pose matrix")
}

func TestPoseTranslation(t *testing.T) {
	p := NewPose()
	p.Position = mgl32.Vec3{1, 2, 3}

	out := p.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec4{1, 2, 3, 1}
	for i := 0; i < 4; i++ {
		if math32.Abs(out[i]-want[i]) > tolerance {
			t.Errorf("translated origin[%d] = %f, want %f", i, out[i], want[i])
		}
	}
}

func TestPoseYawRotatesAboutY(t *testing.T) {
	p := NewPose()
	p.Yaw = math32.Pi / 2

	out := p.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// +X rotated 90 degrees about +Y lands on -Z.
	want := mgl32.Vec4{0, 0, -1, 1}
	for i := 0; i < 4; i++ {
		if math32.Abs(out[i]-want[i]) > tolerance {
			t.Errorf("rotated point[%d] = %f, want %f", i, out[i], want[i])
		}
	}
}

// The view matrix must be the inverse of the camera's world transform:
// composing them has to give the identity.
func TestViewIsInverseOfCameraWorld(t *testing.T) {
	poses := []Pose{
		{Position: mgl32.Vec3{0, 0, 8}, Scale: mgl32.Vec3{1, 1, 1}},
		{Position: mgl32.Vec3{3, -2, 5}, Yaw: 0.7, Pitch: -0.3, Scale: mgl32.Vec3{1, 1, 1}},
		{Position: mgl32.Vec3{-10, 4, 1}, Yaw: 2.1, Pitch: 1.2, Roll: 0.4, Scale: mgl32.Vec3{1, 1, 1}},
	}

	for i, p := range poses {
		got := View(p).Mul4(p.Matrix())
		matNearIdentity(t, got, "view * world")
		_ = i
	}
}

func TestProjectionShape(t *testing.T) {
	m := Projection(45, 16.0/9.0, 0.1, 100)

	// Perspective matrices have 0 in the corner and -1 coupling w to -z.
	if m[15] != 0 {
		t.Errorf("projection [15] = %f, want 0", m[15])
	}
	if m[11] != -1 {
		t.Errorf("projection [11] = %f, want -1", m[11])
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	// Under pure rotation the normal matrix equals the rotation itself.
	model := mgl32.HomogRotate3DY(0.9)
	nm := NormalMatrix(model)
	rot := model.Mat3()

	for i := 0; i < 9; i++ {
		if math32.Abs(nm[i]-rot[i]) > tolerance {
			t.Fatalf("normal matrix element %d = %f, want %f", i, nm[i], rot[i])
		}
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A surface in the XZ plane scaled non-uniformly keeps its +Y normal
	// only when the inverse-transpose is used.
	model := mgl32.Scale3D(2, 1, 0.5)
	nm := NormalMatrix(model)

	n := nm.Mul3x1(mgl32.Vec3{0, 1, 0}).Normalize()
	if math32.Abs(n.Y()-1) > tolerance {
		t.Errorf("normal after non-uniform scale = %v, want (0,1,0)", n)
	}

	// A 45-degree slope normal must stay perpendicular to the scaled
	// surface tangent.
	tangent := model.Mat3().Mul3x1(mgl32.Vec3{1, 1, 0})
	slopeN := nm.Mul3x1(mgl32.Vec3{-1, 1, 0}).Normalize()
	if dot := tangent.Dot(slopeN); math32.Abs(dot) > 1e-4 {
		t.Errorf("transformed normal not perpendicular to tangent, dot = %f", dot)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(mgl32.Ident4()) {
		t.Error("identity should be finite")
	}

	bad := mgl32.Ident4()
	bad[5] = math32.NaN()
	if IsFinite(bad) {
		t.Error("matrix with NaN should not be finite")
	}

	bad2 := mgl32.Ident4()
	bad2[12] = math32.Inf(1)
	if IsFinite(bad2) {
		t.Error("matrix with Inf should not be finite")
	}
}
