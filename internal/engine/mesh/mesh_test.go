package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-5

// Unit right triangle in the XY plane, normal facing +Z.
func triangleMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		nil, nil,
		[][3]uint32{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestNewValidatesFaces(t *testing.T) {
	_, err := New(
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		nil, nil,
		[][3]uint32{{0, 1, 5}},
	)
	if err == nil {
		t.Error("expected error for out-of-range face index")
	}

	if _, err := New(nil, nil, nil, nil); err == nil {
		t.Error("expected error for empty mesh")
	}

	_, err = New(
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]mgl32.Vec3{{0, 0, 1}}, // wrong count
		nil,
		[][3]uint32{{0, 1, 2}},
	)
	if err == nil {
		t.Error("expected error for mismatched normal count")
	}
}

func TestFaceNormalAndCentroid(t *testing.T) {
	m := triangleMesh(t)

	n := m.FaceNormal(0)
	if math32.Abs(n.Z()-1) > tolerance || math32.Abs(n.X()) > tolerance {
		t.Errorf("face normal = %v, want (0,0,1)", n)
	}

	c := m.FaceCentroid(0)
	want := mgl32.Vec3{1.0 / 3.0, 1.0 / 3.0, 0}
	if c.Sub(want).Len() > tolerance {
		t.Errorf("centroid = %v, want %v", c, want)
	}
}

func TestDerivedNormalsAreUnit(t *testing.T) {
	m := triangleMesh(t)
	if len(m.Normals) != 3 {
		t.Fatalf("expected 3 derived normals, got %d", len(m.Normals))
	}
	for i, n := range m.Normals {
		if math32.Abs(n.Len()-1) > tolerance {
			t.Errorf("normal %d not unit length: %v", i, n)
		}
	}
}

func TestBounds(t *testing.T) {
	m, err := New(
		[]mgl32.Vec3{{-1, 2, 0}, {3, -4, 1}, {0, 0, 5}},
		nil, nil,
		[][3]uint32{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if m.Min != (mgl32.Vec3{-1, -4, 0}) {
		t.Errorf("Min = %v, want (-1,-4,0)", m.Min)
	}
	if m.Max != (mgl32.Vec3{3, 2, 5}) {
		t.Errorf("Max = %v, want (3,2,5)", m.Max)
	}
}

func TestFittedCentersAndScales(t *testing.T) {
	// A mesh spanning 0..8 in x: fitting to 4 should halve and center it.
	m, err := New(
		[]mgl32.Vec3{{0, 0, 0}, {8, 0, 0}, {0, 2, 0}},
		nil, nil,
		[][3]uint32{{0, 1, 2}},
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	fitted := m.Fitted(4)

	size := fitted.Size()
	if math32.Abs(size.X()-4) > tolerance {
		t.Errorf("fitted max dimension = %f, want 4", size.X())
	}
	center := fitted.Center()
	if center.Len() > tolerance {
		t.Errorf("fitted center = %v, want origin", center)
	}

	// Original mesh untouched.
	if m.Max.X() != 8 {
		t.Error("Fitted mutated the source mesh")
	}
}

func TestLoadOBJ(t *testing.T) {
	objSrc := `
# test object: unit quad split by fan triangulation
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(objSrc), 0644); err != nil {
		t.Fatalf("write obj: %v", err)
	}

	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	if len(m.Positions) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(m.Positions))
	}
	if m.FaceCount() != 2 {
		t.Errorf("expected quad fan-triangulated into 2 faces, got %d", m.FaceCount())
	}
}

func TestLoadOBJSlashForms(t *testing.T) {
	objSrc := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
f -3//1 -2//1 -1//1
`
	path := filepath.Join(t.TempDir(), "forms.obj")
	if err := os.WriteFile(path, []byte(objSrc), 0644); err != nil {
		t.Fatalf("write obj: %v", err)
	}

	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Errorf("expected 2 faces, got %d", m.FaceCount())
	}
	// Both faces reference the same corners.
	if m.Faces[0] != m.Faces[1] {
		t.Errorf("relative indices resolved to %v, want %v", m.Faces[1], m.Faces[0])
	}
}

func TestLoadOBJRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"bad coordinate":    "v 0 x 0\n",
		"face out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"short face":        "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"no faces":          "v 0 0 0\nv 1 0 0\nv 0 1 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseOBJ(strings.NewReader(src)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("ship.stl"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
