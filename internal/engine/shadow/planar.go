// Package shadow derives planar shadow projection transforms.
//
// A shadow is drawn by flattening the mesh onto the ground plane along
// the light vector and filling it with a dark color. The flattening is a
// plain 4x4 matrix, so the shadow pass reuses the normal mesh draw with
// a substituted model transform.
package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEpsilon is the threshold below which the light is considered
// parallel to (or lying in) the plane and projection is undefined.
const DefaultEpsilon = 1e-4

// Plane is defined by any point on it and its unit normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// GroundPlane returns a horizontal plane at the given height.
func GroundPlane(y float32) Plane {
	return Plane{
		Point:  mgl32.Vec3{0, y, 0},
		Normal: mgl32.Vec3{0, 1, 0},
	}
}

// coefficients returns the plane equation (a,b,c,d) with a normalized
// normal, so ax+by+cz+d = 0 for points on the plane.
func (p Plane) coefficients() mgl32.Vec4 {
	n := p.Normal.Normalize()
	return mgl32.Vec4{n.X(), n.Y(), n.Z(), -n.Dot(p.Point)}
}

// Matrix builds the flattening matrix for a homogeneous light vector:
// w=0 is a directional light (shadow cast along a fixed direction), w=1
// a positional one (shadow cast away from a point). The second return is
// false when the projection is degenerate — the light grazes the plane —
// and the shadow draw must be skipped for the frame.
func Matrix(light mgl32.Vec4, plane Plane) (mgl32.Mat4, bool) {
	pl := plane.coefficients()

	dot := pl.Dot(light)
	if math32.Abs(dot) < DefaultEpsilon {
		return mgl32.Ident4(), false
	}

	var m mgl32.Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			v := -light[row] * pl[col]
			if row == col {
				v += dot
			}
			m[col*4+row] = v
		}
	}
	return m, true
}

// Directional builds the flattening matrix for a directional light.
// dir is the light direction; its orientation sign does not matter.
func Directional(dir mgl32.Vec3, plane Plane) (mgl32.Mat4, bool) {
	return Matrix(mgl32.Vec4{dir.X(), dir.Y(), dir.Z(), 0}, plane)
}

// FromPoint builds the flattening matrix for a positional light.
func FromPoint(pos mgl32.Vec3, plane Plane) (mgl32.Mat4, bool) {
	return Matrix(mgl32.Vec4{pos.X(), pos.Y(), pos.Z(), 1}, plane)
}

// Project maps a world-space point onto the plane along the light
// direction: P' = P - ((P-Q)·n / (L·n))·L. It is the reference form of
// Directional, usable without any matrix plumbing. Returns false when
// the direction is parallel to the plane.
func Project(p, dir mgl32.Vec3, plane Plane) (mgl32.Vec3, bool) {
	n := plane.Normal.Normalize()

	denom := dir.Dot(n)
	if math32.Abs(denom) < DefaultEpsilon {
		return p, false
	}

	dist := p.Sub(plane.Point).Dot(n)
	return p.Sub(dir.Mul(dist / denom)), true
}

// Apply transforms a point through a flattening matrix with the
// homogeneous divide.
func Apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	w := v.W()
	if w == 0 {
		return mgl32.Vec3{v.X(), v.Y(), v.Z()}
	}
	return mgl32.Vec3{v.X() / w, v.Y() / w, v.Z() / w}
}
