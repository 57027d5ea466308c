// Package transform builds model, view and projection matrices from
// camera and object state.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the position, orientation and scale of a rigid body.
// Orientation is yaw/pitch/roll in radians, applied Y then X then Z.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Roll     float32
	Scale    mgl32.Vec3
}

// NewPose returns an identity pose with unit scale.
func NewPose() Pose {
	return Pose{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the pose's local-to-world transform: T * Ry * Rx * Rz * S.
func (p Pose) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DY(p.Yaw))
	m = m.Mul4(mgl32.HomogRotate3DX(p.Pitch))
	m = m.Mul4(mgl32.HomogRotate3DZ(p.Roll))
	m = m.Mul4(mgl32.Scale3D(p.Scale.X(), p.Scale.Y(), p.Scale.Z()))
	return m
}

// Model returns the model matrix for an object pose.
func Model(object Pose) mgl32.Mat4 {
	return object.Matrix()
}

// View returns the view matrix for a camera pose: the inverse of the
// camera's world transform.
func View(camera Pose) mgl32.Mat4 {
	return camera.Matrix().Inv()
}

// Projection returns a perspective projection matrix.
// fovDegrees is the vertical field of view.
func Projection(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

// NormalMatrix returns the inverse-transpose of the model matrix's upper
// 3x3. Normals transformed by it stay perpendicular to surfaces under
// non-uniform scale; with plain rotation it equals the rotation itself.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}

// IsFinite reports whether every element of m is a finite number.
// Degenerate camera/object coincidence can produce NaN or Inf; callers
// skip the frame's draw rather than submit such a matrix.
func IsFinite(m mgl32.Mat4) bool {
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}
