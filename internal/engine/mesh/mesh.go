// Package mesh holds immutable triangle-mesh geometry and its derived
// per-face data. A Mesh never mutates after construction; conditioning
// steps return new meshes.
package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a static triangle mesh. Faces index into Positions; Normals
// are per-vertex and always present after New (derived when the source
// had none). Derived per-face centroids and normals are computed once
// at construction since the geometry never changes.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Faces     [][3]uint32

	Min, Max mgl32.Vec3

	faceNormals   []mgl32.Vec3
	faceCentroids []mgl32.Vec3
}

// New builds a mesh from vertex and face data, validating that every
// face references a valid vertex. normals may be nil; they are then
// derived by area-weighted averaging of face normals. texcoords may be
// nil.
func New(positions []mgl32.Vec3, normals []mgl32.Vec3, texcoords []mgl32.Vec2, faces [][3]uint32) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("mesh has no faces")
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("normal count %d does not match vertex count %d", len(normals), len(positions))
	}

	n := uint32(len(positions))
	for i, f := range faces {
		for _, idx := range f {
			if idx >= n {
				return nil, fmt.Errorf("face %d references vertex %d, mesh has %d", i, idx, n)
			}
		}
	}

	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		TexCoords: texcoords,
		Faces:     faces,
	}
	m.computeBounds()
	m.computeFaceData()
	if m.Normals == nil {
		m.Normals = m.smoothNormals()
	}
	return m, nil
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// FaceNormal returns the unit normal of face i, from the winding order
// of its vertices.
func (m *Mesh) FaceNormal(i int) mgl32.Vec3 {
	return m.faceNormals[i]
}

// FaceCentroid returns the centroid of face i.
func (m *Mesh) FaceCentroid(i int) mgl32.Vec3 {
	return m.faceCentroids[i]
}

// Size returns the bounding box extents.
func (m *Mesh) Size() mgl32.Vec3 {
	return m.Max.Sub(m.Min)
}

// Center returns the bounding box center.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.Min.Add(m.Max).Mul(0.5)
}

// Fitted returns a copy of the mesh centered at the origin and
// uniformly scaled so its largest dimension equals size. A size of zero
// centers without scaling.
func (m *Mesh) Fitted(size float32) *Mesh {
	center := m.Center()

	ext := m.Size()
	maxDim := math32.Max(ext.X(), math32.Max(ext.Y(), ext.Z()))
	scale := float32(1)
	if size > 0 && maxDim > 0 {
		scale = size / maxDim
	}

	positions := make([]mgl32.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = p.Sub(center).Mul(scale)
	}

	// Uniform scale and translation leave normals untouched.
	fitted, err := New(positions, m.Normals, m.TexCoords, m.Faces)
	if err != nil {
		// The source mesh already validated; the copy cannot fail.
		panic(err)
	}
	return fitted
}

func (m *Mesh) computeBounds() {
	m.Min = m.Positions[0]
	m.Max = m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < m.Min[i] {
				m.Min[i] = p[i]
			}
			if p[i] > m.Max[i] {
				m.Max[i] = p[i]
			}
		}
	}
}

func (m *Mesh) computeFaceData() {
	m.faceNormals = make([]mgl32.Vec3, len(m.Faces))
	m.faceCentroids = make([]mgl32.Vec3, len(m.Faces))

	for i, f := range m.Faces {
		v0 := m.Positions[f[0]]
		v1 := m.Positions[f[1]]
		v2 := m.Positions[f[2]]

		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		} else {
			n = mgl32.Vec3{0, 0, 1} // degenerate face
		}
		m.faceNormals[i] = n
		m.faceCentroids[i] = v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
	}
}

// smoothNormals derives per-vertex normals by accumulating unnormalized
// face normals, which weights by face area.
func (m *Mesh) smoothNormals() []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Positions))
	for _, f := range m.Faces {
		v0 := m.Positions[f[0]]
		v1 := m.Positions[f[1]]
		v2 := m.Positions[f[2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range f {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
		} else {
			normals[i] = mgl32.Vec3{0, 0, 1}
		}
	}
	return normals
}

// Load reads a mesh from disk, dispatching on the file extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}
