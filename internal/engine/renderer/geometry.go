package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/orbitlab/shipview/internal/engine/mesh"
	"github.com/orbitlab/shipview/internal/engine/segment"
	"github.com/orbitlab/shipview/internal/logger"
)

// batch is an uploaded triangle soup. Geometry (position + normal) is
// static; colors live in their own buffer so recoloring rewrites only
// that.
type batch struct {
	vao      uint32
	geomVBO  uint32
	colorVBO uint32
	count    int32
}

func (b *batch) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *batch) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.geomVBO != 0 {
		gl.DeleteBuffers(1, &b.geomVBO)
	}
	if b.colorVBO != 0 {
		gl.DeleteBuffers(1, &b.colorVBO)
	}
}

// newBatch uploads interleaved position+normal data and a parallel
// color buffer. colorUsage is STATIC_DRAW or DYNAMIC_DRAW.
func newBatch(geom, colors []float32, colorUsage uint32) *batch {
	b := &batch{count: int32(len(geom) / 6)}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.geomVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.geomVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(geom)*4, gl.Ptr(geom), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, gl.Ptr(colors), colorUsage)

	// Color attribute (location = 2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return b
}

// regionSpan is a contiguous run of triangles sharing one region in
// the uploaded soup. first and count are in vertices.
type regionSpan struct {
	region segment.Region
	first  int32
	count  int32
}

// groupByRegion permutes face indices so each region's faces are
// contiguous, preserving their relative order, and returns the draw
// span for every region present. Faces with out-of-range labels are
// left out of the permutation.
func groupByRegion(labels []segment.Region) ([]int, []regionSpan) {
	order := make([]int, 0, len(labels))
	var spans []regionSpan
	for r := segment.Region(0); int(r) < segment.NumRegions; r++ {
		first := len(order)
		for i, l := range labels {
			if l == r {
				order = append(order, i)
			}
		}
		if n := len(order) - first; n > 0 {
			spans = append(spans, regionSpan{
				region: r,
				first:  int32(first * 3),
				count:  int32(n * 3),
			})
		}
	}
	return order, spans
}

// UploadMesh flattens the mesh into a triangle soup with the face
// normal and face color repeated at each corner, so every triangle
// shades as one region-colored facet. Faces are grouped by region so
// each hull section draws as one span with its own material.
func (r *Renderer) UploadMesh(m *mesh.Mesh, labels []segment.Region, faceColors []mgl32.Vec3) error {
	if len(labels) != m.FaceCount() {
		return fmt.Errorf("have %d labels for %d faces", len(labels), m.FaceCount())
	}
	if len(faceColors) != m.FaceCount() {
		return fmt.Errorf("have %d face colors for %d faces", len(faceColors), m.FaceCount())
	}
	if r.mesh != nil {
		r.mesh.destroy()
	}

	order, spans := groupByRegion(labels)
	if len(order) != m.FaceCount() {
		return fmt.Errorf("%d faces carry labels outside the region range", m.FaceCount()-len(order))
	}

	geom := make([]float32, 0, m.FaceCount()*3*6)
	colors := make([]float32, 0, m.FaceCount()*3*3)
	for _, fi := range order {
		n := m.FaceNormal(fi)
		c := faceColors[fi]
		for _, idx := range m.Faces[fi] {
			p := m.Positions[idx]
			geom = append(geom, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
			colors = append(colors, c.X(), c.Y(), c.Z())
		}
	}

	r.mesh = newBatch(geom, colors, gl.DYNAMIC_DRAW)
	r.meshOrder = order
	r.spans = spans
	logger.Debug("mesh uploaded",
		zap.Int("faces", m.FaceCount()),
		zap.Int("regions", len(spans)),
		zap.Int32("vertices", r.mesh.count),
	)
	return nil
}

// UpdateColors rewrites the mesh color buffer in place. faceColors is
// indexed by the original face order and must match the uploaded face
// count.
func (r *Renderer) UpdateColors(faceColors []mgl32.Vec3) error {
	if r.mesh == nil {
		return fmt.Errorf("no mesh uploaded")
	}
	if len(faceColors) != len(r.meshOrder) {
		return fmt.Errorf("have %d face colors for %d faces", len(faceColors), len(r.meshOrder))
	}

	colors := make([]float32, 0, len(faceColors)*9)
	for _, fi := range r.meshOrder {
		c := faceColors[fi]
		for i := 0; i < 3; i++ {
			colors = append(colors, c.X(), c.Y(), c.Z())
		}
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.mesh.colorVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(colors)*4, gl.Ptr(colors))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// UploadGround builds a flat quad at the given height, centered on the
// origin.
func (r *Renderer) UploadGround(height, size float32, color [3]float32) {
	if r.ground != nil {
		r.ground.destroy()
	}

	h := size / 2
	corners := [4]mgl32.Vec3{
		{-h, height, -h},
		{h, height, -h},
		{h, height, h},
		{-h, height, h},
	}
	// Two CCW triangles seen from above.
	order := [6]int{0, 2, 1, 0, 3, 2}

	geom := make([]float32, 0, 6*6)
	colors := make([]float32, 0, 6*3)
	for _, i := range order {
		p := corners[i]
		geom = append(geom, p.X(), p.Y(), p.Z(), 0, 1, 0)
		colors = append(colors, color[0], color[1], color[2])
	}

	r.ground = newBatch(geom, colors, gl.STATIC_DRAW)
}
