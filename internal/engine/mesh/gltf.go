package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a glTF or binary GLB file. All triangle primitives of
// all meshes in the document are merged into a single Mesh.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		texcoords []mgl32.Vec2
		faces     [][3]uint32
	)
	hasNormals := true
	hasUVs := true

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", gm.Name, err)
			}

			base := uint32(len(positions))
			for _, p := range pos {
				positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})
			}

			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok && hasNormals {
				norm, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read normals: %w", gm.Name, err)
				}
				for _, n := range norm {
					normals = append(normals, mgl32.Vec3{n[0], n[1], n[2]})
				}
			} else {
				// One primitive without normals poisons the merged set;
				// fall back to deriving them all.
				hasNormals = false
			}

			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && hasUVs {
				uv, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read texcoords: %w", gm.Name, err)
				}
				for _, c := range uv {
					texcoords = append(texcoords, mgl32.Vec2{c[0], c[1]})
				}
			} else {
				hasUVs = false
			}

			if prim.Indices != nil {
				idx, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", gm.Name, err)
				}
				for i := 0; i+2 < len(idx); i += 3 {
					faces = append(faces, [3]uint32{base + idx[i], base + idx[i+1], base + idx[i+2]})
				}
			} else {
				for i := 0; i+2 < len(pos); i += 3 {
					u := base + uint32(i)
					faces = append(faces, [3]uint32{u, u + 1, u + 2})
				}
			}
		}
	}

	if !hasNormals {
		normals = nil
	}
	if !hasUVs {
		texcoords = nil
	}
	return New(positions, normals, texcoords, faces)
}
