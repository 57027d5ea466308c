package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ reads a Wavefront OBJ file. Only v, vn and f records are
// used; polygonal faces are fan-triangulated. Per-corner normal indices
// are ignored in favor of derived smooth normals, which is what the
// flat-shaded pipeline needs anyway.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	m, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}
	return m, nil
}

func parseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		faces     [][3]uint32
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var v mgl32.Vec3
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad coordinate %q", lineNo, fields[i+1])
				}
				v[i] = float32(val)
			}
			positions = append(positions, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]uint32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				i, err := parseFaceIndex(tok, len(positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i+1 < len(idx); i++ {
				faces = append(faces, [3]uint32{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(positions, nil, nil, faces)
}

// parseFaceIndex handles the v, v/vt, v//vn and v/vt/vn corner forms,
// including OBJ's negative (relative) indices.
func parseFaceIndex(tok string, vertexCount int) (uint32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	if v < 0 {
		v += vertexCount + 1
	}
	if v < 1 || v > vertexCount {
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", v, vertexCount)
	}
	return uint32(v - 1), nil
}
