// Package segment classifies mesh faces into hull regions from their
// model-space position, and maps regions to colors and materials.
// Classification runs once after load; the geometry never changes.
package segment

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/orbitlab/shipview/internal/config"
	"github.com/orbitlab/shipview/internal/engine/lighting"
	"github.com/orbitlab/shipview/internal/engine/mesh"
)

// Region is a closed set of hull-part labels.
type Region int

const (
	RegionSaucer Region = iota
	RegionBridge
	RegionEngineering
	RegionPylon
	RegionNacelle

	regionCount
)

// NumRegions is the number of distinct hull regions.
const NumRegions = int(regionCount)

func (r Region) String() string {
	switch r {
	case RegionSaucer:
		return "saucer"
	case RegionBridge:
		return "bridge"
	case RegionEngineering:
		return "engineering"
	case RegionPylon:
		return "pylon"
	case RegionNacelle:
		return "nacelle"
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// Classifier assigns regions from model-space geometry. Thresholds come
// from configuration so they can be tuned per model.
type Classifier struct {
	cfg config.SegmentConfig
}

// NewClassifier builds a classifier from the configured thresholds.
func NewClassifier(cfg config.SegmentConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// RegionAt classifies a single model-space point. Checks run in a fixed
// priority order; the saucer is the fallback for anything unmatched, so
// every point gets exactly one region.
func (c *Classifier) RegionAt(p mgl32.Vec3) Region {
	x, y, z := p.X(), p.Y(), p.Z()
	absX := x
	if absX < 0 {
		absX = -absX
	}

	switch {
	case y > c.cfg.BridgeMinY && x*x+z*z < c.cfg.BridgeMaxRadius*c.cfg.BridgeMaxRadius:
		return RegionBridge
	case absX > c.cfg.NacelleMinX && y > c.cfg.NacelleMinY && y < c.cfg.NacelleMaxY:
		return RegionNacelle
	case absX > c.cfg.PylonMinX && absX < c.cfg.PylonMaxX && y > c.cfg.PylonMinY && y < c.cfg.PylonMaxY:
		return RegionPylon
	case y > c.cfg.HullMinY && y < c.cfg.HullMaxY && z > c.cfg.HullMinZ && z < c.cfg.HullMaxZ && absX < c.cfg.HullMaxX:
		return RegionEngineering
	}
	return RegionSaucer
}

// Classify labels every face of the mesh by its centroid. The result is
// parallel to m.Faces and covers the full face set.
func (c *Classifier) Classify(m *mesh.Mesh) []Region {
	labels := make([]Region, m.FaceCount())
	for i := range labels {
		labels[i] = c.RegionAt(m.FaceCentroid(i))
	}
	return labels
}

// Material returns the surface material for a region. Raised sections
// are glossier than structural ones.
func Material(r Region) lighting.Material {
	switch r {
	case RegionBridge:
		return lighting.Material{
			Ambient:   mgl32.Vec3{0.4, 0.4, 0.45},
			Diffuse:   mgl32.Vec3{0.8, 0.8, 0.9},
			Specular:  mgl32.Vec3{1.0, 1.0, 1.0},
			Shininess: 128,
		}
	case RegionNacelle:
		return lighting.Material{
			Ambient:   mgl32.Vec3{0.2, 0.25, 0.4},
			Diffuse:   mgl32.Vec3{0.5, 0.6, 0.85},
			Specular:  mgl32.Vec3{0.95, 0.95, 1.0},
			Shininess: 96,
		}
	case RegionPylon:
		return lighting.Material{
			Ambient:   mgl32.Vec3{0.2, 0.25, 0.3},
			Diffuse:   mgl32.Vec3{0.55, 0.65, 0.75},
			Specular:  mgl32.Vec3{0.7, 0.75, 0.8},
			Shininess: 32,
		}
	case RegionEngineering:
		return lighting.Material{
			Ambient:   mgl32.Vec3{0.25, 0.3, 0.35},
			Diffuse:   mgl32.Vec3{0.6, 0.7, 0.8},
			Specular:  mgl32.Vec3{0.8, 0.85, 0.9},
			Shininess: 48,
		}
	}
	return lighting.Material{
		Ambient:   mgl32.Vec3{0.3, 0.35, 0.4},
		Diffuse:   mgl32.Vec3{0.7, 0.75, 0.85},
		Specular:  mgl32.Vec3{0.9, 0.9, 0.95},
		Shininess: 64,
	}
}

// MaterialTable holds one material per region, indexed by Region.
type MaterialTable [NumRegions]lighting.Material

// Materials builds the full per-region material set. base is the
// configured hull material; the saucer shades with it directly while
// the raised sections keep their own finishes.
func Materials(base lighting.Material) MaterialTable {
	var t MaterialTable
	for r := Region(0); r < regionCount; r++ {
		t[r] = Material(r)
	}
	t[RegionSaucer] = base
	return t
}

// AdjustShininess shifts every region's shininess by delta, clamped to
// the lighting bounds, and returns the adjusted table.
func (t MaterialTable) AdjustShininess(delta float32) MaterialTable {
	for i := range t {
		t[i] = t[i].AdjustShininess(delta)
	}
	return t
}
