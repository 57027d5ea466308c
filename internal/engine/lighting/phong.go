// Package lighting provides the Phong illumination model used for both
// CPU-side color computation and shader uniform data.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shininess bounds for runtime adjustment.
const (
	MinShininess = 1.0
	MaxShininess = 128.0
)

// Light is a single positional light source with Phong components.
type Light struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// Material holds Phong reflectance properties for a surface.
type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// AdjustShininess returns the material with shininess moved by delta,
// clamped to [MinShininess, MaxShininess].
func (m Material) AdjustShininess(delta float32) Material {
	m.Shininess = clamp(m.Shininess+delta, MinShininess, MaxShininess)
	return m
}

// Shade computes the Phong color at a surface point.
//
// normal is the unit surface normal, lightDir the unit direction from
// the surface toward the light, viewDir the unit direction toward the
// viewer. Back-facing surfaces (N·L <= 0) receive ambient light only.
func Shade(normal, lightDir, viewDir mgl32.Vec3, mat Material, light Light) mgl32.Vec3 {
	color := hadamard(light.Ambient, mat.Ambient)

	ndl := normal.Dot(lightDir)
	if ndl > 0 {
		color = color.Add(hadamard(light.Diffuse, mat.Diffuse).Mul(ndl))

		// R is L reflected about N: R = 2(N·L)N - L.
		reflected := normal.Mul(2 * ndl).Sub(lightDir)
		if rdv := reflected.Dot(viewDir); rdv > 0 {
			spec := math32.Pow(rdv, mat.Shininess)
			color = color.Add(hadamard(light.Specular, mat.Specular).Mul(spec))
		}
	}

	return clampColor(color)
}

// ShadeAt is Shade with the geometric setup done here: it derives the
// light and view directions from world positions.
func ShadeAt(point, normal mgl32.Vec3, eye mgl32.Vec3, mat Material, light Light) mgl32.Vec3 {
	lightDir := light.Position.Sub(point).Normalize()
	viewDir := eye.Sub(point).Normalize()
	return Shade(normal.Normalize(), lightDir, viewDir, mat, light)
}

func hadamard(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		clamp(c.X(), 0, 1),
		clamp(c.Y(), 0, 1),
		clamp(c.Z(), 0, 1),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
