// Package shading converts a Jacobian-derived pseudo-normal and a light
// spec into a scalar brightness value (spec.md §4.2).
package shading

import "math"

// Light holds both the human-readable light parameters (angle/elevation
// in degrees, the rest in [0,1] or [1,30]/[0.1,10]) and, once Prepare is
// called, the radians/scaled values the shading formulas consume.
type Light struct {
	// Human units, as persisted in a config record.
	AngleDeg     float64
	ElevationDeg float64
	Opacity      float64
	Ambient      float64
	Diffuse      float64
	Specular     float64
	Shininess    float64
	Gamma        float64

	// Derived at Prepare; radians/scaled units used by the formulas.
	angleRad     float64
	elevationRad float64 // for BlinnPhong3D
	elevationFr  float64 // elevation/90, for Simple3D
}

// DefaultLight returns the spec's documented default light.
func DefaultLight() Light {
	return Light{
		AngleDeg:     45,
		ElevationDeg: 45,
		Opacity:      0.75,
		Ambient:      0.2,
		Diffuse:      0.5,
		Specular:     0.5,
		Shininess:    20,
		Gamma:        1.0,
	}
}

// Prepare converts the human-unit fields to the radians/scaled values
// used at render time. Must be called once before Simple3D/BlinnPhong3D.
func (l *Light) Prepare() {
	l.angleRad = 2 * math.Pi * l.AngleDeg / 360
	l.elevationRad = math.Pi / 2 * l.ElevationDeg / 90
	l.elevationFr = l.ElevationDeg / 90
}

const epsNormal = 1e-12

// normalize clamps a possibly-zero-magnitude pseudo-normal by dividing
// by max(|normal|, eps), per spec §4.2.
func normalize(normal complex128) complex128 {
	m := math.Hypot(real(normal), imag(normal))
	if m < epsNormal {
		m = epsNormal
	}
	return normal / complex(m, 0)
}

// Simple3D computes the simple 3-D shading brightness for a pseudo-normal.
func Simple3D(normal complex128, l Light) float64 {
	n := normalize(normal)
	height := 1 + l.elevationFr
	dir := complex(math.Cos(l.angleRad), math.Sin(l.angleRad))
	dot := real(n)*real(dir) + imag(n)*imag(dir)
	return (dot + height) / (1 + height)
}

// BlinnPhong3D computes the Blinn–Phong shading brightness for a pseudo-normal.
func BlinnPhong3D(normal complex128, l Light) float64 {
	n := normalize(normal)
	nr, ni := real(n), imag(n)

	cosA, sinA := math.Cos(l.angleRad), math.Sin(l.angleRad)
	cosE, sinE := math.Cos(l.elevationRad), math.Sin(l.elevationRad)

	diffuse := (nr*cosA*cosE + ni*sinA*cosE + sinE) / (1 + sinE)

	phiHalf := (math.Pi/2 + l.elevationRad) / 2
	sinH, cosH := math.Sin(phiHalf), math.Cos(phiHalf)
	specular := (nr*cosA*sinH + ni*sinA*sinH + cosH) / (1 + cosH)
	specular = math.Pow(specular, l.Shininess)

	bright := l.Ambient + diffuse*l.Diffuse + specular*l.Specular
	return bright*l.Opacity + (1-l.Opacity)/2
}
