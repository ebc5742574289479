package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PolarEpsilon is the margin kept between a safe polar angle and the poles.
const PolarEpsilon = 1e-6

var (
	minSafePolar = float32(PolarEpsilon)
	maxSafePolar = float32(math.Pi - PolarEpsilon)
)

// Spherical is a point relative to an origin in physical spherical coordinates, Y-up:
// Radius is the distance from the origin, Polar the angle from the +Y pole and Azimuth the
// angle around the Y axis measured from +Z toward +X.
type Spherical struct {
	Radius  float32
	Polar   float32
	Azimuth float32
}

// SphericalFromVec3 converts a Cartesian vector to spherical coordinates.
// The zero vector maps to the zero Spherical.
//
// Parameters:
//   - v: the Cartesian vector
//
// Returns:
//   - Spherical: the equivalent spherical coordinates
func SphericalFromVec3(v mgl32.Vec3) Spherical {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius:  float32(r),
		Polar:   float32(math.Acos(clamp64(y/r, -1, 1))),
		Azimuth: float32(math.Atan2(x, z)),
	}
}

// Vec3 converts the spherical coordinates to a Cartesian vector.
//
// Returns:
//   - mgl32.Vec3: x = r*sin(polar)*sin(azimuth), y = r*cos(polar), z = r*sin(polar)*cos(azimuth)
func (s Spherical) Vec3() mgl32.Vec3 {
	r := float64(s.Radius)
	sinPolar, cosPolar := math.Sincos(float64(s.Polar))
	sinAzim, cosAzim := math.Sincos(float64(s.Azimuth))
	return mgl32.Vec3{
		float32(r * sinPolar * sinAzim),
		float32(r * cosPolar),
		float32(r * sinPolar * cosAzim),
	}
}

// MakeSafe clamps the polar angle strictly inside (0, π) so that the direction toward the origin is
// never parallel to the up axis. NaN polar angles are reset to the equator.
func (s *Spherical) MakeSafe() {
	if math.IsNaN(float64(s.Polar)) {
		s.Polar = math.Pi / 2
		return
	}
	s.Polar = mgl32.Clamp(s.Polar, minSafePolar, maxSafePolar)
}

// Safe returns a copy of s with MakeSafe applied.
func (s Spherical) Safe() Spherical {
	s.MakeSafe()
	return s
}

func clamp64(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
