package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// normalizeEpsilon is the magnitude below which a vector is considered to have no direction.
const normalizeEpsilon = 1e-8

// WorldUp is the world-space up axis. The orbit rig rotates around it.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor (0 = a, 1 = b)
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a toward b.
//
// Parameters:
//   - a: start vector
//   - b: end vector
//   - t: interpolation factor (0 = a, 1 = b)
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// DampFactor returns the interpolation factor that moves a value toward its target at the given
// exponential rate over dt seconds: 1 - e^(-speed*dt). The result is in [0, 1), so applying it never
// overshoots, and applying it n times with dt/n is equivalent to applying it once with dt.
// A non-positive or NaN product yields 0 and an infinite one yields 1.
//
// Parameters:
//   - speed: approach rate per second
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: interpolation factor for Lerp
func DampFactor(speed, dt float32) float32 {
	x := float64(speed) * float64(dt)
	switch {
	case math.IsNaN(x) || x <= 0:
		return 0
	case math.IsInf(x, 1):
		return 1
	}
	return float32(-math.Expm1(-x))
}

// NormalizeSafe returns v scaled to unit length.
// Vectors whose magnitude is below 1e-8, or that contain NaN/Inf components, cannot be normalized
// and yield ErrDegenerateGeometry.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or the zero vector on error
//   - error: ErrDegenerateGeometry if v has no usable direction
func NormalizeSafe(v mgl32.Vec3) (mgl32.Vec3, error) {
	if !IsFiniteVec3(v) {
		return mgl32.Vec3{}, errors.Wrapf(ErrDegenerateGeometry, "vector %v is not finite", v)
	}
	l := float64(v.Len())
	if l < normalizeEpsilon {
		return mgl32.Vec3{}, errors.Wrapf(ErrDegenerateGeometry, "vector %v has length %g", v, l)
	}
	return v.Mul(float32(1 / l)), nil
}

// RotateAroundAxis rotates v by angle radians around the given axis (right-handed).
//
// Parameters:
//   - v: the vector to rotate
//   - axis: rotation axis (need not be normalized)
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateAroundAxis(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	return mgl32.QuatRotate(angle, axis.Normalize()).Rotate(v)
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func IsFinite(f float32) bool {
	x := float64(f)
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// FiniteOr returns f when it is finite, fallback otherwise.
func FiniteOr(f, fallback float32) float32 {
	if IsFinite(f) {
		return f
	}
	return fallback
}
