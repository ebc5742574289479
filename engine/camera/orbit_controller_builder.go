package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithDirectionLerpSpeed sets the rotation smoothing rate.
//
// Parameters:
//   - speed: approach rate per second (0 = snap)
//
// Returns:
//   - OrbitControllerOption: functional option to set the rotation smoothing rate
func WithDirectionLerpSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.directionLerpSpeed = sanitizeSpeed(speed)
	}
}

// WithPositionLerpSpeed sets the radius/offset/look-at smoothing rate.
//
// Parameters:
//   - speed: approach rate per second (0 = snap)
//
// Returns:
//   - OrbitControllerOption: functional option to set the position smoothing rate
func WithPositionLerpSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.positionLerpSpeed = sanitizeSpeed(speed)
	}
}

// WithDistanceBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance (0 = unbounded)
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithDistanceBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.distanceMin = sanitizeDistance(min)
		oc.distanceMax = sanitizeDistance(max)
	}
}

// WithTarget sets the initial rig offset (current and target).
//
// Parameters:
//   - v: the offset
//
// Returns:
//   - OrbitControllerOption: functional option to set the offset
func WithTarget(v mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.offset = v
		oc.targetOffset = v
	}
}

// WithOrbitLookAt sets the initial point the rig rotates around (current and target).
//
// Parameters:
//   - v: the look-at point
//
// Returns:
//   - OrbitControllerOption: functional option to set the look-at point
func WithOrbitLookAt(v mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.lookAt = v
		oc.targetLookAt = v
	}
}
