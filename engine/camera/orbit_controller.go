package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the rendering surface the controlled camera draws into.
// The controller only retains it; window.Window satisfies it.
type Viewport interface {
	Width() int
	Height() int
}

// OrbitState is a snapshot of an OrbitController's internal state.
// Current values are the smoothed values written to the camera; target values are the goals
// set by the mutators.
type OrbitState struct {
	CurrentSpherical common.Spherical
	TargetSpherical  common.Spherical

	// CurrentOffset and TargetOffset translate both the camera and its look-at point.
	CurrentOffset mgl32.Vec3
	TargetOffset  mgl32.Vec3

	// CurrentLookAt and TargetLookAt are the point the rig rotates around, before the offset is added.
	CurrentLookAt mgl32.Vec3
	TargetLookAt  mgl32.Vec3

	DistanceMin float32
	DistanceMax float32

	DirectionLerpSpeed float32
	PositionLerpSpeed  float32
}

// OrbitController is an orbit-style camera controller driven from outside by per-frame input.
// Mutators change target state only; Update moves the current state toward the target with
// frame-rate independent exponential smoothing and writes the result to the camera.
// An OrbitController must be the only writer of its camera's position and orientation.
type OrbitController interface {
	// Update applies one frame of input and advances smoothing.
	// A nil input applies no deltas and performs no smoothing step, but the camera is still
	// rewritten from the current state.
	//
	// Parameters:
	//   - input: the frame's input snapshot, or nil
	Update(input *InputSnapshot)

	// RotateHorizontally adds angle radians to the target azimuth.
	//
	// Parameters:
	//   - angle: azimuth delta in radians
	RotateHorizontally(angle float32)

	// RotateVertically adds angle radians to the target polar angle.
	//
	// Parameters:
	//   - angle: polar delta in radians
	RotateVertically(angle float32)

	// Zoom adds amount to the target radius and clamps it to the distance bounds.
	// Negative amounts move the camera closer.
	//
	// Parameters:
	//   - amount: radius delta
	Zoom(amount float32)

	// MoveTargetBy adds v to the target offset.
	//
	// Parameters:
	//   - v: world-space translation
	MoveTargetBy(v mgl32.Vec3)

	// MoveTargetForward moves the target offset along the camera's facing direction.
	//
	// Parameters:
	//   - distance: world units to move
	MoveTargetForward(distance float32)

	// MoveTargetBackwards moves the target offset against the camera's facing direction.
	//
	// Parameters:
	//   - distance: world units to move
	MoveTargetBackwards(distance float32)

	// MoveOffsetHorizontally strafes the target offset sideways relative to the camera's
	// facing direction, in the horizontal plane and independent of pitch.
	// Positive delta moves to the camera's left.
	//
	// Parameters:
	//   - delta: world units to move
	MoveOffsetHorizontally(delta float32)

	// MoveOffsetVertically pans the target offset along the view-relative vertical axis
	// (the facing direction rotated a quarter turn toward the pole).
	//
	// Parameters:
	//   - delta: world units to move
	MoveOffsetVertically(delta float32)

	// Target returns the current offset of the rig.
	//
	// Returns:
	//   - mgl32.Vec3: current offset
	Target() mgl32.Vec3

	// SetTarget overwrites both the current and target offset, bypassing smoothing.
	//
	// Parameters:
	//   - v: the new offset
	SetTarget(v mgl32.Vec3)

	// LookAt returns the current look-at point, before the offset is added.
	//
	// Returns:
	//   - mgl32.Vec3: current look-at point
	LookAt() mgl32.Vec3

	// SetLookAt sets the target look-at point; the current value follows with position smoothing.
	//
	// Parameters:
	//   - v: the new look-at point
	SetLookAt(v mgl32.Vec3)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: camera position
	Position() mgl32.Vec3

	// SetPosition sets the target spherical coordinates from a world-space position relative to the origin.
	// The camera glides there with smoothing.
	//
	// Parameters:
	//   - p: desired camera position
	SetPosition(p mgl32.Vec3)

	// WorldDirection returns the unit vector the camera is facing.
	//
	// Returns:
	//   - mgl32.Vec3: world-space facing direction
	WorldDirection() mgl32.Vec3

	// DirectionLerpSpeed returns the rotation smoothing rate (0 = snap).
	//
	// Returns:
	//   - float32: approach rate per second
	DirectionLerpSpeed() float32

	// SetDirectionLerpSpeed sets the rotation smoothing rate. Non-positive values disable smoothing.
	//
	// Parameters:
	//   - speed: approach rate per second
	SetDirectionLerpSpeed(speed float32)

	// PositionLerpSpeed returns the radius/offset/look-at smoothing rate (0 = snap).
	//
	// Returns:
	//   - float32: approach rate per second
	PositionLerpSpeed() float32

	// SetPositionLerpSpeed sets the radius/offset/look-at smoothing rate. Non-positive values disable smoothing.
	//
	// Parameters:
	//   - speed: approach rate per second
	SetPositionLerpSpeed(speed float32)

	// DistanceMin returns the minimum target radius.
	//
	// Returns:
	//   - float32: minimum distance
	DistanceMin() float32

	// SetDistanceMin sets the minimum target radius and re-clamps the target radius.
	//
	// Parameters:
	//   - min: minimum distance (negative values are treated as 0)
	SetDistanceMin(min float32)

	// DistanceMax returns the maximum target radius (0 = unbounded).
	//
	// Returns:
	//   - float32: maximum distance
	DistanceMax() float32

	// SetDistanceMax sets the maximum target radius and re-clamps the target radius.
	//
	// Parameters:
	//   - max: maximum distance (0 = unbounded)
	SetDistanceMax(max float32)

	// State returns a copy of the controller's state.
	//
	// Returns:
	//   - OrbitState: the current and target state
	State() OrbitState

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera handle
	Camera() Camera

	// Viewport returns the viewport the controller was constructed with.
	//
	// Returns:
	//   - Viewport: the rendering surface
	Viewport() Viewport

	// Scene returns the scene handle the controller was constructed with, or nil.
	//
	// Returns:
	//   - any: the scene handle
	Scene() any

	// Dispose releases the controller. Subsequent Update calls do nothing.
	Dispose()
}
