package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	defaultDirectionLerpSpeed = 10
	defaultPositionLerpSpeed  = 10
)

// orbitControllerImpl is the single implementation of OrbitController.
// Every spherical/offset/look-at value exists twice: the target, moved instantly by mutators,
// and the current value, which follows the target in Update and is written to the camera.
type orbitControllerImpl struct {
	mu *sync.Mutex

	viewport Viewport
	scene    any
	camera   Camera

	spherical       common.Spherical
	targetSpherical common.Spherical

	offset       mgl32.Vec3
	targetOffset mgl32.Vec3

	lookAt       mgl32.Vec3
	targetLookAt mgl32.Vec3

	distanceMin float32
	distanceMax float32 // 0 = unbounded

	directionLerpSpeed float32 // 0 = snap
	positionLerpSpeed  float32 // 0 = snap

	disposed bool
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller for cam.
// The camera's current position, taken relative to the world origin, seeds both the current
// and target spherical coordinates.
//
// Parameters:
//   - viewport: the rendering surface the camera draws into (retained only)
//   - scene: an optional scene handle (retained only, may be nil)
//   - cam: the camera to control
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
//   - error: an error wrapping common.ErrInvalidArgument if viewport or cam is nil
func NewOrbitController(viewport Viewport, scene any, cam Camera, options ...OrbitControllerOption) (OrbitController, error) {
	if viewport == nil {
		return nil, errors.Wrap(common.ErrInvalidArgument, "orbit controller requires a viewport")
	}
	if cam == nil {
		return nil, errors.Wrap(common.ErrInvalidArgument, "orbit controller requires a camera")
	}

	seed := common.SphericalFromVec3(cam.Position())
	oc := &orbitControllerImpl{
		mu:                 &sync.Mutex{},
		viewport:           viewport,
		scene:              scene,
		camera:             cam,
		spherical:          seed,
		targetSpherical:    seed,
		directionLerpSpeed: defaultDirectionLerpSpeed,
		positionLerpSpeed:  defaultPositionLerpSpeed,
	}

	for _, option := range options {
		option(oc)
	}

	oc.clampRadius()
	return oc, nil
}

func (oc *orbitControllerImpl) Update(input *InputSnapshot) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.disposed {
		return
	}

	var dt float32
	if input != nil {
		in := input.Sanitized()
		dt = in.DeltaTime

		if in.RotateHorizontally != 0 {
			oc.targetSpherical.Azimuth += in.RotateHorizontally * dt
		}
		if in.RotateVertically != 0 {
			oc.targetSpherical.Polar += in.RotateVertically * dt
		}
		if in.Zoom != 0 {
			oc.zoom(in.Zoom * dt)
		}
		if in.MoveTarget != (mgl32.Vec3{}) {
			oc.targetOffset = oc.targetOffset.Add(in.MoveTarget.Mul(dt))
		}
		if in.MoveOffsetHorizontally != 0 {
			oc.moveOffsetHorizontally(in.MoveOffsetHorizontally * dt)
		}
		if in.MoveOffsetVertically != 0 {
			oc.moveOffsetVertically(in.MoveOffsetVertically * dt)
		}

		oc.smooth(dt)
	}

	oc.spherical.MakeSafe()
	oc.targetSpherical.MakeSafe()
	oc.apply()
}

// smooth moves current state toward target state over dt seconds.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) smooth(dt float32) {
	if oc.directionLerpSpeed > 0 {
		t := common.DampFactor(oc.directionLerpSpeed, dt)
		oc.spherical.Azimuth = common.Lerp(oc.spherical.Azimuth, oc.targetSpherical.Azimuth, t)
		oc.spherical.Polar = common.Lerp(oc.spherical.Polar, oc.targetSpherical.Polar, t)
	} else {
		oc.spherical.Azimuth = oc.targetSpherical.Azimuth
		oc.spherical.Polar = oc.targetSpherical.Polar
	}

	if oc.positionLerpSpeed > 0 {
		t := common.DampFactor(oc.positionLerpSpeed, dt)
		oc.spherical.Radius = common.Lerp(oc.spherical.Radius, oc.targetSpherical.Radius, t)
		oc.lookAt = common.LerpVec3(oc.lookAt, oc.targetLookAt, t)
		oc.offset = common.LerpVec3(oc.offset, oc.targetOffset, t)
	} else {
		oc.spherical.Radius = oc.targetSpherical.Radius
		oc.lookAt = oc.targetLookAt
		oc.offset = oc.targetOffset
	}
}

// apply writes the current state to the camera.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) apply() {
	oc.camera.SetPosition(oc.spherical.Vec3().Add(oc.offset))
	oc.camera.LookAt(oc.lookAt.Add(oc.offset))
}

// zoom adds amount to the target radius and clamps it.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) zoom(amount float32) {
	oc.targetSpherical.Radius += amount
	oc.clampRadius()
}

// clampRadius enforces the distance bounds on the target radius.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) clampRadius() {
	if oc.targetSpherical.Radius < oc.distanceMin {
		oc.targetSpherical.Radius = oc.distanceMin
	}
	if oc.distanceMax > 0 && oc.targetSpherical.Radius > oc.distanceMax {
		oc.targetSpherical.Radius = oc.distanceMax
	}
}

// moveOffsetHorizontally strafes the target offset in the horizontal plane.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) moveOffsetHorizontally(delta float32) {
	dir := oc.camera.WorldDirection()
	dir[1] = 0
	flat, err := common.NormalizeSafe(dir)
	if err != nil {
		// Looking straight up or down: no horizontal facing to strafe against.
		return
	}
	side := common.RotateAroundAxis(flat.Mul(delta), common.WorldUp, math.Pi/2)
	oc.targetOffset = oc.targetOffset.Add(side)
}

// moveOffsetVertically pans the target offset along the view-relative vertical axis.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) moveOffsetVertically(delta float32) {
	s := common.SphericalFromVec3(oc.camera.WorldDirection())
	if s.Radius == 0 {
		return
	}
	s.Radius = 1
	s.Polar += math.Pi / 2
	v, err := common.NormalizeSafe(s.Vec3())
	if err != nil {
		return
	}
	oc.targetOffset = oc.targetOffset.Add(v.Mul(delta))
}

// moveTargetForward moves the target offset along the facing direction.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) moveTargetForward(distance float32) {
	dir, err := common.NormalizeSafe(oc.camera.WorldDirection())
	if err != nil {
		return
	}
	oc.targetOffset = oc.targetOffset.Add(dir.Mul(distance))
}

func (oc *orbitControllerImpl) RotateHorizontally(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(angle) {
		return
	}
	oc.targetSpherical.Azimuth += angle
}

func (oc *orbitControllerImpl) RotateVertically(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(angle) {
		return
	}
	oc.targetSpherical.Polar += angle
}

func (oc *orbitControllerImpl) Zoom(amount float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(amount) {
		return
	}
	oc.zoom(amount)
}

func (oc *orbitControllerImpl) MoveTargetBy(v mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFiniteVec3(v) {
		return
	}
	oc.targetOffset = oc.targetOffset.Add(v)
}

func (oc *orbitControllerImpl) MoveTargetForward(distance float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(distance) {
		return
	}
	oc.moveTargetForward(distance)
}

func (oc *orbitControllerImpl) MoveTargetBackwards(distance float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(distance) {
		return
	}
	oc.moveTargetForward(-distance)
}

func (oc *orbitControllerImpl) MoveOffsetHorizontally(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(delta) {
		return
	}
	oc.moveOffsetHorizontally(delta)
}

func (oc *orbitControllerImpl) MoveOffsetVertically(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFinite(delta) {
		return
	}
	oc.moveOffsetVertically(delta)
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.offset
}

func (oc *orbitControllerImpl) SetTarget(v mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFiniteVec3(v) {
		return
	}
	oc.offset = v
	oc.targetOffset = v
}

func (oc *orbitControllerImpl) LookAt() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.lookAt
}

func (oc *orbitControllerImpl) SetLookAt(v mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFiniteVec3(v) {
		return
	}
	oc.targetLookAt = v
}

func (oc *orbitControllerImpl) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.camera.Position()
}

func (oc *orbitControllerImpl) SetPosition(p mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !common.IsFiniteVec3(p) {
		return
	}
	oc.targetSpherical = common.SphericalFromVec3(p).Safe()
	oc.clampRadius()
}

func (oc *orbitControllerImpl) WorldDirection() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.camera.WorldDirection()
}

func (oc *orbitControllerImpl) DirectionLerpSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.directionLerpSpeed
}

func (oc *orbitControllerImpl) SetDirectionLerpSpeed(speed float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.directionLerpSpeed = sanitizeSpeed(speed)
}

func (oc *orbitControllerImpl) PositionLerpSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.positionLerpSpeed
}

func (oc *orbitControllerImpl) SetPositionLerpSpeed(speed float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.positionLerpSpeed = sanitizeSpeed(speed)
}

func (oc *orbitControllerImpl) DistanceMin() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.distanceMin
}

func (oc *orbitControllerImpl) SetDistanceMin(min float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.distanceMin = sanitizeDistance(min)
	oc.clampRadius()
}

func (oc *orbitControllerImpl) DistanceMax() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.distanceMax
}

func (oc *orbitControllerImpl) SetDistanceMax(max float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.distanceMax = sanitizeDistance(max)
	oc.clampRadius()
}

func (oc *orbitControllerImpl) State() OrbitState {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return OrbitState{
		CurrentSpherical:   oc.spherical,
		TargetSpherical:    oc.targetSpherical,
		CurrentOffset:      oc.offset,
		TargetOffset:       oc.targetOffset,
		CurrentLookAt:      oc.lookAt,
		TargetLookAt:       oc.targetLookAt,
		DistanceMin:        oc.distanceMin,
		DistanceMax:        oc.distanceMax,
		DirectionLerpSpeed: oc.directionLerpSpeed,
		PositionLerpSpeed:  oc.positionLerpSpeed,
	}
}

func (oc *orbitControllerImpl) Camera() Camera {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.camera
}

func (oc *orbitControllerImpl) Viewport() Viewport {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.viewport
}

func (oc *orbitControllerImpl) Scene() any {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.scene
}

func (oc *orbitControllerImpl) Dispose() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.disposed = true
}

// sanitizeSpeed maps negative and non-finite smoothing rates to 0 (snap).
func sanitizeSpeed(speed float32) float32 {
	if !common.IsFinite(speed) || speed < 0 {
		return 0
	}
	return speed
}

// sanitizeDistance maps negative and non-finite distance bounds to 0.
func sanitizeDistance(d float32) float32 {
	if !common.IsFinite(d) || d < 0 {
		return 0
	}
	return d
}
