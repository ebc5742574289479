package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// InputSnapshot is one frame of input for OrbitController.Update.
// Every field except DeltaTime is a rate: Update multiplies it by DeltaTime before adding it to
// the target state. Zero values mean "no input" for that channel.
type InputSnapshot struct {
	// DeltaTime is the time in seconds since the previous Update call.
	DeltaTime float32

	// RotateHorizontally is the azimuth rate in radians per second.
	RotateHorizontally float32

	// RotateVertically is the polar rate in radians per second.
	RotateVertically float32

	// Zoom is the radius rate in world units per second (negative moves closer).
	Zoom float32

	// MoveTarget is a world-space offset velocity.
	MoveTarget mgl32.Vec3

	// MoveOffsetHorizontally is a view-relative sideways velocity (positive = camera left).
	MoveOffsetHorizontally float32

	// MoveOffsetVertically is a view-relative vertical velocity.
	MoveOffsetVertically float32
}

// Sanitized returns a copy of the snapshot that is safe to combine numerically:
// NaN and infinite values become 0 and a negative DeltaTime becomes 0.
//
// Returns:
//   - InputSnapshot: the sanitized copy
func (s InputSnapshot) Sanitized() InputSnapshot {
	out := InputSnapshot{
		DeltaTime:              common.FiniteOr(s.DeltaTime, 0),
		RotateHorizontally:     common.FiniteOr(s.RotateHorizontally, 0),
		RotateVertically:       common.FiniteOr(s.RotateVertically, 0),
		Zoom:                   common.FiniteOr(s.Zoom, 0),
		MoveOffsetHorizontally: common.FiniteOr(s.MoveOffsetHorizontally, 0),
		MoveOffsetVertically:   common.FiniteOr(s.MoveOffsetVertically, 0),
	}
	if out.DeltaTime < 0 {
		out.DeltaTime = 0
	}
	if common.IsFiniteVec3(s.MoveTarget) {
		out.MoveTarget = s.MoveTarget
	}
	return out
}

// IsIdle reports whether the snapshot carries no deltas besides DeltaTime.
func (s InputSnapshot) IsIdle() bool {
	return s.RotateHorizontally == 0 &&
		s.RotateVertically == 0 &&
		s.Zoom == 0 &&
		s.MoveTarget == (mgl32.Vec3{}) &&
		s.MoveOffsetHorizontally == 0 &&
		s.MoveOffsetVertically == 0
}
