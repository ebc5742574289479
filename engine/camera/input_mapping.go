package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// PointerState is the polled input an InputMapping reads each frame.
// input.Input satisfies it.
type PointerState interface {
	MouseDown(button common.MouseButton) bool
	MouseDelta() mgl32.Vec2
	MouseWheel() float32
	Down(code string) (bool, error)
}

// InputMapping turns polled pointer/keyboard state into an InputSnapshot:
// dragging with RotateButton orbits, dragging with MoveButton pans, and the wheel plus the
// zoom keys change the radius.
type InputMapping struct {
	RotateButton common.MouseButton
	MoveButton   common.MouseButton

	// ZoomInKey and ZoomOutKey are key names understood by PointerState.Down. Empty disables the key.
	ZoomInKey  string
	ZoomOutKey string

	// KeyZoomStep is the wheel-equivalent amount a held zoom key contributes per frame.
	KeyZoomStep float32

	ZoomScale   float32
	RotateScale float32
	MoveScale   float32
}

// DefaultInputMapping returns the standard control scheme: right drag rotates, left drag pans,
// wheel and PageUp/PageDown zoom.
//
// Returns:
//   - InputMapping: the default mapping
func DefaultInputMapping() InputMapping {
	return InputMapping{
		RotateButton: common.MouseRight,
		MoveButton:   common.MouseLeft,
		ZoomInKey:    "page_up",
		ZoomOutKey:   "page_down",
		KeyZoomStep:  10,
		ZoomScale:    10,
		RotateScale:  1,
		MoveScale:    10,
	}
}

// Validate checks that every key name in the mapping is understood by in.
//
// Parameters:
//   - in: the input state the mapping will read
//
// Returns:
//   - error: an error wrapping common.ErrInvalidArgument naming the first unresolvable key
func (m InputMapping) Validate(in PointerState) error {
	for _, code := range []string{m.ZoomInKey, m.ZoomOutKey} {
		if code == "" {
			continue
		}
		if _, err := in.Down(code); err != nil {
			return errors.Wrapf(err, "input mapping key %q", code)
		}
	}
	return nil
}

// Snapshot builds the InputSnapshot for the current frame.
// Unresolvable zoom keys contribute nothing.
//
// Parameters:
//   - in: the polled input state
//   - dt: seconds since the previous frame
//
// Returns:
//   - InputSnapshot: the frame's controller input
func (m InputMapping) Snapshot(in PointerState, dt float32) InputSnapshot {
	snap := InputSnapshot{DeltaTime: dt}
	delta := in.MouseDelta()

	if in.MouseDown(m.RotateButton) {
		snap.RotateHorizontally = -delta.X() * m.RotateScale
		snap.RotateVertically = -delta.Y() * m.RotateScale
	}

	if in.MouseDown(m.MoveButton) {
		snap.MoveOffsetHorizontally = delta.X() * m.MoveScale
		snap.MoveOffsetVertically = -delta.Y() * m.MoveScale
	}

	zoom := in.MouseWheel()
	if m.keyDown(in, m.ZoomInKey) {
		zoom -= m.KeyZoomStep
	} else if m.keyDown(in, m.ZoomOutKey) {
		zoom += m.KeyZoomStep
	}
	snap.Zoom = zoom * m.ZoomScale

	return snap
}

func (m InputMapping) keyDown(in PointerState, code string) bool {
	if code == "" {
		return false
	}
	down, err := in.Down(code)
	return err == nil && down
}
