package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is a state-based input manager. Platform events are fed in through the On* methods and
// the frame loop queries the resulting state; EndFrame must be called once at the end of every
// frame so that pressed/released edges, mouse delta and wheel are measured per frame.
type Input interface {
	// OnMouseDown records a mouse button press.
	//
	// Parameters:
	//   - button: the pressed button
	OnMouseDown(button common.MouseButton)

	// OnMouseUp records a mouse button release.
	//
	// Parameters:
	//   - button: the released button
	OnMouseUp(button common.MouseButton)

	// OnMouseMove records the cursor position in window coordinates.
	//
	// Parameters:
	//   - x: cursor x position
	//   - y: cursor y position
	OnMouseMove(x, y float32)

	// OnMouseWheel accumulates a wheel delta until the next EndFrame.
	// Positive values scroll down (away from the user).
	//
	// Parameters:
	//   - delta: the wheel delta
	OnMouseWheel(delta float32)

	// OnKeyDown records a key press. Repeated presses are idempotent.
	//
	// Parameters:
	//   - key: the pressed key
	OnKeyDown(key common.Key)

	// OnKeyUp records a key release.
	//
	// Parameters:
	//   - key: the released key
	OnKeyUp(key common.Key)

	// OnBlur handles focus loss. All state is cleared when ResetOnFocusLoss is enabled,
	// so keys held while focus moves away do not stay down.
	OnBlur()

	// MousePosition returns the current cursor position.
	//
	// Returns:
	//   - mgl32.Vec2: cursor position in window coordinates
	MousePosition() mgl32.Vec2

	// PrevMousePosition returns the cursor position at the last EndFrame,
	// or the current position if EndFrame has not been called yet.
	//
	// Returns:
	//   - mgl32.Vec2: previous cursor position
	PrevMousePosition() mgl32.Vec2

	// MouseDelta returns the cursor movement since the last EndFrame.
	// Before the first EndFrame the delta is (0, 0).
	//
	// Returns:
	//   - mgl32.Vec2: cursor movement
	MouseDelta() mgl32.Vec2

	// MouseMoving reports whether the cursor moved since the last EndFrame.
	MouseMoving() bool

	// MousePressed reports whether button went down this frame.
	MousePressed(button common.MouseButton) bool

	// MouseDown reports whether button is currently held.
	MouseDown(button common.MouseButton) bool

	// MouseUp reports whether button is currently not held.
	MouseUp(button common.MouseButton) bool

	// MouseReleased reports whether button was released this frame.
	MouseReleased(button common.MouseButton) bool

	// KeyDown reports whether key is currently held.
	KeyDown(key common.Key) bool

	// KeyUp reports whether key is currently not held.
	KeyUp(key common.Key) bool

	// KeyPressed reports whether key went down this frame.
	KeyPressed(key common.Key) bool

	// KeyReleased reports whether key was released this frame.
	KeyReleased(key common.Key) bool

	// ShiftDown reports whether either shift key is held.
	ShiftDown() bool

	// CtrlDown reports whether either control key is held.
	CtrlDown() bool

	// AltDown reports whether either alt key is held.
	AltDown() bool

	// AnyKeyDown reports whether any key is held.
	AnyKeyDown() bool

	// MouseWheel returns the wheel delta accumulated since the last EndFrame.
	//
	// Returns:
	//   - float32: the accumulated wheel delta (positive = scroll down)
	MouseWheel() float32

	// MouseWheelDirection returns the sign of MouseWheel.
	//
	// Returns:
	//   - int: -1, 0 or 1
	MouseWheelDirection() int

	// Down reports whether the named mouse button or key is held.
	// Codes are mouse_left, mouse_middle, mouse_right, or a key name such as "a", "7",
	// "page_up", "left_arrow", "f1" or "numpad_0". "shift", "ctrl" and "alt" match either side.
	//
	// Parameters:
	//   - code: the mouse or key code name
	//
	// Returns:
	//   - bool: true if held
	//   - error: an error wrapping common.ErrInvalidArgument if code is empty or unknown
	Down(code string) (bool, error)

	// Pressed reports whether the named mouse button or key went down this frame.
	// Accepts the same codes as Down.
	Pressed(code string) (bool, error)

	// Released reports whether the named mouse button or key was released this frame.
	// Accepts the same codes as Down.
	Released(code string) (bool, error)

	// EndFrame closes the current frame: the previous cursor position and button/key states
	// become copies of the current ones and the wheel is reset. Held state persists.
	EndFrame()

	// Reset clears all state as if no events had been received.
	Reset()

	// Dispose clears all state and detaches the manager; further events are ignored.
	Dispose()
}

type inputImpl struct {
	mu *sync.Mutex

	mousePos     mgl32.Vec2
	mousePrevPos mgl32.Vec2
	hasPrevPos   bool

	mouseState     map[common.MouseButton]bool
	mousePrevState map[common.MouseButton]bool
	mouseWheel     float32

	keyState     map[common.Key]bool
	keyPrevState map[common.Key]bool

	resetOnFocusLoss bool
	disposed         bool
}

var _ Input = &inputImpl{}

// NewInput creates a new input manager with the provided options.
// Focus loss resets all state by default.
//
// Parameters:
//   - options: functional options to configure the input manager
//
// Returns:
//   - Input: the newly created input manager
func NewInput(options ...InputBuilderOption) Input {
	in := &inputImpl{
		mu:               &sync.Mutex{},
		resetOnFocusLoss: true,
	}
	for _, option := range options {
		option(in)
	}
	in.resetAll()
	return in
}

// resetAll clears every state table.
// Caller must hold the mutex.
func (in *inputImpl) resetAll() {
	in.mousePos = mgl32.Vec2{}
	in.mousePrevPos = mgl32.Vec2{}
	in.hasPrevPos = false
	in.mouseState = make(map[common.MouseButton]bool)
	in.mousePrevState = make(map[common.MouseButton]bool)
	in.mouseWheel = 0
	in.keyState = make(map[common.Key]bool)
	in.keyPrevState = make(map[common.Key]bool)
}

func (in *inputImpl) OnMouseDown(button common.MouseButton) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed {
		return
	}
	in.mouseState[button] = true
}

func (in *inputImpl) OnMouseUp(button common.MouseButton) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed {
		return
	}
	in.mouseState[button] = false
}

func (in *inputImpl) OnMouseMove(x, y float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed || !common.IsFinite(x) || !common.IsFinite(y) {
		return
	}
	in.mousePos = mgl32.Vec2{x, y}
}

func (in *inputImpl) OnMouseWheel(delta float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed || !common.IsFinite(delta) {
		return
	}
	in.mouseWheel += delta
}

func (in *inputImpl) OnKeyDown(key common.Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed {
		return
	}
	in.keyState[key] = true
}

func (in *inputImpl) OnKeyUp(key common.Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed {
		return
	}
	in.keyState[key] = false
}

func (in *inputImpl) OnBlur() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.disposed || !in.resetOnFocusLoss {
		return
	}
	in.resetAll()
}

func (in *inputImpl) MousePosition() mgl32.Vec2 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mousePos
}

func (in *inputImpl) PrevMousePosition() mgl32.Vec2 {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.hasPrevPos {
		return in.mousePos
	}
	return in.mousePrevPos
}

func (in *inputImpl) MouseDelta() mgl32.Vec2 {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.hasPrevPos {
		return mgl32.Vec2{}
	}
	return in.mousePos.Sub(in.mousePrevPos)
}

func (in *inputImpl) MouseMoving() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hasPrevPos && in.mousePrevPos != in.mousePos
}

func (in *inputImpl) MousePressed(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mouseState[button] && !in.mousePrevState[button]
}

func (in *inputImpl) MouseDown(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mouseState[button]
}

func (in *inputImpl) MouseUp(button common.MouseButton) bool {
	return !in.MouseDown(button)
}

func (in *inputImpl) MouseReleased(button common.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return !in.mouseState[button] && in.mousePrevState[button]
}

func (in *inputImpl) KeyDown(key common.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keyState[key]
}

func (in *inputImpl) KeyUp(key common.Key) bool {
	return !in.KeyDown(key)
}

func (in *inputImpl) KeyPressed(key common.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keyState[key] && !in.keyPrevState[key]
}

func (in *inputImpl) KeyReleased(key common.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return !in.keyState[key] && in.keyPrevState[key]
}

func (in *inputImpl) ShiftDown() bool {
	return in.KeyDown(common.KeyLeftShift) || in.KeyDown(common.KeyRightShift)
}

func (in *inputImpl) CtrlDown() bool {
	return in.KeyDown(common.KeyLeftControl) || in.KeyDown(common.KeyRightControl)
}

func (in *inputImpl) AltDown() bool {
	return in.KeyDown(common.KeyLeftAlt) || in.KeyDown(common.KeyRightAlt)
}

func (in *inputImpl) AnyKeyDown() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, down := range in.keyState {
		if down {
			return true
		}
	}
	return false
}

func (in *inputImpl) MouseWheel() float32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mouseWheel
}

func (in *inputImpl) MouseWheelDirection() int {
	w := in.MouseWheel()
	switch {
	case w > 0:
		return 1
	case w < 0:
		return -1
	default:
		return 0
	}
}

func (in *inputImpl) Down(name string) (bool, error) {
	return in.query(name, in.MouseDown, in.KeyDown)
}

func (in *inputImpl) Pressed(name string) (bool, error) {
	return in.query(name, in.MousePressed, in.KeyPressed)
}

func (in *inputImpl) Released(name string) (bool, error) {
	return in.query(name, in.MouseReleased, in.KeyReleased)
}

// query resolves name and evaluates the mouse or key check against it.
// A multi-key code (a modifier alias) is true if any of its keys is.
func (in *inputImpl) query(name string, mouseCheck func(common.MouseButton) bool, keyCheck func(common.Key) bool) (bool, error) {
	c, err := resolve(name)
	if err != nil {
		return false, err
	}
	if c.mouse {
		return mouseCheck(c.button), nil
	}
	for _, k := range c.keys {
		if keyCheck(k) {
			return true, nil
		}
	}
	return false, nil
}

func (in *inputImpl) EndFrame() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.mousePrevPos = in.mousePos
	in.hasPrevPos = true

	in.keyPrevState = make(map[common.Key]bool, len(in.keyState))
	for k, v := range in.keyState {
		in.keyPrevState[k] = v
	}

	in.mousePrevState = make(map[common.MouseButton]bool, len(in.mouseState))
	for b, v := range in.mouseState {
		in.mousePrevState[b] = v
	}

	in.mouseWheel = 0
}

func (in *inputImpl) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.resetAll()
}

func (in *inputImpl) Dispose() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.resetAll()
	in.disposed = true
}
