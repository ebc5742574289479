package input

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/pkg/errors"
)

const mousePrefix = "mouse_"

var mouseButtonNames = map[string]common.MouseButton{
	"left":   common.MouseLeft,
	"middle": common.MouseMiddle,
	"right":  common.MouseRight,
}

// modifierNames are key names that match either the left or the right variant.
var modifierNames = map[string][2]common.Key{
	"shift": {common.KeyLeftShift, common.KeyRightShift},
	"ctrl":  {common.KeyLeftControl, common.KeyRightControl},
	"alt":   {common.KeyLeftAlt, common.KeyRightAlt},
}

var keyNames = map[string]common.Key{
	"backspace":   common.KeyBackspace,
	"tab":         common.KeyTab,
	"enter":       common.KeyEnter,
	"break":       common.KeyPause,
	"caps_lock":   common.KeyCapsLock,
	"escape":      common.KeyEsc,
	"space":       common.KeySpace,
	"page_up":     common.KeyPageUp,
	"page_down":   common.KeyPageDown,
	"end":         common.KeyEnd,
	"home":        common.KeyHome,
	"left_arrow":  common.KeyLeft,
	"up_arrow":    common.KeyUp,
	"right_arrow": common.KeyRight,
	"down_arrow":  common.KeyDown,
	"insert":      common.KeyInsert,
	"delete":      common.KeyDelete,

	"left_shift":  common.KeyLeftShift,
	"right_shift": common.KeyRightShift,
	"left_ctrl":   common.KeyLeftControl,
	"right_ctrl":  common.KeyRightControl,
	"left_alt":    common.KeyLeftAlt,
	"right_alt":   common.KeyRightAlt,

	"left_window_key":  common.KeyLeftSuper,
	"right_window_key": common.KeyRightSuper,
	"select_key":       common.KeyMenu,

	"numpad_0":      common.KeyKP0,
	"numpad_1":      common.KeyKP1,
	"numpad_2":      common.KeyKP2,
	"numpad_3":      common.KeyKP3,
	"numpad_4":      common.KeyKP4,
	"numpad_5":      common.KeyKP5,
	"numpad_6":      common.KeyKP6,
	"numpad_7":      common.KeyKP7,
	"numpad_8":      common.KeyKP8,
	"numpad_9":      common.KeyKP9,
	"multiply":      common.KeyKPMultiply,
	"add":           common.KeyKPAdd,
	"subtract":      common.KeyKPSubtract,
	"decimal_point": common.KeyKPDecimal,
	"divide":        common.KeyKPDivide,

	"f1":  common.KeyF1,
	"f2":  common.KeyF2,
	"f3":  common.KeyF3,
	"f4":  common.KeyF4,
	"f5":  common.KeyF5,
	"f6":  common.KeyF6,
	"f7":  common.KeyF7,
	"f8":  common.KeyF8,
	"f9":  common.KeyF9,
	"f10": common.KeyF10,
	"f11": common.KeyF11,
	"f12": common.KeyF12,

	"numlock":       common.KeyNumLock,
	"scroll_lock":   common.KeyScrollLock,
	"semicolon":     common.KeySemicolon,
	"equal_sign":    common.KeyEqual,
	"comma":         common.KeyComma,
	"dash":          common.KeyMinus,
	"period":        common.KeyPeriod,
	"forward_slash": common.KeySlash,
	"grave_accent":  common.KeyGraveAccent,
	"open_bracket":  common.KeyLeftBracket,
	"back_slash":    common.KeyBackslash,
	"close_braket":  common.KeyRightBracket,
	"single_quote":  common.KeyApostrophe,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = common.KeyA + common.Key(c-'a')
	}
	for d := '0'; d <= '9'; d++ {
		keyNames[string(d)] = common.Key0 + common.Key(d-'0')
		keyNames["n"+string(d)] = common.Key0 + common.Key(d-'0')
	}
}

// code is a resolved input code: either a mouse button or one or more keys.
type code struct {
	mouse  bool
	button common.MouseButton
	keys   []common.Key
}

// resolve maps a named input code to the buttons or keys it refers to.
func resolve(name string) (code, error) {
	if name == "" {
		return code{}, errors.Wrap(common.ErrInvalidArgument, "empty input code")
	}
	if strings.HasPrefix(name, mousePrefix) {
		b, err := ParseMouseButton(name)
		if err != nil {
			return code{}, err
		}
		return code{mouse: true, button: b}, nil
	}
	if pair, ok := modifierNames[name]; ok {
		return code{keys: pair[:]}, nil
	}
	k, ok := keyNames[name]
	if !ok {
		return code{}, errors.Wrapf(common.ErrInvalidArgument, "unknown input code %q", name)
	}
	return code{keys: []common.Key{k}}, nil
}

// ParseMouseButton resolves a mouse code name (mouse_left, mouse_middle or mouse_right).
//
// Parameters:
//   - name: the mouse code name
//
// Returns:
//   - common.MouseButton: the button code
//   - error: an error wrapping common.ErrInvalidArgument if the name is not a mouse code
func ParseMouseButton(name string) (common.MouseButton, error) {
	if !strings.HasPrefix(name, mousePrefix) {
		return 0, errors.Wrapf(common.ErrInvalidArgument, "not a mouse code %q", name)
	}
	b, ok := mouseButtonNames[strings.TrimPrefix(name, mousePrefix)]
	if !ok {
		return 0, errors.Wrapf(common.ErrInvalidArgument, "unknown mouse button %q", name)
	}
	return b, nil
}

// ParseKey resolves a key name such as "a", "7", "page_up" or "f1".
// Modifier names that match either side ("shift", "ctrl", "alt") resolve to the left key.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - common.Key: the key code
//   - error: an error wrapping common.ErrInvalidArgument if the name is empty or unknown
func ParseKey(name string) (common.Key, error) {
	c, err := resolve(name)
	if err != nil {
		return 0, err
	}
	if c.mouse {
		return 0, errors.Wrapf(common.ErrInvalidArgument, "not a key code %q", name)
	}
	return c.keys[0], nil
}

// ValidateCode reports whether name is understood by the named queries (Down, Pressed, Released).
//
// Parameters:
//   - name: a mouse or key code name
//
// Returns:
//   - error: an error wrapping common.ErrInvalidArgument if the name is empty or unknown
func ValidateCode(name string) error {
	_, err := resolve(name)
	return err
}
