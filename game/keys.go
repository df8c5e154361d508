package game

import (
	"errors"
	"fmt"
	"strings"
)

// Key is a keyboard key code. Values match raylib's (GLFW) key codes.
type Key int32

// Keyboard keys used by the game and its config.
const (
	KeyNull   Key = 0
	KeySpace  Key = 32
	KeyZero   Key = 48
	KeyOne    Key = 49
	KeyNine   Key = 57
	KeyA      Key = 65
	KeyD      Key = 68
	KeyS      Key = 83
	KeyW      Key = 87
	KeyZ      Key = 90
	KeyEscape Key = 256
	KeyEnter  Key = 257
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
	KeyF1     Key = 290
	KeyF3     Key = 292
	KeyF12    Key = 301
)

// ErrUnknownKey is returned by ParseKey for names it does not know.
var ErrUnknownKey = errors.New("unknown key")

var namedKeys = map[string]Key{
	"space":  KeySpace,
	"escape": KeyEscape,
	"enter":  KeyEnter,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
}

// ParseKey converts a config key name ("w", "f3", "space", "7") to a Key.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	if len(n) == 1 {
		switch c := n[0]; {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return KeyZero + Key(c-'0'), nil
		}
	}
	var fn int
	if _, err := fmt.Sscanf(n, "f%d", &fn); err == nil && fn >= 1 && fn <= 12 && n == fmt.Sprintf("f%d", fn) {
		return KeyF1 + Key(fn-1), nil
	}
	return KeyNull, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// String returns the config name of the key.
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + (k - KeyA)))
	case k >= KeyZero && k <= KeyNine:
		return string(rune('0' + (k - KeyZero)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("f%d", k-KeyF1+1)
	}
	for name, v := range namedKeys {
		if v == k {
			return name
		}
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// Digit returns the number on a digit key and whether k is one.
func (k Key) Digit() (int, bool) {
	if k >= KeyZero && k <= KeyNine {
		return int(k - KeyZero), true
	}
	return 0, false
}
