package input

import (
	"fmt"
	"strings"
)

// Key is a keyboard key code. Values match raylib's KeyboardKey (and GLFW), so a
// Key converts directly to int32 for rl.IsKeyDown.
type Key int32

const (
	KeySpace        Key = 32
	KeyGrave        Key = 96
	KeyEscape       Key = 256
	KeyEnter        Key = 257
	KeyTab          Key = 258
	KeyBackspace    Key = 259
	KeyRight        Key = 262
	KeyLeft         Key = 263
	KeyDown         Key = 264
	KeyUp           Key = 265
	KeyPageUp       Key = 266
	KeyPageDown     Key = 267
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
)

var namedKeys = map[string]Key{
	"SPACE":         KeySpace,
	"GRAVE":         KeyGrave,
	"ESCAPE":        KeyEscape,
	"ENTER":         KeyEnter,
	"TAB":           KeyTab,
	"BACKSPACE":     KeyBackspace,
	"RIGHT":         KeyRight,
	"LEFT":          KeyLeft,
	"DOWN":          KeyDown,
	"UP":            KeyUp,
	"PAGE_UP":       KeyPageUp,
	"PAGE_DOWN":     KeyPageDown,
	"LEFT_SHIFT":    KeyLeftShift,
	"LEFT_CONTROL":  KeyLeftControl,
	"LEFT_ALT":      KeyLeftAlt,
	"RIGHT_SHIFT":   KeyRightShift,
	"RIGHT_CONTROL": KeyRightControl,
	"RIGHT_ALT":     KeyRightAlt,
}

// ParseKey accepts a single letter or digit ("W", "7") or a named key
// ("LEFT_SHIFT", "up"). Dashes and spaces are read as underscores.
func ParseKey(name string) (Key, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	if len(n) == 1 {
		c := n[0]
		if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			return Key(c), nil
		}
	}
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

func (k Key) String() string {
	if k >= 'A' && k <= 'Z' || k >= '0' && k <= '9' {
		return string(rune(k))
	}
	for name, v := range namedKeys {
		if v == k {
			return name
		}
	}
	return fmt.Sprintf("key(%d)", int32(k))
}
