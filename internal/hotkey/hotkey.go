package hotkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Handler runs on its own goroutine each time the hotkey fires.
type Handler func()

// Modifier bits, numerically equal to the Win32 MOD_* flags.
const (
	ModAlt   uint32 = 0x0001
	ModCtrl  uint32 = 0x0002
	ModShift uint32 = 0x0004
	ModWin   uint32 = 0x0008
)

var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

// Combo is a parsed key combination. Key is a Windows virtual-key code.
type Combo struct {
	Modifiers uint32
	Key       uint32
}

var (
	handlerMu      sync.Mutex
	currentHandler Handler
)

// Register binds hotkey system-wide until Unregister is called.
func Register(hotkey string, handler Handler) error {
	combo, err := Parse(hotkey)
	if err != nil {
		return err
	}
	setHandler(handler)
	return register(combo)
}

func Unregister() {
	unregister()
}

func setHandler(h Handler) {
	handlerMu.Lock()
	currentHandler = h
	handlerMu.Unlock()
}

func fire() bool {
	handlerMu.Lock()
	h := currentHandler
	handlerMu.Unlock()
	if h == nil {
		return false
	}
	go h()
	return true
}

var namedKeys = map[string]uint32{
	"PRINTSCREEN": 0x2C,
	"PRTSC":       0x2C,
	"ESC":         0x1B,
	"ESCAPE":      0x1B,
	"SPACE":       0x20,
	"PAUSE":       0x13,
	"INSERT":      0x2D,
}

// Parse reads combinations such as "Ctrl+Shift+S", "Alt+F9" or
// "PrintScreen". Names are case-insensitive; exactly one non-modifier key
// is required.
func Parse(s string) (Combo, error) {
	var c Combo
	var haveKey bool
	for _, part := range strings.Split(s, "+") {
		name := strings.ToUpper(strings.TrimSpace(part))
		switch name {
		case "":
			return Combo{}, fmt.Errorf("invalid hotkey %q: empty key name", s)
		case "CTRL", "CONTROL":
			c.Modifiers |= ModCtrl
			continue
		case "ALT":
			c.Modifiers |= ModAlt
			continue
		case "SHIFT":
			c.Modifiers |= ModShift
			continue
		case "WIN":
			c.Modifiers |= ModWin
			continue
		}

		if haveKey {
			return Combo{}, fmt.Errorf("invalid hotkey %q: more than one key", s)
		}
		vk, ok := keyCode(name)
		if !ok {
			return Combo{}, fmt.Errorf("unsupported hotkey: %s", s)
		}
		c.Key = vk
		haveKey = true
	}
	if !haveKey {
		return Combo{}, fmt.Errorf("invalid hotkey %q: no key", s)
	}
	return c, nil
}

func keyCode(name string) (uint32, bool) {
	if len(name) == 1 {
		ch := name[0]
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return uint32(ch), true
		}
		return 0, false
	}
	if vk, ok := namedKeys[name]; ok {
		return vk, true
	}
	if strings.HasPrefix(name, "F") {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 1 && n <= 12 {
			return 0x70 + uint32(n-1), true
		}
	}
	return 0, false
}
