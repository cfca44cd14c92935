//go:build linux

package hotkey

import (
	"strings"

	"golang.design/x/hotkey"
)

// X11 keysyms for the named keys the canonicalizer produces. The Latin-1
// symbol keysyms coincide with their ASCII codes.
var namedKeys = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"tab":    hotkey.KeyTab,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"delete": hotkey.KeyDelete,

	"f1":  hotkey.KeyF1,
	"f2":  hotkey.KeyF2,
	"f3":  hotkey.KeyF3,
	"f4":  hotkey.KeyF4,
	"f5":  hotkey.KeyF5,
	"f6":  hotkey.KeyF6,
	"f7":  hotkey.KeyF7,
	"f8":  hotkey.KeyF8,
	"f9":  hotkey.KeyF9,
	"f10": hotkey.KeyF10,
	"f11": hotkey.KeyF11,
	"f12": hotkey.KeyF12,

	"backquote":    hotkey.Key(0x0060), // XK_grave
	"minus":        hotkey.Key(0x002d), // XK_minus
	"equal":        hotkey.Key(0x003d), // XK_equal
	"bracketleft":  hotkey.Key(0x005b), // XK_bracketleft
	"bracketright": hotkey.Key(0x005d), // XK_bracketright
	"backslash":    hotkey.Key(0x005c), // XK_backslash
	"semicolon":    hotkey.Key(0x003b), // XK_semicolon
	"quote":        hotkey.Key(0x0027), // XK_apostrophe
	"comma":        hotkey.Key(0x002c), // XK_comma
	"period":       hotkey.Key(0x002e), // XK_period
	"slash":        hotkey.Key(0x002f), // XK_slash
}

func lookupKey(token string) (hotkey.Key, bool) {
	t := strings.ToLower(token)
	if len(t) == 1 {
		c := t[0]
		switch {
		case c >= 'a' && c <= 'z':
			return hotkey.Key(c), true
		case c >= '0' && c <= '9':
			return hotkey.Key(c), true
		}
		return 0, false
	}
	key, ok := namedKeys[t]
	return key, ok
}

// X11 modifier mapping: Alt is typically Mod1, Super/Win is typically Mod4.
func lookupModifier(token string) (hotkey.Modifier, bool) {
	switch strings.ToLower(token) {
	case "control", "ctrl":
		return hotkey.ModCtrl, true
	case "shift":
		return hotkey.ModShift, true
	case "alt":
		return hotkey.Mod1, true
	case "super", "win", "cmd":
		return hotkey.Mod4, true
	}
	return 0, false
}

// CapsLock is LockMask (1<<1); NumLock is usually Mod2. Neither is exposed
// as a named constant by golang.design/x/hotkey.
const linuxCapsLockMask hotkey.Modifier = 1 << 1

// comboVariants registers the same combination for the common lock-modifier
// states so a grab still matches while NumLock/CapsLock are enabled.
func comboVariants(mods []hotkey.Modifier) [][]hotkey.Modifier {
	base := append([]hotkey.Modifier(nil), mods...)
	withNum := append(append([]hotkey.Modifier(nil), mods...), hotkey.Mod2)
	withCaps := append(append([]hotkey.Modifier(nil), mods...), linuxCapsLockMask)
	withBoth := append(append([]hotkey.Modifier(nil), mods...), hotkey.Mod2, linuxCapsLockMask)

	return [][]hotkey.Modifier{base, withNum, withCaps, withBoth}
}
