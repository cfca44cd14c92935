//go:build windows

package hotkey

import (
	"strings"

	"golang.design/x/hotkey"
)

// Named keys beyond the letter/digit range, as Windows virtual-key codes.
// The OEM_* codes cover the symbol tokens the canonicalizer produces.
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

	"backquote":    hotkey.Key(0xC0), // VK_OEM_3
	"minus":        hotkey.Key(0xBD), // VK_OEM_MINUS
	"equal":        hotkey.Key(0xBB), // VK_OEM_PLUS
	"bracketleft":  hotkey.Key(0xDB), // VK_OEM_4
	"bracketright": hotkey.Key(0xDD), // VK_OEM_6
	"backslash":    hotkey.Key(0xDC), // VK_OEM_5
	"semicolon":    hotkey.Key(0xBA), // VK_OEM_1
	"quote":        hotkey.Key(0xDE), // VK_OEM_7
	"comma":        hotkey.Key(0xBC), // VK_OEM_COMMA
	"period":       hotkey.Key(0xBE), // VK_OEM_PERIOD
	"slash":        hotkey.Key(0xBF), // VK_OEM_2
}

func lookupKey(token string) (hotkey.Key, bool) {
	t := strings.ToLower(token)
	if len(t) == 1 {
		c := t[0]
		switch {
		case c >= 'a' && c <= 'z':
			return hotkey.Key('A' + c - 'a'), true
		case c >= '0' && c <= '9':
			return hotkey.Key(c), true
		}
		return 0, false
	}
	key, ok := namedKeys[t]
	return key, ok
}

func lookupModifier(token string) (hotkey.Modifier, bool) {
	switch strings.ToLower(token) {
	case "control", "ctrl":
		return hotkey.ModCtrl, true
	case "shift":
		return hotkey.ModShift, true
	case "alt":
		return hotkey.ModAlt, true
	case "super", "win", "cmd":
		return hotkey.ModWin, true
	}
	return 0, false
}

// comboVariants has nothing to expand on Windows; lock keys do not take part
// in RegisterHotKey matching.
func comboVariants(mods []hotkey.Modifier) [][]hotkey.Modifier {
	return [][]hotkey.Modifier{mods}
}
