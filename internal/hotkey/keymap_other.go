//go:build !windows && !linux

package hotkey

import "golang.design/x/hotkey"

// Global shortcuts are only wired up for Windows and X11. Other platforms
// reject every descriptor, which surfaces as a parse failure in the status
// table rather than a crash.

func lookupKey(token string) (hotkey.Key, bool) {
	return 0, false
}

func lookupModifier(token string) (hotkey.Modifier, bool) {
	return 0, false
}

func comboVariants(mods []hotkey.Modifier) [][]hotkey.Modifier {
	return [][]hotkey.Modifier{mods}
}
