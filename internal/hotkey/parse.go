package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Combo is the canonical, platform-resolved form of a shortcut descriptor.
type Combo struct {
	// Canonical is the normalized descriptor string, e.g. "Control+Shift+Comma".
	Canonical string

	Mods []hotkey.Modifier
	Key  hotkey.Key
}

// symbolSuffixes rewrites a trailing literal symbol character into the named
// key token the platform keymaps understand. Settings editors capture the
// literal character the keyboard produced, including the shifted variants,
// so both spellings of each physical key map to the same token. Only the
// first matching rule is applied.
var symbolSuffixes = []struct{ from, to string }{
	{"+`", "+Backquote"},
	{"+-", "+Minus"},
	{"+=", "+Equal"},
	{"+[", "+BracketLeft"},
	{"+]", "+BracketRight"},
	{"+\\", "+Backslash"},
	{"+;", "+Semicolon"},
	{"+'", "+Quote"},
	{"+,", "+Comma"},
	{"+.", "+Period"},
	{"+/", "+Slash"},
	// Shifted variants of the same physical keys.
	{"+~", "+Backquote"},
	{"+_", "+Minus"},
	{"+{", "+BracketLeft"},
	{"+}", "+BracketRight"},
	{"+|", "+Backslash"},
	{"+:", "+Semicolon"},
	{"+\"", "+Quote"},
	{"+<", "+Comma"},
	{"+>", "+Period"},
	{"+?", "+Slash"},
}

// Canonicalize normalizes a human-authored descriptor without touching any
// registration state: vendor modifier spellings are renamed and a trailing
// symbol character is replaced by its named key token.
func Canonicalize(descriptor string) string {
	s := strings.ReplaceAll(descriptor, "Win+", "Super+")
	s = strings.ReplaceAll(s, "Ctrl+", "Control+")
	for _, rule := range symbolSuffixes {
		if strings.HasSuffix(s, rule.from) {
			s = s[:len(s)-len(rule.from)] + rule.to
			break
		}
	}
	return s
}

// Parse converts a descriptor like "Ctrl+Shift+V" into a Combo. Parsing is
// pure; a descriptor that cannot be resolved fails once with ErrParseFailed
// and is never retried.
func Parse(descriptor string) (Combo, error) {
	canonical := Canonicalize(descriptor)

	parts := strings.Split(canonical, "+")
	keyStr := parts[len(parts)-1]
	if keyStr == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key token", ErrParseFailed, descriptor)
	}

	key, ok := lookupKey(keyStr)
	if !ok {
		return Combo{}, fmt.Errorf("%w: unsupported key %q", ErrParseFailed, keyStr)
	}

	var mods []hotkey.Modifier
	for _, part := range parts[:len(parts)-1] {
		mod, ok := lookupModifier(part)
		if !ok {
			return Combo{}, fmt.Errorf("%w: unsupported modifier %q", ErrParseFailed, part)
		}
		mods = append(mods, mod)
	}

	return Combo{Canonical: canonical, Mods: mods, Key: key}, nil
}
