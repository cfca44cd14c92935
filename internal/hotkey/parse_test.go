package hotkey

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"win becomes super", "Win+1", "Super+1"},
		{"ctrl becomes control", "Ctrl+Shift+V", "Control+Shift+V"},
		{"both vendor spellings", "Win+Ctrl+V", "Super+Control+V"},
		{"already canonical", "Control+Shift+Comma", "Control+Shift+Comma"},
		{"comma suffix", "Ctrl+Shift+,", "Control+Shift+Comma"},
		{"shifted comma suffix", "Ctrl+Shift+<", "Control+Shift+Comma"},
		{"backquote suffix", "Alt+`", "Alt+Backquote"},
		{"tilde suffix", "Alt+~", "Alt+Backquote"},
		{"minus suffix", "Ctrl+-", "Control+Minus"},
		{"underscore suffix", "Ctrl+_", "Control+Minus"},
		{"equal suffix", "Ctrl+=", "Control+Equal"},
		{"bracket left", "Ctrl+[", "Control+BracketLeft"},
		{"bracket right shifted", "Ctrl+}", "Control+BracketRight"},
		{"backslash suffix", "Ctrl+\\", "Control+Backslash"},
		{"pipe suffix", "Ctrl+|", "Control+Backslash"},
		{"semicolon suffix", "Ctrl+;", "Control+Semicolon"},
		{"colon suffix", "Ctrl+:", "Control+Semicolon"},
		{"quote suffix", "Ctrl+'", "Control+Quote"},
		{"double quote suffix", "Ctrl+\"", "Control+Quote"},
		{"period suffix", "Ctrl+.", "Control+Period"},
		{"greater than suffix", "Ctrl+>", "Control+Period"},
		{"slash suffix", "Ctrl+/", "Control+Slash"},
		{"question mark suffix", "Ctrl+?", "Control+Slash"},
		{"symbol only at end", "Alt+V", "Alt+V"},
		{"plain letter untouched", "A", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalize(tt.in); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty descriptor", ""},
		{"trailing plus", "Ctrl+"},
		{"unknown key", "Ctrl+Frobnicate"},
		{"unknown modifier", "Hyper+A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); !errors.Is(err, ErrParseFailed) {
				t.Errorf("Parse(%q) = %v, want ErrParseFailed", tt.in, err)
			}
		})
	}
}
