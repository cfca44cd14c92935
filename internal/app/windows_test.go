package app

import (
	"strings"
	"testing"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short text untouched", "hello world", "hello world"},
		{"newlines flattened", "line one\nline two\ttabbed", "line one line two tabbed"},
		{"runs of spaces collapsed", "a    b", "a b"},
		{"truncated with ellipsis", strings.Repeat("x", 60), strings.Repeat("x", 48) + "…"},
		{"exactly at limit", strings.Repeat("y", 48), strings.Repeat("y", 48)},
		{"multibyte safe", strings.Repeat("ü", 60), strings.Repeat("ü", 48) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snippet(tt.in); got != tt.want {
				t.Errorf("snippet(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
