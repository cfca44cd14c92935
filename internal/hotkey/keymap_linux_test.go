//go:build linux

package hotkey

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestComboVariantsCoverLockMasks(t *testing.T) {
	mods := []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
	variants := comboVariants(mods)

	if len(variants) != 4 {
		t.Fatalf("want 4 lock-state variants, got %d", len(variants))
	}
	if len(variants[0]) != 2 {
		t.Errorf("base variant altered: %v", variants[0])
	}
	for i, v := range variants {
		if v[0] != hotkey.ModCtrl || v[1] != hotkey.ModShift {
			t.Errorf("variant %d lost the original modifiers: %v", i, v)
		}
	}
	if variants[1][2] != hotkey.Mod2 {
		t.Errorf("second variant should add NumLock, got %v", variants[1])
	}
	if variants[2][2] != linuxCapsLockMask {
		t.Errorf("third variant should add CapsLock, got %v", variants[2])
	}
	if len(variants[3]) != 4 {
		t.Errorf("fourth variant should add both lock masks, got %v", variants[3])
	}
}

func TestDetectDisplayServer(t *testing.T) {
	t.Run("wayland wins over x11", func(t *testing.T) {
		t.Setenv("WAYLAND_DISPLAY", "wayland-0")
		t.Setenv("DISPLAY", ":0")
		if ds := DetectDisplayServer(); ds != DisplayServerWayland {
			t.Errorf("got %v, want Wayland", ds)
		}
	})
	t.Run("x11", func(t *testing.T) {
		t.Setenv("WAYLAND_DISPLAY", "")
		t.Setenv("DISPLAY", ":0")
		if ds := DetectDisplayServer(); ds != DisplayServerX11 {
			t.Errorf("got %v, want X11", ds)
		}
	})
	t.Run("none", func(t *testing.T) {
		t.Setenv("WAYLAND_DISPLAY", "")
		t.Setenv("DISPLAY", "")
		if ds := DetectDisplayServer(); ds != DisplayServerUnknown {
			t.Errorf("got %v, want Unknown", ds)
		}
	})
}
