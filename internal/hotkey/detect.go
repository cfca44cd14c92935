package hotkey

import (
	"log"
	"os"
	"runtime"
)

// DisplayServer represents the type of display server in use.
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerX11
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// DetectDisplayServer determines which display server is currently in use.
// Safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	if runtime.GOOS == "windows" {
		return DisplayServerWindows
	}

	// Check Wayland first (more specific).
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}

	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}

	// macOS uses its own system; golang.design/x/hotkey supports it, so we
	// treat it as X11-compatible for backend selection.
	if runtime.GOOS == "darwin" {
		return DisplayServerX11
	}

	log.Println("Warning: could not detect display server type")
	return DisplayServerUnknown
}

// HasPortalSupport checks whether XDG Desktop Portal might be available,
// which would be the route to Wayland global shortcuts.
func HasPortalSupport() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		log.Println("D-Bus session bus not available (DBUS_SESSION_BUS_ADDRESS not set)")
		return false
	}

	return true
}
