//go:build !windows

package app

import (
	"os"
	"os/exec"
	"strings"
)

// foregroundWindowTitle returns the title of the active window via xdotool
// on X11, or "" when it cannot be determined.
func foregroundWindowTitle() string {
	if os.Getenv("DISPLAY") == "" {
		return ""
	}
	out, err := exec.Command("xdotool", "getactivewindow", "getwindowname").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
