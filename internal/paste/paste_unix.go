//go:build !windows

package paste

import (
	"fmt"
	"log"
	"os/exec"
)

// simulatePlatformPaste sends the paste keystroke on Linux and macOS, trying
// the tools for each display stack in turn.
func simulatePlatformPaste() error {
	// xdotool (Linux X11).
	if err := exec.Command("xdotool", "key", "ctrl+v").Run(); err == nil {
		return nil
	} else {
		log.Printf("xdotool paste failed (is it installed?): %v", err)
	}

	// wtype (Linux Wayland).
	if err := exec.Command("wtype", "-M", "ctrl", "-P", "v", "-m", "ctrl").Run(); err == nil {
		return nil
	} else {
		log.Printf("wtype paste failed (is it installed?): %v", err)
	}

	// osascript (macOS).
	macScript := `tell application "System Events" to keystroke "v" using command down`
	if output, err := exec.Command("osascript", "-e", macScript).CombinedOutput(); err == nil {
		return nil
	} else {
		log.Printf("osascript paste failed: %v\nOutput: %s", err, string(output))
	}

	return fmt.Errorf("no paste simulation method available (tried xdotool, wtype, osascript)")
}
