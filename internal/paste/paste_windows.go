//go:build windows

package paste

import (
	"fmt"
	"log"
	"os/exec"
	"syscall"
	"unsafe"
)

const (
	inputKeyboard   = 1
	keyeventfKeyup  = 0x0002
	vkControl       = 0x11
	vkV             = 0x56
)

// keyboardInput mirrors the Windows INPUT structure for SendInput.
type keyboardInput struct {
	Type uint32
	Ki   struct {
		WVk         uint16
		WScan       uint16
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
		Padding1    uint32
		Padding2    uint32
		Padding3    uint32
	}
}

// attemptPasteWithSendInput sends Ctrl+V through the SendInput API.
func attemptPasteWithSendInput() bool {
	user32 := syscall.NewLazyDLL("user32.dll")
	sendInput := user32.NewProc("SendInput")

	// Ctrl down, V down, V up, Ctrl up.
	inputs := make([]keyboardInput, 4)
	inputs[0].Type = inputKeyboard
	inputs[0].Ki.WVk = vkControl
	inputs[1].Type = inputKeyboard
	inputs[1].Ki.WVk = vkV
	inputs[2].Type = inputKeyboard
	inputs[2].Ki.WVk = vkV
	inputs[2].Ki.DwFlags = keyeventfKeyup
	inputs[3].Type = inputKeyboard
	inputs[3].Ki.WVk = vkControl
	inputs[3].Ki.DwFlags = keyeventfKeyup

	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if ret != uintptr(len(inputs)) {
		log.Printf("SendInput failed, sent %d inputs instead of %d: %v", ret, len(inputs), err)
		return false
	}
	return true
}

// attemptPasteWithKeyBdEvent sends Ctrl+V through the older keybd_event API.
func attemptPasteWithKeyBdEvent() bool {
	user32 := syscall.NewLazyDLL("user32.dll")
	keybdEvent := user32.NewProc("keybd_event")

	keybdEvent.Call(vkControl, 0, 0, 0)
	keybdEvent.Call(vkV, 0, 0, 0)
	keybdEvent.Call(vkV, 0, keyeventfKeyup, 0)
	keybdEvent.Call(vkControl, 0, keyeventfKeyup, 0)
	return true
}

// attemptPasteWithPowershell simulates Ctrl+V via SendKeys as a last resort.
func attemptPasteWithPowershell() bool {
	psScript := `
	Add-Type -AssemblyName System.Windows.Forms
	[System.Windows.Forms.SendKeys]::SendWait("^v")
	`
	cmd := exec.Command("powershell", "-Command", psScript)
	if err := cmd.Run(); err != nil {
		log.Printf("PowerShell paste failed: %v", err)
		return false
	}
	return true
}

// simulatePlatformPaste tries multiple methods to send Ctrl+V on Windows.
func simulatePlatformPaste() error {
	if attemptPasteWithSendInput() {
		return nil
	}
	if attemptPasteWithKeyBdEvent() {
		return nil
	}
	if attemptPasteWithPowershell() {
		return nil
	}
	return fmt.Errorf("all Windows paste methods failed")
}
