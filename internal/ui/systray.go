package ui

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/getlantern/systray"
)

// SystrayManager handles the system tray icon and menu.
type SystrayManager struct {
	appName      string
	version      string
	embeddedIcon []byte

	onToggleHotkeys func() bool // flips the kill switch, returns new state
	onShowStatus    func()
	onReloadConfig  func()
	onOpenConfig    func()
	onQuit          func()

	miHotkeys *systray.MenuItem
}

// NewSystrayManager creates a new system tray manager.
func NewSystrayManager(
	appName, version string,
	embeddedIcon []byte,
	onToggleHotkeys func() bool,
	onShowStatus func(),
	onReloadConfig func(),
	onOpenConfig func(),
	onQuit func(),
) *SystrayManager {
	return &SystrayManager{
		appName:         appName,
		version:         version,
		embeddedIcon:    embeddedIcon,
		onToggleHotkeys: onToggleHotkeys,
		onShowStatus:    onShowStatus,
		onReloadConfig:  onReloadConfig,
		onOpenConfig:    onOpenConfig,
		onQuit:          onQuit,
	}
}

// Run initializes and starts the system tray. Blocks until quit.
func (s *SystrayManager) Run() {
	systray.Run(s.onReady, s.onExit)
}

// SetHotkeysEnabled updates the toggle item label after the kill switch
// changes outside the menu.
func (s *SystrayManager) SetHotkeysEnabled(enabled bool) {
	if s.miHotkeys != nil {
		s.miHotkeys.SetTitle(hotkeysMenuTitle(enabled))
	}
}

func hotkeysMenuTitle(enabled bool) string {
	if enabled {
		return "✓ Global Hotkeys"
	}
	return "  Global Hotkeys"
}

// onReady is called by systray once the tray is ready.
func (s *SystrayManager) onReady() {
	title := fmt.Sprintf("%s %s", s.appName, s.version)
	systray.SetTitle(title)
	systray.SetTooltip(title)
	if len(s.embeddedIcon) > 0 {
		systray.SetIcon(s.embeddedIcon)
	} else {
		log.Println("Warning: no embedded icon data to set for systray.")
	}

	miVersion := systray.AddMenuItem(fmt.Sprintf("Version: %s", s.version), s.appName+" version")
	miVersion.Disable()
	systray.AddSeparator()

	s.miHotkeys = systray.AddMenuItem(hotkeysMenuTitle(true), "Enable or disable all global hotkeys")
	miStatus := systray.AddMenuItem("Hotkey Status...", "Show registration status of every shortcut")
	systray.AddSeparator()

	miReloadConfig := systray.AddMenuItem("Reload Configuration", "Re-read config.json and re-register shortcuts")
	miOpenConfig := systray.AddMenuItem("Open Config File", "Open config.json in default editor")
	miRestartApp := systray.AddMenuItem("Restart Application", "Restart the application")
	systray.AddSeparator()

	miQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		for range s.miHotkeys.ClickedCh {
			log.Println("Global Hotkeys menu item clicked.")
			if s.onToggleHotkeys != nil {
				s.miHotkeys.SetTitle(hotkeysMenuTitle(s.onToggleHotkeys()))
			}
		}
	}()
	go func() {
		for range miStatus.ClickedCh {
			log.Println("Hotkey Status menu item clicked.")
			if s.onShowStatus != nil {
				s.onShowStatus()
			}
		}
	}()
	go func() {
		for range miReloadConfig.ClickedCh {
			log.Println("Reload Configuration menu item clicked.")
			if s.onReloadConfig != nil {
				s.onReloadConfig()
			}
		}
	}()
	go func() {
		for range miOpenConfig.ClickedCh {
			log.Println("Open Config File menu item clicked.")
			if s.onOpenConfig != nil {
				s.onOpenConfig()
			}
		}
	}()
	go func() {
		for range miRestartApp.ClickedCh {
			log.Println("Restart Application menu item clicked.")
			RestartApplication()
		}
	}()
	go func() {
		<-miQuit.ClickedCh
		log.Println("Quit menu item clicked.")
		if s.onQuit != nil {
			s.onQuit()
		}
		systray.Quit()
	}()

	log.Println("Systray ready and menu configured.")
}

// onExit is called when the systray is exiting.
func (s *SystrayManager) onExit() {
	log.Println("Systray exiting.")
}

// IsDevMode reports whether the binary appears to run from a temporary
// go-build directory, where automatic restart makes no sense.
func IsDevMode() bool {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: could not get executable path in IsDevMode: %v", err)
		return false
	}
	if strings.Contains(execPath, string(filepath.Separator)+"go-build") {
		return true
	}
	cleanedExecDir := filepath.Clean(filepath.Dir(execPath))
	cleanedTempDir := filepath.Clean(os.TempDir())
	return strings.HasPrefix(cleanedExecDir, cleanedTempDir)
}

// RestartApplication starts a new process image and exits the current one.
func RestartApplication() {
	log.Println("Attempting application restart...")
	if IsDevMode() {
		msg := "App running in dev mode. Please stop and run it again manually."
		log.Println("Development mode detected; automatic restart is not supported.")
		ShowAdminNotification(LevelWarn, "Manual Restart Needed", msg)
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Error getting executable path for restart: %v", err)
		ShowAdminNotification(LevelError, "Restart Error", fmt.Sprintf("Failed to get executable path: %v", err))
		return
	}
	cmd := exec.Command(execPath, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if cwd, err := os.Getwd(); err == nil {
		cmd.Dir = cwd
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Error starting new process during restart: %v", err)
		ShowAdminNotification(LevelError, "Restart Error", fmt.Sprintf("Failed to start new process: %v", err))
		return
	}
	log.Println("Successfully started new process, exiting current process.")
	systray.Quit()
	os.Exit(0)
}
