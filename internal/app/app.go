package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/hotkey"
	"github.com/clipstash/clipstash/internal/paste"
	"github.com/clipstash/clipstash/internal/resources"
	"github.com/clipstash/clipstash/internal/ui"
)

const appName = "ClipStash"

// foregroundPollInterval paces the excluded-app check; exclusion state
// changes converge through the engine's synchronizer.
const foregroundPollInterval = time.Second

// Application is the composition root: it owns the settings store, the
// history store, the paste manager, the hotkey engine and the tray UI.
type Application struct {
	version  string
	settings *config.Store
	history  *history.Store
	paster   *paste.Manager
	hotkeys  *hotkey.Service
	tray     *ui.SystrayManager
	windows  *pickerWindows
	iconData []byte

	cancel    context.CancelFunc
	stopWatch func()
}

// New wires the application together. The history database lives next to
// the settings file.
func New(settings *config.Store, version string) (*Application, error) {
	a := &Application{
		version:  version,
		settings: settings,
	}

	var err error
	a.iconData, err = resources.GetIcon()
	if err != nil {
		log.Printf("Warning: failed to load embedded icon: %v", err)
	}

	ui.InitGlobalNotifications(true, appName, a.iconData)

	dbPath := filepath.Join(filepath.Dir(settings.Path()), "clipstash.db")
	a.history, err = history.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	a.paster = paste.NewManager(a.history)
	a.windows = newPickerWindows(appName, a.history, a.paster)

	backend := hotkey.SelectBackend()
	if backend == nil {
		log.Println("No global hotkey backend available on this display server; shortcuts will be inert.")
	}
	a.hotkeys = hotkey.New(backend, hotkey.Deps{
		Settings:          settings.Current,
		ForegroundBlocked: a.foregroundBlocked,
		LowMemory:         func() bool { return settings.Current().LowMemoryMode },
		History:           a.history,
		Paste:             a.paster,
		Windows:           a.windows,
		Screens:           nil, // no capturer installed
		Toggles:           settings,
	})

	a.tray = ui.NewSystrayManager(
		appName,
		version,
		a.iconData,
		a.onToggleHotkeys,
		a.onShowHotkeyStatus,
		a.onReloadConfig,
		a.onOpenConfig,
		a.onQuit,
	)

	return a, nil
}

// Run starts the engine, the config watcher and the background loops, then
// blocks on the tray event loop until quit.
func (a *Application) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.hotkeys.Start()
	if err := a.hotkeys.ReloadFromSettings(); err != nil {
		if errors.Is(err, hotkey.ErrNotInitialized) {
			ui.ShowAdminNotification(ui.LevelWarn, "Hotkeys Unavailable",
				"Global hotkeys are not supported on this display server.")
		} else {
			log.Printf("Initial shortcut registration failed: %v", err)
		}
	} else {
		a.notifyRegistrationFailures()
	}

	stop, err := a.settings.Watch(a.onConfigFileChanged)
	if err != nil {
		log.Printf("Failed to watch config file: %v", err)
	} else {
		a.stopWatch = stop
	}

	go a.watchForeground(ctx)
	go a.monitorClipboard(ctx)

	a.tray.Run()
}

// onQuit tears everything down; invoked from the tray Quit item.
func (a *Application) onQuit() {
	log.Println("Shutting down...")
	if a.cancel != nil {
		a.cancel()
	}
	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.hotkeys.Close()
	if err := a.history.Close(); err != nil {
		log.Printf("Error closing history store: %v", err)
	}
}

// onToggleHotkeys flips the runtime kill switch and returns the new state
// for the tray label.
func (a *Application) onToggleHotkeys() bool {
	if a.hotkeys.Enabled() {
		a.hotkeys.Disable()
	} else {
		a.hotkeys.Enable()
	}
	return a.hotkeys.Enabled()
}

func (a *Application) onShowHotkeyStatus() {
	ui.ShowHotkeyStatus(appName, a.hotkeys.Statuses())
}

// onReloadConfig re-reads the settings file and re-registers shortcuts.
func (a *Application) onReloadConfig() {
	if err := a.settings.Reload(); err != nil {
		ui.ShowAdminNotification(ui.LevelError, "Configuration Error",
			fmt.Sprintf("Failed to reload configuration: %v", err))
		return
	}
	a.applySettings()
}

// onConfigFileChanged runs on the watcher goroutine; the store has already
// re-read the file.
func (a *Application) onConfigFileChanged() {
	log.Println("Configuration file changed on disk, re-registering shortcuts.")
	a.applySettings()
}

func (a *Application) applySettings() {
	if !a.hotkeys.Enabled() {
		ui.ShowAdminNotification(ui.LevelInfo, "Configuration Reloaded",
			"Settings updated. Global hotkeys remain disabled.")
		return
	}
	if err := a.hotkeys.ReloadFromSettings(); err != nil {
		if errors.Is(err, hotkey.ErrNotInitialized) {
			ui.ShowAdminNotification(ui.LevelWarn, "Hotkeys Unavailable",
				"Global hotkeys are not supported on this display server.")
			return
		}
		ui.ShowAdminNotification(ui.LevelWarn, "Hotkey Registration Issue",
			fmt.Sprintf("Failed to re-register shortcuts: %v", err))
		return
	}
	a.notifyRegistrationFailures()
}

// notifyRegistrationFailures surfaces failed registrations once per reload.
func (a *Application) notifyRegistrationFailures() {
	var failed []string
	for _, st := range a.hotkeys.Statuses() {
		if !st.Success {
			failed = append(failed, fmt.Sprintf("%s (%s): %s", st.ID, st.Shortcut, st.Error))
		}
	}
	if len(failed) == 0 {
		return
	}
	ui.ShowAdminNotification(ui.LevelWarn, "Hotkey Registration Issue",
		"Some shortcuts could not be registered:\n"+strings.Join(failed, "\n"))
}

func (a *Application) onOpenConfig() {
	if err := ui.OpenFileInDefaultApp(a.settings.Path()); err != nil {
		ui.ShowAdminNotification(ui.LevelWarn, "Error Opening File",
			fmt.Sprintf("Could not open %s: %v", a.settings.Path(), err))
	}
}

// foregroundBlocked reports whether the active window matches an excluded
// app name from settings.
func (a *Application) foregroundBlocked() bool {
	excluded := a.settings.Current().ExcludedApps
	if len(excluded) == 0 {
		return false
	}
	title := strings.ToLower(foregroundWindowTitle())
	if title == "" {
		return false
	}
	for _, name := range excluded {
		if name != "" && strings.Contains(title, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// watchForeground polls the active window and lets the engine converge on
// the matching activation state.
func (a *Application) watchForeground(ctx context.Context) {
	ticker := time.NewTicker(foregroundPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if len(a.settings.Current().ExcludedApps) == 0 {
				continue
			}
			a.hotkeys.SyncForForeground()
		}
	}
}
