package hotkey

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/paste"
)

// Action ids for every binding the engine manages.
const (
	ActionToggle                 = "toggle"
	ActionQuickPaste             = "quickpaste"
	ActionScreenshot             = "screenshot"
	ActionScreenshotQuickSave    = "screenshot_quick_save"
	ActionScreenshotQuickPin     = "screenshot_quick_pin"
	ActionScreenshotQuickOCR     = "screenshot_quick_ocr"
	ActionToggleClipboardMonitor = "toggle_clipboard_monitor"
	ActionTogglePasteWithFormat  = "toggle_paste_with_format"
	ActionPastePlainText         = "paste_plain_text"

	// numberActionPrefix + "1".."9"; failures aggregate under
	// numberAggregateID.
	numberActionPrefix = "number_"
	numberAggregateID  = "number_shortcuts"
)

// History is the clipboard-history collaborator consumed by press handlers.
type History interface {
	Query(offset, limit int) ([]history.Item, error)
	ByID(id int64) (history.Item, error)
}

// Paster executes pastes and simulates the paste keystroke.
type Paster interface {
	PasteWithFormat(item history.Item, format paste.Format) error
	PasteWithUpdate(item history.Item) error
	SimulatePaste() error
}

// Windows is the window collaborator: show/hide surfaces and emit named UI
// events.
type Windows interface {
	ToggleMain() error
	MainVisible() bool
	ShowQuickPaste() error
	HideQuickPaste() error
	QuickPasteVisible() bool
	Emit(event string)
}

// Screens is the screenshot collaborator. A nil Screens in Deps disables
// every screenshot binding.
type Screens interface {
	Capture() error
	QuickSave() error
	QuickPin() error
	QuickOCR() error
}

// SettingsToggler flips persistent feature toggles from hotkeys.
type SettingsToggler interface {
	ToggleClipboardMonitor() error
	TogglePasteWithFormat() error
}

// Deps are the collaborators injected into the engine.
type Deps struct {
	Settings          func() config.Settings
	ForegroundBlocked func() bool
	LowMemory         func() bool
	History           History
	Paste             Paster
	Windows           Windows
	Screens           Screens
	Toggles           SettingsToggler
}

// Service is the hotkey activation and synchronization engine. All shared
// state lives here and is injected into handlers; there are no package
// globals.
type Service struct {
	deps     Deps
	registry *Registry
	statuses *StatusReporter
	keys     *activationSet
	sync     *synchronizer
	dispatch *dispatcher

	enabled           atomic.Bool
	foregroundBlocked atomic.Bool

	cancel context.CancelFunc
}

// New builds the engine over the given backend. A nil backend (no display
// server support) leaves the engine inert: every registration fails with
// ErrNotInitialized.
func New(backend Backend, deps Deps) *Service {
	statuses := NewStatusReporter()
	s := &Service{
		deps:     deps,
		registry: NewRegistry(backend, statuses),
		statuses: statuses,
		keys:     newActivationSet(),
		dispatch: newDispatcher(4, 64),
	}
	s.enabled.Store(true)
	s.sync = newSynchronizer(s.applyActivation)
	return s
}

// Start launches the convergence worker. Must be called once before any
// SyncForForeground/Enable/Disable call.
func (s *Service) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.sync.run(ctx)
}

// Close stops the convergence worker, drains the dispatcher and unbinds
// every shortcut.
func (s *Service) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.dispatch.Close()
	s.registry.UnregisterAll()
}

// ReloadFromSettings unregisters everything, clears all statuses, then
// re-registers every enabled action from current settings. Per-action
// failures are logged and never abort the reload.
func (s *Service) ReloadFromSettings() error {
	if !s.registry.Initialized() {
		return ErrNotInitialized
	}

	settings := s.deps.Settings()

	s.registry.UnregisterAll()

	if !settings.HotkeysEnabled {
		return nil
	}
	if s.foregroundBlocked.Load() {
		return nil
	}

	if settings.ToggleShortcut != "" {
		if err := s.registerToggle(settings.ToggleShortcut); err != nil {
			log.Printf("Failed to register main window toggle shortcut: %v", err)
		}
	}

	if settings.QuickPasteEnabled && settings.QuickPasteShortcut != "" {
		if err := s.registerQuickPaste(settings.QuickPasteShortcut); err != nil {
			log.Printf("Failed to register quick paste shortcut: %v", err)
		}
	}

	if settings.ScreenshotEnabled {
		for _, sc := range []struct {
			id         string
			descriptor string
		}{
			{ActionScreenshot, settings.ScreenshotShortcut},
			{ActionScreenshotQuickSave, settings.ScreenshotQuickSaveShortcut},
			{ActionScreenshotQuickPin, settings.ScreenshotQuickPinShortcut},
			{ActionScreenshotQuickOCR, settings.ScreenshotQuickOCRShortcut},
		} {
			if sc.descriptor == "" {
				continue
			}
			if err := s.registerScreenshot(sc.id, sc.descriptor); err != nil {
				log.Printf("Failed to register %s shortcut: %v", sc.id, err)
			}
		}
	}

	if settings.ToggleClipboardMonitorShortcut != "" {
		if err := s.registerToggleClipboardMonitor(settings.ToggleClipboardMonitorShortcut); err != nil {
			log.Printf("Failed to register clipboard monitor toggle shortcut: %v", err)
		}
	}

	if settings.TogglePasteWithFormatShortcut != "" {
		if err := s.registerTogglePasteWithFormat(settings.TogglePasteWithFormatShortcut); err != nil {
			log.Printf("Failed to register paste-with-format toggle shortcut: %v", err)
		}
	}

	if settings.PastePlainTextShortcut != "" {
		if err := s.registerPastePlainText(settings.PastePlainTextShortcut); err != nil {
			log.Printf("Failed to register plain text paste shortcut: %v", err)
		}
	}

	if settings.NumberShortcutsEnabled && settings.NumberShortcutsModifier != "" {
		if err := s.registerNumberShortcuts(settings.NumberShortcutsModifier); err != nil {
			log.Printf("Failed to register number shortcuts: %v", err)
		}
	}

	return nil
}

// SyncForForeground recomputes the desired activation from configuration
// and foreground-exclusion state and requests convergence. Safe to call
// concurrently; rapid bursts coalesce into one pass.
func (s *Service) SyncForForeground() {
	s.foregroundBlocked.Store(s.deps.ForegroundBlocked())
	s.sync.Request(s.desiredActivation())
}

// desiredActivation derives the target state: inactive if hotkeys are off in
// settings, killed at runtime, or the foreground app excludes them.
func (s *Service) desiredActivation() Activation {
	settings := s.deps.Settings()
	if !settings.HotkeysEnabled || !s.enabled.Load() || s.foregroundBlocked.Load() {
		return Inactive
	}
	return Active
}

// applyActivation runs on the convergence worker, never under the state lock.
func (s *Service) applyActivation(a Activation) {
	if a == Active {
		if err := s.ReloadFromSettings(); err != nil {
			log.Printf("Failed to reload shortcuts during activation: %v", err)
		}
		return
	}
	s.registry.UnregisterAll()
}

// Enable lifts the runtime kill switch and converges toward the configured
// state.
func (s *Service) Enable() {
	if s.enabled.Swap(true) {
		return
	}
	log.Println("Global hotkeys enabled")
	s.sync.Request(s.desiredActivation())
}

// Disable is the runtime kill switch, independent of configuration.
func (s *Service) Disable() {
	if !s.enabled.Swap(false) {
		return
	}
	log.Println("Global hotkeys disabled")
	s.sync.Request(s.desiredActivation())
}

// Enabled reports the runtime kill switch state.
func (s *Service) Enabled() bool {
	return s.enabled.Load()
}

// Status returns the last registration outcome for an action id.
func (s *Service) Status(id string) (Status, bool) {
	return s.statuses.Get(id)
}

// Statuses returns every recorded registration outcome.
func (s *Service) Statuses() []Status {
	return s.statuses.All()
}

// Entries returns a snapshot of the registration table.
func (s *Service) Entries() []Entry {
	return s.registry.Entries()
}

// ActivationState returns the synchronizer state for diagnostics.
func (s *Service) ActivationState() (current, desired Activation, syncing bool) {
	return s.sync.snapshot()
}
