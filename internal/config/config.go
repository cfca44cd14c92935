package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// Settings holds the application configuration. Every shortcut field is a
// human-authored descriptor string; empty means the binding is off.
type Settings struct {
	HotkeysEnabled bool `json:"hotkeys_enabled"`

	ToggleShortcut string `json:"toggle_shortcut"`

	QuickPasteEnabled                bool   `json:"quickpaste_enabled"`
	QuickPasteShortcut               string `json:"quickpaste_shortcut"`
	QuickPastePasteOnModifierRelease bool   `json:"quickpaste_paste_on_modifier_release"`

	ScreenshotEnabled           bool   `json:"screenshot_enabled"`
	ScreenshotShortcut          string `json:"screenshot_shortcut"`
	ScreenshotQuickSaveShortcut string `json:"screenshot_quick_save_shortcut"`
	ScreenshotQuickPinShortcut  string `json:"screenshot_quick_pin_shortcut"`
	ScreenshotQuickOCRShortcut  string `json:"screenshot_quick_ocr_shortcut"`

	ToggleClipboardMonitorShortcut string `json:"toggle_clipboard_monitor_shortcut"`
	TogglePasteWithFormatShortcut  string `json:"toggle_paste_with_format_shortcut"`
	PastePlainTextShortcut         string `json:"paste_plain_text_shortcut"`

	NumberShortcutsEnabled  bool   `json:"number_shortcuts"`
	NumberShortcutsModifier string `json:"number_shortcuts_modifier"`

	ClipboardMonitorEnabled bool `json:"clipboard_monitor_enabled"`
	PasteWithFormat         bool `json:"paste_with_format"`
	LowMemoryMode           bool `json:"low_memory_mode"`

	// Foreground applications (process names) for which all hotkeys are
	// suspended.
	ExcludedApps []string `json:"excluded_apps,omitempty"`
}

// DefaultSettings returns the configuration written on first run.
func DefaultSettings() Settings {
	return Settings{
		HotkeysEnabled:          true,
		ToggleShortcut:          "Alt+V",
		QuickPasteEnabled:       true,
		QuickPasteShortcut:      "Ctrl+Shift+V",
		PastePlainTextShortcut:  "Ctrl+Shift+P",
		NumberShortcutsEnabled:  true,
		NumberShortcutsModifier: "Ctrl",
		ClipboardMonitorEnabled: true,
		PasteWithFormat:         true,
	}
}

// Store is the live settings instance shared between the engine, the tray UI
// and the config watcher.
type Store struct {
	mu       sync.Mutex
	path     string
	settings Settings
}

// Load reads the settings file, creating a default one when it is missing.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		log.Printf("Config file '%s' not found. Creating default.", path)
		if createErr := CreateDefault(path); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", path, createErr)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s' after creating default: %w", path, err)
		}
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	return &Store{path: path, settings: settings}, nil
}

// CreateDefault writes a default configuration file unless one exists.
func CreateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking config path '%s': %w", path, err)
	}

	data, err := json.MarshalIndent(DefaultSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write default config file '%s': %w", path, err)
	}

	log.Printf("Default configuration file created at: %s", path)
	return nil
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the live settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Reload re-reads the settings file into the live instance.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", s.path, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", s.path, err)
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	log.Printf("Configuration reloaded from %s", s.path)
	return nil
}

// Save writes the live settings back to the file.
func (s *Store) Save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.settings, "", "  ")
	path := s.path
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Update applies fn to the live settings under the lock, then persists.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	fn(&s.settings)
	data, err := json.MarshalIndent(s.settings, "", "  ")
	path := s.path
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ToggleClipboardMonitor flips clipboard monitoring and persists the change.
func (s *Store) ToggleClipboardMonitor() error {
	var now bool
	err := s.Update(func(st *Settings) {
		st.ClipboardMonitorEnabled = !st.ClipboardMonitorEnabled
		now = st.ClipboardMonitorEnabled
	})
	if err == nil {
		log.Printf("Clipboard monitor enabled: %t", now)
	}
	return err
}

// TogglePasteWithFormat flips formatted pasting and persists the change.
func (s *Store) TogglePasteWithFormat() error {
	var now bool
	err := s.Update(func(st *Settings) {
		st.PasteWithFormat = !st.PasteWithFormat
		now = st.PasteWithFormat
	})
	if err == nil {
		log.Printf("Paste with format enabled: %t", now)
	}
	return err
}
