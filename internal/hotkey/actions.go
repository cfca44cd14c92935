package hotkey

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/clipstash/clipstash/internal/paste"
)

// repeatPasteDelay paces simulated repeat pastes so the target application
// keeps up with held-key auto-repeat.
const repeatPasteDelay = 50 * time.Millisecond

func (s *Service) registerToggle(descriptor string) error {
	return s.registry.Register(ActionToggle, descriptor, func(ev Event) {
		if ev != Pressed {
			return
		}
		if s.foregroundBlocked.Load() {
			return
		}
		s.dispatch.Submit(func() {
			if err := s.deps.Windows.ToggleMain(); err != nil {
				log.Printf("Failed to toggle main window: %v", err)
			}
		})
	})
}

func (s *Service) registerQuickPaste(descriptor string) error {
	return s.registry.Register(ActionQuickPaste, descriptor, func(ev Event) {
		switch ev {
		case Pressed:
			if s.deps.LowMemory() {
				return
			}
			if s.foregroundBlocked.Load() {
				return
			}
			settings := s.deps.Settings()
			// In keyboard mode the window stays up until the modifier is
			// released; a repeat press must not re-show it.
			if settings.QuickPastePasteOnModifierRelease && s.deps.Windows.QuickPasteVisible() {
				return
			}
			s.dispatch.Submit(func() {
				if err := s.deps.Windows.ShowQuickPaste(); err != nil {
					log.Printf("Failed to show quick paste window: %v", err)
				}
			})

		case Released:
			if s.deps.LowMemory() {
				return
			}
			if s.foregroundBlocked.Load() {
				return
			}
			if s.deps.Settings().QuickPastePasteOnModifierRelease {
				return
			}
			s.deps.Windows.Emit("quickpaste-hide")
			s.dispatch.Submit(func() {
				time.Sleep(repeatPasteDelay)
				if err := s.deps.Windows.HideQuickPaste(); err != nil {
					log.Printf("Failed to hide quick paste window: %v", err)
				}
			})
		}
	})
}

// registerScreenshot binds one of the screenshot actions. Without a capturer
// installed the binding is silently skipped, matching a build without the
// screenshot feature.
func (s *Service) registerScreenshot(id, descriptor string) error {
	if s.deps.Screens == nil {
		return nil
	}

	var capture func() error
	switch id {
	case ActionScreenshot:
		capture = s.deps.Screens.Capture
	case ActionScreenshotQuickSave:
		capture = s.deps.Screens.QuickSave
	case ActionScreenshotQuickPin:
		capture = s.deps.Screens.QuickPin
	case ActionScreenshotQuickOCR:
		capture = s.deps.Screens.QuickOCR
	default:
		return fmt.Errorf("unknown screenshot action %q", id)
	}

	return s.registry.Register(id, descriptor, func(ev Event) {
		if ev != Pressed {
			return
		}
		if s.deps.LowMemory() {
			return
		}
		if s.foregroundBlocked.Load() {
			return
		}
		s.dispatch.Submit(func() {
			if err := capture(); err != nil {
				log.Printf("Failed to start %s: %v", id, err)
			}
		})
	})
}

func (s *Service) registerToggleClipboardMonitor(descriptor string) error {
	return s.registry.Register(ActionToggleClipboardMonitor, descriptor, func(ev Event) {
		if ev != Pressed {
			return
		}
		s.dispatch.Submit(func() {
			if err := s.deps.Toggles.ToggleClipboardMonitor(); err != nil {
				log.Printf("Failed to toggle clipboard monitor: %v", err)
			}
		})
	})
}

func (s *Service) registerTogglePasteWithFormat(descriptor string) error {
	return s.registry.Register(ActionTogglePasteWithFormat, descriptor, func(ev Event) {
		if ev != Pressed {
			return
		}
		s.dispatch.Submit(func() {
			if err := s.deps.Toggles.TogglePasteWithFormat(); err != nil {
				log.Printf("Failed to toggle paste with format: %v", err)
			}
		})
	})
}

func (s *Service) registerPastePlainText(descriptor string) error {
	id := ActionPastePlainText
	return s.registry.Register(id, descriptor, func(ev Event) {
		switch ev {
		case Pressed:
			if s.keys.TryActivate(id) {
				// First press: the expensive path.
				s.dispatch.Submit(func() {
					if err := s.handlePlainTextPress(); err != nil {
						log.Printf("Plain text paste failed: %v", err)
						// A failed first press must not leave the id stuck
						// as held.
						s.keys.Deactivate(id)
					}
				})
			} else if s.keys.IsActive(id) {
				// Auto-repeat: just replay the paste keystroke.
				s.dispatch.Submit(s.simulateRepeatPaste)
			}
		case Released:
			s.keys.Deactivate(id)
		}
	})
}

// handlePlainTextPress pastes the newest history item without formatting,
// or defers to the visible main window's selection.
func (s *Service) handlePlainTextPress() error {
	if s.deps.Windows.MainVisible() {
		s.deps.Windows.Emit("paste-plain-text-selected")
		return nil
	}

	items, err := s.deps.History.Query(0, 1)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	full, err := s.deps.History.ByID(items[0].ID)
	if err != nil {
		return err
	}
	return s.deps.Paste.PasteWithFormat(full, paste.PlainText)
}

// registerNumberShortcuts binds the 1-9 family under one modifier. A
// trailing "F" selects function keys instead of digits. Registrations are
// attempted independently; failing descriptors end up in one aggregate
// status entry.
func (s *Service) registerNumberShortcuts(modifier string) error {
	s.registry.UnregisterPrefix(numberActionPrefix)

	isFKey := strings.HasSuffix(modifier, "F")
	prefix := modifier
	if isFKey {
		prefix = strings.TrimSuffix(strings.TrimSuffix(modifier, "F"), "+")
	}

	items := make([]BatchItem, 0, 9)
	for num := 1; num <= 9; num++ {
		var descriptor string
		if isFKey {
			if prefix == "" {
				descriptor = fmt.Sprintf("F%d", num)
			} else {
				descriptor = fmt.Sprintf("%s+F%d", prefix, num)
			}
		} else {
			descriptor = fmt.Sprintf("%s+%d", modifier, num)
		}

		id := fmt.Sprintf("%s%d", numberActionPrefix, num)
		index := num - 1
		items = append(items, BatchItem{
			ID:         id,
			Descriptor: descriptor,
			Handler:    s.numberHandler(id, index),
		})
	}

	return s.registry.RegisterBatch(numberAggregateID, items)
}

func (s *Service) numberHandler(id string, index int) Handler {
	return func(ev Event) {
		switch ev {
		case Pressed:
			if s.keys.TryActivate(id) {
				s.dispatch.Submit(func() {
					if err := s.handleNumberPress(index); err != nil {
						log.Printf("Number shortcut %d failed: %v", index+1, err)
						s.keys.Deactivate(id)
					}
				})
			} else if s.keys.IsActive(id) {
				s.dispatch.Submit(s.simulateRepeatPaste)
			}
		case Released:
			s.keys.Deactivate(id)
		}
	}
}

// handleNumberPress pastes the Nth newest history item and bumps it.
func (s *Service) handleNumberPress(index int) error {
	items, err := s.deps.History.Query(0, 9)
	if err != nil {
		return err
	}
	if index >= len(items) {
		return fmt.Errorf("history index %d out of range (%d items)", index+1, len(items))
	}

	full, err := s.deps.History.ByID(items[index].ID)
	if err != nil {
		return err
	}
	return s.deps.Paste.PasteWithUpdate(full)
}

// simulateRepeatPaste replays the paste keystroke with pacing on both sides.
func (s *Service) simulateRepeatPaste() {
	time.Sleep(repeatPasteDelay)
	if err := s.deps.Paste.SimulatePaste(); err != nil {
		log.Printf("Repeat paste failed: %v", err)
	}
	time.Sleep(repeatPasteDelay)
}
