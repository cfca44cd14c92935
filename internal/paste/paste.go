package paste

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"

	"github.com/clipstash/clipstash/internal/history"
)

// Format selects how an item is placed on the clipboard before pasting.
type Format int

const (
	// Default keeps the item's stored representation.
	Default Format = iota
	// PlainText strips any formatting and pastes the raw text.
	PlainText
)

// Manager writes history items to the system clipboard and simulates the
// paste keystroke in the foreground application.
type Manager struct {
	history *history.Store
}

// NewManager creates a paste manager over the given history store.
func NewManager(hist *history.Store) *Manager {
	return &Manager{history: hist}
}

// PasteWithFormat puts the item on the clipboard and pastes it. Both formats
// currently resolve to the stored text; PlainText exists so rich kinds can
// be forced down to text when they are introduced.
func (m *Manager) PasteWithFormat(item history.Item, format Format) error {
	text := item.Content

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	// Give the clipboard owner change a moment to settle before the
	// keystroke lands.
	time.Sleep(50 * time.Millisecond)

	if err := simulatePlatformPaste(); err != nil {
		return err
	}

	log.Printf("Pasted history item %d (%d bytes, format %d)", item.ID, len(text), format)
	return nil
}

// PasteWithUpdate pastes the item and bumps it to the top of the history.
func (m *Manager) PasteWithUpdate(item history.Item) error {
	if err := m.PasteWithFormat(item, Default); err != nil {
		return err
	}
	if err := m.history.Touch(item.ID); err != nil {
		log.Printf("Failed to bump history item %d: %v", item.ID, err)
	}
	return nil
}

// SimulatePaste replays the paste keystroke without touching the clipboard.
// Used for cheap repeats while a paste hotkey is held.
func (m *Manager) SimulatePaste() error {
	return simulatePlatformPaste()
}
