package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode"

	"github.com/ncruces/zenity"

	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/paste"
)

const (
	mainPickerLimit  = 25
	quickPickerLimit = 9
	snippetMaxRunes  = 48
)

// pickerWindows implements the engine's window collaborator with zenity
// list dialogs over the history store. A dialog counts as a visible window
// while its goroutine is alive; hiding cancels the dialog's context.
type pickerWindows struct {
	appName string
	history *history.Store
	paster  *paste.Manager

	mu          sync.Mutex
	mainCancel  context.CancelFunc
	quickCancel context.CancelFunc
}

func newPickerWindows(appName string, hist *history.Store, paster *paste.Manager) *pickerWindows {
	return &pickerWindows{
		appName: appName,
		history: hist,
		paster:  paster,
	}
}

// ToggleMain opens the history browser, or closes it if already open.
func (w *pickerWindows) ToggleMain() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mainCancel != nil {
		w.mainCancel()
		w.mainCancel = nil
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.mainCancel = cancel
	go w.runMainPicker(ctx)
	return nil
}

func (w *pickerWindows) MainVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mainCancel != nil
}

// ShowQuickPaste opens the quick picker over the most recent items.
func (w *pickerWindows) ShowQuickPaste() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quickCancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.quickCancel = cancel
	go w.runQuickPicker(ctx)
	return nil
}

// HideQuickPaste closes the quick picker if it is open.
func (w *pickerWindows) HideQuickPaste() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quickCancel != nil {
		w.quickCancel()
		w.quickCancel = nil
	}
	return nil
}

func (w *pickerWindows) QuickPasteVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quickCancel != nil
}

// Emit handles named UI events from the engine.
func (w *pickerWindows) Emit(event string) {
	switch event {
	case "quickpaste-hide":
		_ = w.HideQuickPaste()
	case "paste-plain-text-selected":
		// Dialog surfaces have no independent selection; close the
		// browser and paste the newest item without formatting.
		w.mu.Lock()
		if w.mainCancel != nil {
			w.mainCancel()
			w.mainCancel = nil
		}
		w.mu.Unlock()
		go w.pasteNewestPlain()
	default:
		log.Printf("Unhandled UI event: %s", event)
	}
}

func (w *pickerWindows) runMainPicker(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.mainCancel = nil
		w.mu.Unlock()
	}()
	w.runPicker(ctx, mainPickerLimit, w.appName+" - Clipboard History", func(item history.Item) {
		if err := w.paster.PasteWithUpdate(item); err != nil {
			log.Printf("Failed to paste history item %d: %v", item.ID, err)
		}
	})
}

func (w *pickerWindows) runQuickPicker(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.quickCancel = nil
		w.mu.Unlock()
	}()
	w.runPicker(ctx, quickPickerLimit, w.appName+" - Quick Paste", func(item history.Item) {
		if err := w.paster.PasteWithUpdate(item); err != nil {
			log.Printf("Failed to quick-paste history item %d: %v", item.ID, err)
		}
	})
}

// runPicker shows a numbered list of recent items and hands the selection to
// onPick. Cancellation and dialog dismissal are both silent.
func (w *pickerWindows) runPicker(ctx context.Context, limit int, title string, onPick func(history.Item)) {
	items, err := w.history.Query(0, limit)
	if err != nil {
		log.Printf("Failed to query history for picker: %v", err)
		return
	}
	if len(items) == 0 {
		if err := zenity.Info("Clipboard history is empty.", zenity.Title(title), zenity.Context(ctx)); err != nil && !errors.Is(err, zenity.ErrCanceled) && ctx.Err() == nil {
			log.Printf("Error showing empty-history dialog: %v", err)
		}
		return
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = fmt.Sprintf("%d. %s", i+1, snippet(item.Content))
	}

	choice, err := zenity.List("Select an item to paste", labels,
		zenity.Title(title), zenity.Context(ctx))
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) && ctx.Err() == nil {
			log.Printf("Error showing history picker: %v", err)
		}
		return
	}
	for i, label := range labels {
		if label == choice {
			onPick(items[i])
			return
		}
	}
}

func (w *pickerWindows) pasteNewestPlain() {
	items, err := w.history.Query(0, 1)
	if err != nil {
		log.Printf("Failed to query newest history item: %v", err)
		return
	}
	if len(items) == 0 {
		return
	}
	if err := w.paster.PasteWithFormat(items[0], paste.PlainText); err != nil {
		log.Printf("Failed to paste newest item as plain text: %v", err)
	}
}

// snippet flattens whitespace and truncates content for one-line labels.
func snippet(content string) string {
	flat := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, content)
	flat = strings.Join(strings.Fields(flat), " ")
	runes := []rune(flat)
	if len(runes) <= snippetMaxRunes {
		return flat
	}
	return string(runes[:snippetMaxRunes]) + "…"
}
