package app

import (
	"context"
	"log"
	"time"

	"github.com/atotto/clipboard"
)

const clipboardPollInterval = 500 * time.Millisecond

// monitorClipboard polls the system clipboard and appends new text to the
// history store while the monitor toggle is on. Content the paste manager
// just wrote is already the newest history item and is skipped.
func (a *Application) monitorClipboard(ctx context.Context) {
	var lastSeen string
	ticker := time.NewTicker(clipboardPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !a.settings.Current().ClipboardMonitorEnabled {
			continue
		}

		content, err := clipboard.ReadAll()
		if err != nil || content == "" || content == lastSeen {
			continue
		}
		lastSeen = content

		if newest, err := a.history.Query(0, 1); err == nil && len(newest) > 0 && newest[0].Content == content {
			continue
		}

		if _, err := a.history.Insert(content, "text"); err != nil {
			log.Printf("Failed to record clipboard content: %v", err)
		}
	}
}
