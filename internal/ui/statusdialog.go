package ui

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/clipstash/clipstash/internal/hotkey"
)

// ShowHotkeyStatus presents the registration outcome of every shortcut in a
// dialog, one line per action id.
func ShowHotkeyStatus(appName string, statuses []hotkey.Status) {
	title := appName + " - Hotkey Status"

	if len(statuses) == 0 {
		if err := zenity.Info("No shortcuts are currently registered.", zenity.Title(title)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("Error showing hotkey status dialog: %v", err)
		}
		return
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })

	lines := make([]string, 0, len(statuses))
	for _, st := range statuses {
		if st.Success {
			lines = append(lines, fmt.Sprintf("%s  [%s]  OK", st.ID, st.Shortcut))
		} else {
			lines = append(lines, fmt.Sprintf("%s  [%s]  FAILED (%s)", st.ID, st.Shortcut, st.Error))
		}
	}

	if err := zenity.Info(strings.Join(lines, "\n"), zenity.Title(title)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		log.Printf("Error showing hotkey status dialog: %v", err)
	}
}
