package ui

import "log"

// Level classifies notifications so warnings and errors stand out from
// routine messages in tray-only sessions.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// NotificationManager shows desktop notifications across platforms.
type NotificationManager struct {
	enabled      bool
	appName      string
	embeddedIcon []byte
}

// NewNotificationManager creates a new notification manager.
func NewNotificationManager(enabled bool, appName string, embeddedIcon []byte) *NotificationManager {
	return &NotificationManager{
		enabled:      enabled,
		appName:      appName,
		embeddedIcon: embeddedIcon,
	}
}

// Show displays a desktop notification if notifications are enabled.
func (n *NotificationManager) Show(title, message string) {
	if !n.enabled {
		return
	}
	if err := n.platformNotify(title, message); err != nil {
		log.Printf("Error showing notification: %v", err)
	}
}

var globalNotificationManager *NotificationManager

// InitGlobalNotifications initializes the package-level notification manager
// used by the convenience functions below.
func InitGlobalNotifications(enabled bool, appName string, embeddedIcon []byte) {
	globalNotificationManager = NewNotificationManager(enabled, appName, embeddedIcon)
}

// ShowNotification shows a notification without a manager reference.
func ShowNotification(title, message string) {
	if globalNotificationManager != nil {
		globalNotificationManager.Show(title, message)
	} else {
		log.Printf("Notification not shown (manager not initialized): %s - %s", title, message)
	}
}

// ShowAdminNotification shows a notification with a severity prefix on the
// title, always mirrored to the log.
func ShowAdminNotification(level Level, title, message string) {
	switch level {
	case LevelWarn:
		title = "Warning: " + title
	case LevelError:
		title = "Error: " + title
	}
	log.Printf("[%s] %s: %s", level, title, message)
	ShowNotification(title, message)
}
