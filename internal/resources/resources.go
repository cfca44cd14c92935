package resources

import (
	_ "embed"
	"errors"
)

//go:embed icon.ico
var iconData []byte

// ErrIconNotFound is returned when no icon data was embedded in the binary.
var ErrIconNotFound = errors.New("embedded icon not found")

// GetIcon returns the embedded tray icon data.
func GetIcon() ([]byte, error) {
	if len(iconData) == 0 {
		return nil, ErrIconNotFound
	}
	return iconData, nil
}
