//go:build windows

package ui

import "log"

// OpenFileInDefaultApp opens a file with its associated application.
func OpenFileInDefaultApp(filePath string) error {
	err := windowsOpenFileInDefaultApp(filePath)
	if err != nil {
		log.Printf("ShellExecuteW failed opening %s: %v", filePath, err)
	}
	return err
}
