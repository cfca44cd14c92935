package config

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// shouldReload reports whether a filesystem event warrants a config reload.
// Editors often write via temp file + rename, so the base name is matched
// as well as the full path.
func shouldReload(configPath, configBase string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == configPath {
		return true
	}
	return filepath.Base(name) == configBase
}

// Watch reloads the store and invokes onChange whenever the settings file
// changes on disk. It returns a stop function; onChange runs on the watcher
// goroutine.
func (s *Store) Watch(onChange func()) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cleanPath := filepath.Clean(s.path)
	base := filepath.Base(cleanPath)

	// Watch the directory, not the file: the file node may be replaced on
	// every save.
	if err := watcher.Add(filepath.Dir(cleanPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !shouldReload(cleanPath, base, event) {
					continue
				}
				if err := s.Reload(); err != nil {
					log.Printf("Failed to reload configuration after file change: %v", err)
					continue
				}
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
