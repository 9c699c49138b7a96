package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const settingsChangedEvent = "settings:changed"

// SettingsWatcher reloads config.toml when it changes on disk and notifies
// the frontend, so a running UI picks up edits made outside the app.
type SettingsWatcher struct {
	settings *DesktopSettingsManager
	notify   func(theme string)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewSettingsWatcher creates a watcher that calls notify with the reloaded
// theme whenever the settings file changes.
func NewSettingsWatcher(settings *DesktopSettingsManager, notify func(theme string)) *SettingsWatcher {
	return &SettingsWatcher{settings: settings, notify: notify}
}

// Start begins watching the settings file's directory. Watching the
// directory rather than the file survives editors that replace the file on
// save. Start is idempotent.
func (w *SettingsWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	dir := filepath.Dir(w.settings.Path())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	go w.loop(watcher, w.done)
	return nil
}

func (w *SettingsWatcher) loop(watcher *fsnotify.Watcher, done chan struct{}) {
	target := filepath.Clean(w.settings.Path())

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			theme, err := w.settings.GetTheme()
			if err != nil {
				logf("[settings] reload failed: %v", err)
				continue
			}
			w.notify(theme)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logf("[settings] watch error: %v", err)
		case <-done:
			return
		}
	}
}

// Stop ends the watch. Safe to call without a prior Start.
func (w *SettingsWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}
	close(w.done)
	w.watcher.Close()
	w.watcher = nil
}
