package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const windowStateFile = "window-state.json"

const (
	defaultWindowWidth  = 1400
	defaultWindowHeight = 900
	minWindowWidth      = 800
	minWindowHeight     = 500
)

// Package-level hook for testing. In production, this uses the real
// implementation.
var getWindowStatePath = defaultWindowStatePath

func defaultWindowStatePath() string {
	dir, err := userConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appConfigDir, windowStateFile)
	}
	return filepath.Join(dir, appConfigDir, windowStateFile)
}

// WindowGeometry is the persisted size of the main window.
type WindowGeometry struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	SavedAt time.Time `json:"savedAt"`
}

// withStateLock executes fn while holding an exclusive lock on the state
// file, so two shell instances cannot clobber each other's writes.
func withStateLock(fn func(geom *WindowGeometry) error) error {
	path := getWindowStatePath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open window state: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("failed to lock window state: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	geom := &WindowGeometry{Width: defaultWindowWidth, Height: defaultWindowHeight}

	decoder := json.NewDecoder(f)
	if err := decoder.Decode(geom); err != nil && err != io.EOF {
		// Empty file is normal for first run; actual parse failures fall
		// back to defaults.
		logf("[window] failed to parse window state, using defaults: %v", err)
		*geom = WindowGeometry{Width: defaultWindowWidth, Height: defaultWindowHeight}
	}

	if err := fn(geom); err != nil {
		return err
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate window state: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek window state: %w", err)
	}
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(geom)
}

// clamp keeps restored sizes usable; anything below the minimum reverts to
// the defaults.
func (g *WindowGeometry) clamp() {
	if g.Width < minWindowWidth {
		g.Width = defaultWindowWidth
	}
	if g.Height < minWindowHeight {
		g.Height = defaultWindowHeight
	}
}

// loadWindowGeometry returns the stored main window size, clamped to sane
// bounds. Missing or unreadable state yields the defaults.
func loadWindowGeometry() WindowGeometry {
	geom := WindowGeometry{Width: defaultWindowWidth, Height: defaultWindowHeight}
	_ = withStateLock(func(stored *WindowGeometry) error {
		geom = *stored
		return nil
	})
	geom.clamp()
	return geom
}

// saveWindowGeometry persists the current main window size for the next run.
func saveWindowGeometry(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	err := withStateLock(func(geom *WindowGeometry) error {
		geom.Width = width
		geom.Height = height
		geom.SavedAt = time.Now()
		return nil
	})
	if err != nil {
		logf("[window] failed to save window state: %v", err)
	}
}
