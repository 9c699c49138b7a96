package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWindowGeometry_DefaultsWhenMissing(t *testing.T) {
	setupPathHooks(t)

	geom := loadWindowGeometry()
	assert.Equal(t, defaultWindowWidth, geom.Width)
	assert.Equal(t, defaultWindowHeight, geom.Height)
}

func TestSaveAndLoadWindowGeometry(t *testing.T) {
	setupPathHooks(t)

	saveWindowGeometry(1600, 1000)

	geom := loadWindowGeometry()
	assert.Equal(t, 1600, geom.Width)
	assert.Equal(t, 1000, geom.Height)
	assert.False(t, geom.SavedAt.IsZero())
}

func TestLoadWindowGeometry_ClampsTinySizes(t *testing.T) {
	setupPathHooks(t)

	// Bypass saveWindowGeometry's own guard by writing through the lock.
	require.NoError(t, withStateLock(func(geom *WindowGeometry) error {
		geom.Width = 100
		geom.Height = 50
		return nil
	}))

	geom := loadWindowGeometry()
	assert.Equal(t, defaultWindowWidth, geom.Width)
	assert.Equal(t, defaultWindowHeight, geom.Height)
}

func TestLoadWindowGeometry_CorruptFileFallsBack(t *testing.T) {
	setupPathHooks(t)

	path := getWindowStatePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	geom := loadWindowGeometry()
	assert.Equal(t, defaultWindowWidth, geom.Width)
	assert.Equal(t, defaultWindowHeight, geom.Height)
}

func TestSaveWindowGeometry_IgnoresNonPositiveSizes(t *testing.T) {
	setupPathHooks(t)

	saveWindowGeometry(0, -1)

	_, err := os.Stat(getWindowStatePath())
	assert.True(t, os.IsNotExist(err))
}
