package main

import (
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// setupPathHooks points every filesystem resolver at directories under a
// fresh temp dir and returns that dir. The real hooks are restored on
// cleanup, so tests never touch real user state.
func setupPathHooks(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	origUserConfigDir := userConfigDir
	origProjectRoot := projectRoot
	origResourcesDir := resourcesDir
	origGetWindowStatePath := getWindowStatePath

	userConfigDir = func() (string, error) { return filepath.Join(tmpDir, "config"), nil }
	projectRoot = func() (string, error) { return filepath.Join(tmpDir, "project"), nil }
	resourcesDir = func() (string, error) { return filepath.Join(tmpDir, "resources"), nil }
	getWindowStatePath = func() string { return filepath.Join(tmpDir, "state", windowStateFile) }

	t.Cleanup(func() {
		userConfigDir = origUserConfigDir
		projectRoot = origProjectRoot
		resourcesDir = origResourcesDir
		getWindowStatePath = origGetWindowStatePath
	})
	return tmpDir
}

// withDevMode forces dev/release mode for the duration of a test.
func withDevMode(t *testing.T, dev bool) {
	t.Helper()
	orig := isDevMode
	isDevMode = func() bool { return dev }
	t.Cleanup(func() { isDevMode = orig })
}

// withStartSidecar swaps the process starter.
func withStartSidecar(t *testing.T, fn func(cmd *exec.Cmd) (sidecarProcess, error)) {
	t.Helper()
	orig := startSidecar
	startSidecar = fn
	t.Cleanup(func() { startSidecar = orig })
}

// withReadinessProbe makes the readiness wait return immediately.
func withReadinessProbe(t *testing.T, ready bool) {
	t.Helper()
	orig := probeReadiness
	probeReadiness = func(addr string, timeout time.Duration) bool { return ready }
	t.Cleanup(func() { probeReadiness = orig })
}

// withBrowserLauncher swaps the platform browser launcher.
func withBrowserLauncher(t *testing.T, fn func(name string, args ...string) error) {
	t.Helper()
	orig := runBrowserLauncher
	runBrowserLauncher = fn
	t.Cleanup(func() { runBrowserLauncher = orig })
}
