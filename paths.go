package main

import (
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
)

const (
	serverDistDir   = "dist/pluto-duck-frontend-server"
	serverEntryName = "server.js"
	dataRootDirName = "node-server"
	tempFallbackDir = "pluto_duck"
	appConfigDir    = "pluto-duck"
)

// Package-level hooks for testing. In production, these use the real
// implementations.
var (
	userConfigDir = os.UserConfigDir
	projectRoot   = defaultProjectRoot
	resourcesDir  = defaultResourcesDir
)

// defaultProjectRoot is the repository root during development. `wails dev`
// runs with the working directory at the project root.
func defaultProjectRoot() (string, error) {
	return os.Getwd()
}

// defaultResourcesDir locates the bundled resources next to the executable.
// Packaged macOS apps keep them in Contents/Resources beside Contents/MacOS;
// everywhere else they sit in the executable's own directory.
func defaultResourcesDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(exe)
	if goruntime.GOOS == "darwin" {
		resources := filepath.Join(dir, "..", "Resources")
		if _, err := os.Stat(resources); err == nil {
			return resources, nil
		}
	}
	return dir, nil
}

// resolveDataRoot computes the per-user writable directory for sidecar data
// and logs, and creates <root>/logs up front. Creation failure is logged and
// tolerated here; the supervisor fails later with a clearer error if the log
// directory actually matters.
func resolveDataRoot() string {
	var base string
	if isDevMode() {
		root, err := projectRoot()
		if err != nil {
			root = "."
		}
		base = filepath.Join(root, ".dev-data")
	} else {
		dir, err := userConfigDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), tempFallbackDir)
		} else {
			base = filepath.Join(dir, appConfigDir)
		}
	}

	root := filepath.Join(base, dataRootDirName)
	if err := os.MkdirAll(filepath.Join(root, "logs"), 0755); err != nil {
		logf("[sidecar] failed to create data directories: %v", err)
	}
	return root
}

// resolveServerRoot returns the directory containing server.js.
func resolveServerRoot() (string, error) {
	if isDevMode() {
		root, err := projectRoot()
		if err != nil {
			return "", fmt.Errorf("%w: project root unavailable: %v", ErrConfigurationMissing, err)
		}
		dir := filepath.Join(root, serverDistDir)
		if _, err := os.Stat(dir); err != nil {
			return "", fmt.Errorf("%w: sidecar directory not found at %s", ErrConfigurationMissing, dir)
		}
		return dir, nil
	}

	resources, err := resourcesDir()
	if err != nil {
		return "", fmt.Errorf("%w: resource directory unavailable: %v", ErrConfigurationMissing, err)
	}
	dir := filepath.Join(resources, serverDistDir)
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: sidecar directory not found in resources (%s)", ErrConfigurationMissing, dir)
	}
	return dir, nil
}
